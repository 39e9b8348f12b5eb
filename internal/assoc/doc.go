// Package assoc holds the directed relationship maps between registry
// entity kinds.
//
// One is a single-valued map (image to color map). Many is a multi-valued
// map with an ordered member list per owner and a synchronized inverse
// (slide to annotations). Keyed maps an owner to children under an integer
// key, also with an inverse (parcellation to label meshes by label index).
//
// The maps never check that endpoints exist; the registry does that before
// it mutates anything. Every mutation updates both directions in the same
// call.
package assoc
