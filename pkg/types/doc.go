// Package types defines the record model, the weak handle, the payload types
// of every registry entity kind, CLI configuration, and the standard errors
// for the atlas registry.
//
// Payload types are opaque to the registry: it stores, indexes and hands
// them out but never interprets their fields. Decoders, mesh generators and
// the renderer own their meaning.
package types
