// Package atlas holds module-wide constants.
package atlas

// Version is the atlas release version.
const Version = "0.3.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/atlas"
