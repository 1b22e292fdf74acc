// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Aceplay is the canonical application identifier used for filesystem paths and CLI branding.
	Aceplay = "aceplay"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the stream server.
	UserAgent = Aceplay + "/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// runtime.GOOS values the launcher and player lookup branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
