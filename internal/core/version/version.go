// Package version holds the build version string.
package version

// Version is set at build time via -ldflags "-X mediascribe/internal/core/version.Version=x.y.z"
var Version = "dev"
