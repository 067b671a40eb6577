// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Repository is the GitHub owner/name releases are checked against.
const Repository = "litescript/kat-search"
