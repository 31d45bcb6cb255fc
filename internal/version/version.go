// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - YAML catalogs, catalog file watching, validate command
// 0.2.0 - Pinned planet panel, binary star layout, mouse hover tooltips
// 0.1.0 - Initial release: galaxy map and orbital system view
