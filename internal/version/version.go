// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Month view, method cycling, YAML configuration
// 0.2.0 - Moonsighting Committee seasonal twilight, high latitude rules, Qibla
// 0.1.0 - Initial release: solar engine, six daily times, TUI dashboard, headless modes
