// Package host integrates the table widget runtime with a terminal
// screen: it mounts widget views over decoration spans, projects
// document spans to screen geometry for the save fallback, routes key
// events into editors, and carries the logger and the explicit,
// idempotent style registration the widgets draw with.
package host
