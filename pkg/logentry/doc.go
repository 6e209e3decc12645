// Package logentry defines the canonical log entry captured during a test.
//
// Every log-source adapter converts its framework-native event into an Entry:
// it maps the native severity onto a Level (LevelUnknown for anything without
// a canonical mapping), extracts the formatted message, an optional marker,
// the contextual properties at the time of the event, and an optional error.
//
// # Package Design
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package logentry
