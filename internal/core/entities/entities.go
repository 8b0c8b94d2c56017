// Package entities registers all entity definitions with the core
// registry. Import this package for its side effects to make every
// entity available to the export and import orchestrators.
package entities

// This file exists to provide a single import point.
// Each entity file uses init() to register itself.
