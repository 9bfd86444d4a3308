// Package docked implements the registry of docked entries: ordered pairs of
// scalar docking remarks and a reference into a host-owned multi-state object.
// The registry never owns geometry; it indexes into a Host and keeps its
// entries consistent as objects and states are created, renamed and deleted.
package docked
