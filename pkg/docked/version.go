package docked

// Version is the viewdock release version.
const Version = "0.4.0"
