package docked

import "errors"

// Registry operation errors.
var (
	ErrInvalidCriteria = errors.New("criteria key is neither a known remark nor object/state")
	ErrUnknownRemark   = errors.New("unknown remark")
	ErrIndexOutOfRange = errors.New("entry index out of range")
)

// Export errors.
var (
	ErrNoEntries     = errors.New("no docked entries to export")
	ErrUnknownFormat = errors.New("unknown export format")
)
