package docked

// Host is the registry's window into the scene graph that owns the geometry.
// Object references held by entries are validated lazily against ObjectNames;
// the registry never dereferences geometry itself.
type Host interface {
	// ObjectNames returns the names of every object currently in the scene.
	ObjectNames() []string

	// HasObject reports whether an object with the given name exists.
	HasObject(name string) bool

	// CreateFromState copies states from src into dst, creating dst if
	// needed. sourceState 0 copies every state; targetState -1 appends.
	CreateFromState(dst, src string, sourceState, targetState int) error

	// DeleteObject removes an object and all its states from the scene.
	// Deleting an unknown object is a no-op.
	DeleteObject(name string) error
}
