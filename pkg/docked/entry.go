package docked

// Criteria keys that address the entry's host reference rather than a remark.
const (
	KeyObject = "object"
	KeyState  = "state"
)

// Entry is one annotated pose: free-form scalar remarks plus a weak reference
// (object name and 1-based state index) into a host-owned multi-state object.
type Entry struct {
	Remarks map[string]Remark `json:"remarks"`
	Object  string            `json:"object"`
	State   int               `json:"state"`
}

// NewEntry returns an entry with the given remarks and an empty host reference.
func NewEntry(remarks map[string]Remark) *Entry {
	if remarks == nil {
		remarks = make(map[string]Remark)
	}
	return &Entry{Remarks: remarks}
}

// Field resolves a criteria key against the entry: "object" and "state" map to
// the host reference, anything else to the remark of that name (null when the
// entry does not carry it).
func (e *Entry) Field(key string) Remark {
	switch key {
	case KeyObject:
		return Str(e.Object)
	case KeyState:
		return Int(e.State)
	default:
		return e.Remarks[key]
	}
}

// clone returns a deep copy of the entry.
func (e *Entry) clone() *Entry {
	remarks := make(map[string]Remark, len(e.Remarks))
	for k, v := range e.Remarks {
		remarks[k] = v
	}
	return &Entry{Remarks: remarks, Object: e.Object, State: e.State}
}
