package docked

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// DefaultHeaders is the preferred default column order for presentation,
// covering the remark names the bundled format readers emit. It is a hint,
// not authoritative: entries may carry keys outside this list.
var DefaultHeaders = []string{
	"Cluster", "ClusterRank", "deltaG", // SwissDock
	"RANK", "Total", // pyDock
	"Affinity", "RMSD_lb", "RMSD_ub", // AutoDock Vina
	"structure", "value", // generic
}

// Registry is an ordered sequence of docked entries plus a header hint list.
// Order is insertion order. All mutations that touch geometry go through the
// Host; the registry holds only weak references into it.
type Registry struct {
	host    Host
	entries []*Entry
	headers []string
}

// New returns an empty registry bound to host.
func New(host Host) *Registry {
	return &Registry{
		host:    host,
		headers: append([]string(nil), DefaultHeaders...),
	}
}

// Restore rebuilds a registry from previously persisted entries and headers.
// A nil or empty header list falls back to DefaultHeaders.
func Restore(host Host, entries []*Entry, headers []string) *Registry {
	r := New(host)
	r.entries = entries
	if len(headers) > 0 {
		r.headers = append([]string(nil), headers...)
	}
	return r
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the underlying entry sequence in insertion order.
func (r *Registry) Entries() []*Entry { return r.entries }

// Entry returns the entry at index.
func (r *Registry) Entry(index int) (*Entry, error) {
	if index < 0 || index >= len(r.entries) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return r.entries[index], nil
}

// Headers returns the header hint list.
func (r *Registry) Headers() []string { return r.headers }

// Objects returns the distinct object names referenced by entries, in order
// of first appearance.
func (r *Registry) Objects() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range r.entries {
		if !seen[e.Object] {
			seen[e.Object] = true
			names = append(names, e.Object)
		}
	}
	return names
}

// RemarkKeys returns every remark key carried by any entry, headers-hinted
// keys first in hint order, remaining keys alphabetically. This is also the
// column order used by export.
func (r *Registry) RemarkKeys() []string {
	present := r.remarkSet()
	var keys []string
	for _, h := range r.headers {
		if present[h] {
			keys = append(keys, h)
			delete(present, h)
		}
	}
	rest := make([]string, 0, len(present))
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func (r *Registry) remarkSet() map[string]bool {
	set := make(map[string]bool)
	for _, e := range r.entries {
		for k := range e.Remarks {
			set[k] = true
		}
	}
	return set
}

// Append adds entries at the end of the sequence. Loaders call
// EqualizeRemarks after the bulk append.
func (r *Registry) Append(entries ...*Entry) {
	r.entries = append(r.entries, entries...)
}

// EqualizeRemarks back-fills every remark key present in some entry but
// absent in another with the null value. Idempotent.
func (r *Registry) EqualizeRemarks() {
	all := r.remarkSet()
	for _, e := range r.entries {
		for k := range all {
			if _, ok := e.Remarks[k]; !ok {
				e.Remarks[k] = Null()
			}
		}
	}
}

// FindAll returns the indices of entries whose fields match all (or, with
// matchAll false, any) of the given key-value criteria. Keys must be known
// remarks or the reserved "object"/"state" keys, otherwise ErrInvalidCriteria.
// Empty criteria match every entry when matchAll is true and none otherwise.
func (r *Registry) FindAll(criteria map[string]Remark, matchAll bool) ([]int, error) {
	known := r.remarkSet()
	for k := range criteria {
		if k == KeyObject || k == KeyState || known[k] {
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidCriteria, k)
	}
	var indices []int
	for n, e := range r.entries {
		matched := matchAll
		for k, want := range criteria {
			ok := e.Field(k).Equal(want)
			if matchAll {
				matched = matched && ok
			} else {
				matched = matched || ok
			}
		}
		if matched {
			indices = append(indices, n)
		}
	}
	return indices, nil
}

// FindFirst returns the lowest index matching the criteria, or -1 when no
// entry matches.
func (r *Registry) FindFirst(criteria map[string]Remark, matchAll bool) (int, error) {
	indices, err := r.FindAll(criteria, matchAll)
	if err != nil {
		return -1, err
	}
	if len(indices) == 0 {
		return -1, nil
	}
	return indices[0], nil
}

// RemoveAt deletes the entry at index. With renumber, sibling entries of the
// same object with a higher state index are decremented and the host state is
// physically removed, keeping state numbering contiguous: the object is
// rebuilt from a temporary copy excluding the removed state. When the host no
// longer knows the object the geometry step is silently skipped.
func (r *Registry) RemoveAt(index int, renumber bool) error {
	if index < 0 || index >= len(r.entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	object := r.entries[index].Object
	state := r.entries[index].State
	r.entries = append(r.entries[:index], r.entries[index+1:]...)

	if !renumber || r.host == nil || !r.host.HasObject(object) {
		return nil
	}

	tmp := tempObjectName()
	if err := r.host.CreateFromState(tmp, object, 0, -1); err != nil {
		return fmt.Errorf("copy %q to temporary: %w", object, err)
	}
	if err := r.host.DeleteObject(object); err != nil {
		return err
	}
	siblings, err := r.FindAll(map[string]Remark{KeyObject: Str(object)}, true)
	if err != nil {
		return err
	}
	// Entry order can diverge from state order after Sort; rebuild in state
	// order so the renumbered states still point at their own geometry.
	sort.Slice(siblings, func(i, j int) bool {
		return r.entries[siblings[i]].State < r.entries[siblings[j]].State
	})
	for _, n := range siblings {
		e := r.entries[n]
		if err := r.host.CreateFromState(object, tmp, e.State, -1); err != nil {
			return fmt.Errorf("rebuild %q state %d: %w", object, e.State, err)
		}
		if e.State > state {
			e.State--
		}
	}
	return r.host.DeleteObject(tmp)
}

// RemoveMatching removes every entry matching the criteria, processing
// indices in descending order so earlier removals do not shift later ones.
func (r *Registry) RemoveMatching(criteria map[string]Remark, matchAll bool) error {
	indices, err := r.FindAll(criteria, matchAll)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, n := range indices {
		if err := r.RemoveAt(n, true); err != nil {
			return err
		}
	}
	return nil
}

// PruneOrphans removes every entry whose object is absent from the host and
// returns how many entries were dropped. States are not renumbered since the
// whole object is gone.
func (r *Registry) PruneOrphans() int {
	pruned := 0
	for n := len(r.entries) - 1; n >= 0; n-- {
		if r.host != nil && r.host.HasObject(r.entries[n].Object) {
			continue
		}
		r.entries = append(r.entries[:n], r.entries[n+1:]...)
		pruned++
	}
	return pruned
}

// RenameObject updates the object reference of every entry pointing at old.
// Invoked reactively when the host reports an object rename.
func (r *Registry) RenameObject(old, new string) {
	for _, e := range r.entries {
		if e.Object == old {
			e.Object = new
		}
	}
}

// CopyEntry duplicates the geometry of the entry at index into state 1 of
// newObject via the host's create-from-state primitive. With keepEntry a new
// entry recording the copy is appended; with extract the source entry is also
// removed as by RemoveAt.
func (r *Registry) CopyEntry(index int, newObject string, keepEntry, extract bool) error {
	e, err := r.Entry(index)
	if err != nil {
		return err
	}
	if r.host != nil {
		if err := r.host.CreateFromState(newObject, e.Object, e.State, 1); err != nil {
			return fmt.Errorf("copy %q state %d: %w", e.Object, e.State, err)
		}
	}
	if keepEntry {
		c := e.clone()
		c.Object = newObject
		c.State = 1
		r.entries = append(r.entries, c)
	}
	if extract {
		return r.RemoveAt(index, true)
	}
	return nil
}

// Sort stably reorders entries by the named remark's value. Returns
// ErrUnknownRemark when no entry carries that key.
func (r *Registry) Sort(remark string, descending bool) error {
	if !r.remarkSet()[remark] {
		return fmt.Errorf("%w: %q", ErrUnknownRemark, remark)
	}
	sort.SliceStable(r.entries, func(i, j int) bool {
		a := r.entries[i].Remarks[remark]
		b := r.entries[j].Remarks[remark]
		if descending {
			return b.Less(a)
		}
		return a.Less(b)
	})
	return nil
}

// Clear deletes every referenced host object and resets the registry to its
// initial state.
func (r *Registry) Clear() error {
	if r.host != nil {
		for _, name := range r.Objects() {
			if err := r.host.DeleteObject(name); err != nil {
				return err
			}
		}
	}
	r.entries = nil
	r.headers = append([]string(nil), DefaultHeaders...)
	return nil
}

// tempObjectName returns a scene name unlikely to collide with user objects,
// used for the rebuild copy during RemoveAt.
func tempObjectName() string {
	return "tmp_" + uuid.NewString()[:8]
}
