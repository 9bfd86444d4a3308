// Package scene holds named multi-state objects and implements the host
// surface the docked registry depends on: object enumeration, state copying,
// deletion, and rename notification. It stands in for the viewer's scene
// graph so loads, state rebuilds and alignment all run in-process.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnknownObject   = errors.New("unknown object")
	ErrObjectExists    = errors.New("object already exists")
	ErrStateOutOfRange = errors.New("state index out of range")
	ErrUnsupportedFile = errors.New("unsupported file format")
)

// Atom is one atom record of a state. Coordinates are in Angstrom.
type Atom struct {
	Het     bool    `json:"het,omitempty"`
	Serial  int     `json:"serial"`
	Name    string  `json:"name"`
	ResName string  `json:"res_name,omitempty"`
	Chain   string  `json:"chain,omitempty"`
	ResSeq  int     `json:"res_seq,omitempty"`
	Element string  `json:"element,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
}

// State is one conformation of an object.
type State struct {
	Atoms []Atom `json:"atoms"`
}

func (s *State) clone() *State {
	return &State{Atoms: append([]Atom(nil), s.Atoms...)}
}

// Object is a named container of 1-based states.
type Object struct {
	Name   string   `json:"name"`
	States []*State `json:"states"`
}

// Scene is the ordered set of objects of one session.
type Scene struct {
	order           []string
	objects         map[string]*Object
	renameListeners []func(old, new string)
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{objects: make(map[string]*Object)}
}

// ObjectNames returns the names of all objects in creation order.
func (s *Scene) ObjectNames() []string {
	names := make([]string, 0, len(s.objects))
	for _, n := range s.order {
		if _, ok := s.objects[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// HasObject reports whether the scene contains an object with that name.
func (s *Scene) HasObject(name string) bool {
	_, ok := s.objects[name]
	return ok
}

// Object returns the named object.
func (s *Scene) Object(name string) (*Object, bool) {
	o, ok := s.objects[name]
	return o, ok
}

// Objects returns all objects in creation order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, n := range s.ObjectNames() {
		out = append(out, s.objects[n])
	}
	return out
}

// AddObject inserts a fully built object, replacing any previous one of the
// same name. Used when restoring a persisted session.
func (s *Scene) AddObject(o *Object) {
	if _, ok := s.objects[o.Name]; !ok {
		s.order = append(s.order, o.Name)
	}
	s.objects[o.Name] = o
}

func (s *Scene) ensure(name string) *Object {
	if o, ok := s.objects[name]; ok {
		return o
	}
	o := &Object{Name: name}
	s.objects[name] = o
	s.order = append(s.order, name)
	return o
}

// CountStates returns the number of states of an object, 0 when unknown.
func (s *Scene) CountStates(name string) int {
	o, ok := s.objects[name]
	if !ok {
		return 0
	}
	return len(o.States)
}

// CreateFromState copies states from src into dst, creating dst if needed.
// sourceState 0 copies every state of src; a positive value copies that
// single state. targetState -1 appends; a positive value places the copy at
// that state index, extending dst as needed.
func (s *Scene) CreateFromState(dst, src string, sourceState, targetState int) error {
	source, ok := s.objects[src]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, src)
	}
	var copied []*State
	if sourceState == 0 {
		for _, st := range source.States {
			copied = append(copied, st.clone())
		}
	} else {
		if sourceState < 1 || sourceState > len(source.States) {
			return fmt.Errorf("%w: %q state %d", ErrStateOutOfRange, src, sourceState)
		}
		copied = []*State{source.States[sourceState-1].clone()}
	}
	target := s.ensure(dst)
	if targetState <= 0 {
		target.States = append(target.States, copied...)
		return nil
	}
	for len(target.States) < targetState-1 {
		target.States = append(target.States, &State{})
	}
	for i, st := range copied {
		pos := targetState - 1 + i
		if pos < len(target.States) {
			target.States[pos] = st
		} else {
			target.States = append(target.States, st)
		}
	}
	return nil
}

// DeleteObject removes an object. Unknown names are a no-op.
func (s *Scene) DeleteObject(name string) error {
	if _, ok := s.objects[name]; !ok {
		return nil
	}
	delete(s.objects, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Rename changes an object's name and notifies rename listeners so dependent
// indexes (the docked registry) stay consistent.
func (s *Scene) Rename(old, new string) error {
	o, ok := s.objects[old]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, old)
	}
	if _, ok := s.objects[new]; ok {
		return fmt.Errorf("%w: %q", ErrObjectExists, new)
	}
	delete(s.objects, old)
	o.Name = new
	s.objects[new] = o
	for i, n := range s.order {
		if n == old {
			s.order[i] = new
		}
	}
	for _, fn := range s.renameListeners {
		fn(old, new)
	}
	return nil
}

// OnRename registers a callback invoked after every successful Rename.
func (s *Scene) OnRename(fn func(old, new string)) {
	s.renameListeners = append(s.renameListeners, fn)
}

// NonRepeatedName returns a name not used by any object, suffixing the given
// base with _2, _3, ... when it collides.
func (s *Scene) NonRepeatedName(base string) string {
	if !s.HasObject(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !s.HasObject(candidate) {
			return candidate
		}
	}
}

// ReadPDBString parses PDB-flavored text and appends its models as states of
// the named object, creating it if needed. Text without MODEL/ENDMDL markers
// becomes a single state.
func (s *Scene) ReadPDBString(pdb, object string) error {
	states, err := parsePDBModels(pdb)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no atoms in PDB input for %q", object)
	}
	o := s.ensure(object)
	o.States = append(o.States, states...)
	return nil
}

// LoadFile reads a structure file from disk and appends its states to the
// named object. This is the scene's native loader: PDB-flavored text and XYZ
// trajectories are recognized by suffix.
func (s *Scene) LoadFile(path, object string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	suffix := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch suffix {
	case "pdb", "pdbqt", "ent", "dock4":
		return s.ReadPDBString(string(data), object)
	case "xyz":
		states, err := parseXYZStates(string(data))
		if err != nil {
			return err
		}
		o := s.ensure(object)
		o.States = append(o.States, states...)
		return nil
	default:
		return fmt.Errorf("%w: .%s", ErrUnsupportedFile, suffix)
	}
}

// Subtract removes from every state of lig the atoms that coincide with an
// atom of rec's first state, matching by name and position. Returns how many
// atoms were removed in total. Mirrors the viewer's selection-algebra remove.
func (s *Scene) Subtract(lig, rec string) (int, error) {
	ligObj, ok := s.objects[lig]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownObject, lig)
	}
	recObj, ok := s.objects[rec]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownObject, rec)
	}
	if len(recObj.States) == 0 {
		return 0, nil
	}
	ref := make(map[atomKey]bool, len(recObj.States[0].Atoms))
	for _, a := range recObj.States[0].Atoms {
		ref[keyOf(a)] = true
	}
	removed := 0
	for _, st := range ligObj.States {
		kept := st.Atoms[:0]
		for _, a := range st.Atoms {
			if ref[keyOf(a)] {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		st.Atoms = kept
	}
	return removed, nil
}

// atomKey identifies an atom by name and quantized position.
type atomKey struct {
	name    string
	x, y, z int64
}

func keyOf(a Atom) atomKey {
	// Positions quantized to 1e-3 A, the precision of PDB coordinates.
	return atomKey{
		name: a.Name,
		x:    int64(a.X*1000 + 0.5),
		y:    int64(a.Y*1000 + 0.5),
		z:    int64(a.Z*1000 + 0.5),
	}
}
