// Package align superposes a mobile object onto the states of a multi-state
// target, producing a new object with one aligned copy per target state.
package align

import (
	"errors"
	"fmt"
	"math"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"

	"github.com/unizar-flav/viewdock/internal/scene"
)

var (
	ErrAtomMismatch  = errors.New("objects differ in atom count")
	ErrBadStateRange = errors.New("invalid state range")
)

// Result reports one aligned state.
type Result struct {
	TargetState int
	RMSD        float64
}

// Multi aligns the mobile object's sourceState onto every state of target in
// [initialState, finalState] with a Kabsch superposition, collecting the
// aligned copies as consecutive states of a new object named newName. A
// finalState of 0 means the target's last state. The mobile and target objects
// must have the same number of atoms, in matching order.
func Multi(sc *scene.Scene, mobile, target, newName string, initialState, finalState, sourceState int) ([]Result, error) {
	if sourceState < 1 {
		sourceState = 1
	}
	if initialState < 1 {
		initialState = 1
	}
	targetStates := sc.CountStates(target)
	if !sc.HasObject(target) {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownObject, target)
	}
	if finalState <= 0 || finalState > targetStates {
		finalState = targetStates
	}
	if initialState > finalState {
		return nil, fmt.Errorf("%w: %d..%d of %d states", ErrBadStateRange, initialState, finalState, targetStates)
	}

	mobileObj, ok := sc.Object(mobile)
	if !ok {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownObject, mobile)
	}
	if sourceState > len(mobileObj.States) {
		return nil, fmt.Errorf("%w: %q state %d", scene.ErrStateOutOfRange, mobile, sourceState)
	}
	template := mobileObj.States[sourceState-1].Atoms

	mobileCoords, err := sc.Coords(mobile, sourceState)
	if err != nil {
		return nil, err
	}
	n := mobileCoords.NVecs()
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}

	aligned := &scene.Object{Name: newName}
	var results []Result
	for state := initialState; state <= finalState; state++ {
		targetCoords, err := sc.Coords(target, state)
		if err != nil {
			return nil, err
		}
		if targetCoords.NVecs() != n {
			return nil, fmt.Errorf("%w: %q has %d, %q state %d has %d",
				ErrAtomMismatch, mobile, n, target, state, targetCoords.NVecs())
		}
		moved := v3.Zeros(n)
		moved.Copy(mobileCoords)
		super, err := chem.Super(moved, targetCoords, indexes, indexes)
		if err != nil {
			return nil, fmt.Errorf("superposition onto %q state %d: %w", target, state, err)
		}
		aligned.States = append(aligned.States, stateFromCoords(template, super))
		results = append(results, Result{TargetState: state, RMSD: rmsd(super, targetCoords)})
	}
	sc.AddObject(aligned)
	return results, nil
}

// stateFromCoords copies the template atoms with coordinates taken from m.
func stateFromCoords(template []scene.Atom, m *v3.Matrix) *scene.State {
	st := &scene.State{Atoms: append([]scene.Atom(nil), template...)}
	for i := range st.Atoms {
		st.Atoms[i].X = m.At(i, 0)
		st.Atoms[i].Y = m.At(i, 1)
		st.Atoms[i].Z = m.At(i, 2)
	}
	return st
}

// rmsd computes the root-mean-square deviation between two coordinate sets of
// equal length.
func rmsd(a, b *v3.Matrix) float64 {
	n := a.NVecs()
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		dx := a.At(i, 0) - b.At(i, 0)
		dy := a.At(i, 1) - b.At(i, 1)
		dz := a.At(i, 2) - b.At(i, 2)
		sum += dx*dx + dy*dy + dz*dz
	}
	return math.Sqrt(sum / float64(n))
}
