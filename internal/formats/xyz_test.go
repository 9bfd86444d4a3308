package formats

import (
	"errors"
	"testing"
)

func TestXYZNumericComments(t *testing.T) {
	l := newTestLoader()
	xyz := "2\n-12.5\nC 0.0 0.0 0.0\nO 1.2 0.0 0.0\n" +
		"2\n-13.1\nC 0.1 0.0 0.0\nO 1.3 0.0 0.0\n"
	path := writeTemp(t, "traj.xyz", xyz)

	object, err := l.XYZ(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if object != "traj" {
		t.Fatalf("expected traj, got %q", object)
	}
	if l.Registry.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Registry.Len())
	}
	if got := l.Scene.CountStates(object); got != 2 {
		t.Fatalf("expected 2 states, got %d", got)
	}
	e := l.Registry.Entries()[1]
	if v, _ := e.Remarks["structure"].Float(); v != 2 {
		t.Fatalf("expected structure 2, got %v", v)
	}
	if v, ok := e.Remarks["value"].Float(); !ok || v != -13.1 {
		t.Fatalf("expected numeric value -13.1, got %v ok=%v", v, ok)
	}
	if e.State != 2 {
		t.Fatalf("expected state 2, got %d", e.State)
	}
}

func TestXYZTextComments(t *testing.T) {
	l := newTestLoader()
	// One non-numeric comment keeps every value as a string.
	xyz := "1\n-12.5\nC 0.0 0.0 0.0\n" +
		"1\nminimum B\nC 0.1 0.0 0.0\n"
	path := writeTemp(t, "traj.xyz", xyz)

	if _, err := l.XYZ(path, ""); err != nil {
		t.Fatal(err)
	}
	if s, ok := l.Registry.Entries()[0].Remarks["value"].Text(); !ok || s != "-12.5" {
		t.Fatalf("expected string value -12.5, got %q ok=%v", s, ok)
	}
	if s, _ := l.Registry.Entries()[1].Remarks["value"].Text(); s != "minimum B" {
		t.Fatalf("expected 'minimum B', got %q", s)
	}
}

func TestXYZMalformedCount(t *testing.T) {
	l := newTestLoader()
	path := writeTemp(t, "traj.xyz", "two\ncomment\nC 0 0 0\n")
	if _, err := l.XYZ(path, ""); err == nil {
		t.Fatal("expected error for malformed atom count")
	}
}

func TestXYZNegativeCount(t *testing.T) {
	l := newTestLoader()
	path := writeTemp(t, "traj.xyz", "-5\ncomment\nC 0.0 0.0 0.0\n")
	_, err := l.XYZ(path, "")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for negative atom count, got %v", err)
	}
}
