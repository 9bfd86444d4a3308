package session

import (
	"errors"
	"testing"

	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

func sampleSession(t *testing.T) (*docked.Registry, *scene.Scene) {
	t.Helper()
	sc := scene.New()
	pdb := "ATOM      1  CA  LIG A   1       1.000   2.000   3.000  1.00  0.00           C\n"
	if err := sc.ReadPDBString(pdb, "dock"); err != nil {
		t.Fatal(err)
	}
	if err := sc.ReadPDBString(pdb, "dock"); err != nil {
		t.Fatal(err)
	}

	reg := docked.New(sc)
	for i := 1; i <= 2; i++ {
		e := docked.NewEntry(map[string]docked.Remark{
			"deltaG":      docked.Number(-7.5 + float64(i)),
			"Name":        docked.Str("ligand"),
			"FullFitness": docked.Null(),
		})
		e.Object = "dock"
		e.State = i
		reg.Append(e)
	}
	return reg, sc
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	reg, sc := sampleSession(t)

	store := NewStore()
	if err := store.Attach(Config{Backend: BackendSQLite, DataDir: dir}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(reg, sc); err != nil {
		t.Fatal(err)
	}
	if err := store.Detach(); err != nil {
		t.Fatal(err)
	}

	reopened := NewStore()
	if err := reopened.Attach(Config{Backend: BackendSQLite, DataDir: dir}); err != nil {
		t.Fatal(err)
	}
	defer reopened.Detach()

	sc2 := scene.New()
	reg2, err := reopened.Load(sc2)
	if err != nil {
		t.Fatal(err)
	}

	if reg2.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", reg2.Len())
	}
	for i, e := range reg2.Entries() {
		want := reg.Entries()[i]
		if e.Object != want.Object || e.State != want.State {
			t.Fatalf("entry %d: got %s/%d, want %s/%d", i, e.Object, e.State, want.Object, want.State)
		}
		for k, v := range want.Remarks {
			if !e.Remarks[k].Equal(v) {
				t.Fatalf("entry %d remark %q: got %v, want %v", i, k, e.Remarks[k], v)
			}
		}
	}
	if got := sc2.CountStates("dock"); got != 2 {
		t.Fatalf("restored scene has %d states, want 2", got)
	}
	o, _ := sc2.Object("dock")
	if o.States[0].Atoms[0].X != 1.0 {
		t.Fatalf("restored atom X = %v, want 1.0", o.States[0].Atoms[0].X)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	reg, sc := sampleSession(t)

	store := NewStore()
	if err := store.Attach(Config{DataDir: dir}); err != nil {
		t.Fatal(err)
	}
	defer store.Detach()

	if err := store.Save(reg, sc); err != nil {
		t.Fatal(err)
	}
	// A second save with fewer entries must not leave stale rows behind.
	if err := reg.RemoveAt(1, true); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(reg, sc); err != nil {
		t.Fatal(err)
	}

	reg2, err := store.Load(scene.New())
	if err != nil {
		t.Fatal(err)
	}
	if reg2.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", reg2.Len())
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	store := NewStore()
	if err := store.Attach(Config{DataDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	defer store.Detach()

	sc := scene.New()
	reg, err := store.Load(sc)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d entries", reg.Len())
	}
	if len(sc.ObjectNames()) != 0 {
		t.Fatalf("expected empty scene, got %v", sc.ObjectNames())
	}
}

func TestStoreDetachedErrors(t *testing.T) {
	store := NewStore()
	if err := store.Save(docked.New(scene.New()), scene.New()); !errors.Is(err, ErrStoreDetached) {
		t.Fatalf("expected ErrStoreDetached, got %v", err)
	}
	if _, err := store.Load(scene.New()); !errors.Is(err, ErrStoreDetached) {
		t.Fatalf("expected ErrStoreDetached, got %v", err)
	}
}

func TestStoreDoubleAttach(t *testing.T) {
	store := NewStore()
	if err := store.Attach(Config{DataDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	defer store.Detach()
	if err := store.Attach(Config{DataDir: t.TempDir()}); !errors.Is(err, ErrAlreadyAttached) {
		t.Fatalf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Backend: "postgres"}).Validate(); !errors.Is(err, ErrInvalidBackend) {
		t.Fatalf("expected ErrInvalidBackend, got %v", err)
	}
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("empty backend must validate, got %v", err)
	}
	if err := (Config{Backend: BackendSQLite}).Validate(); err != nil {
		t.Fatalf("sqlite backend must validate, got %v", err)
	}
}

func TestStoreDetachIdempotent(t *testing.T) {
	store := NewStore()
	if err := store.Detach(); err != nil {
		t.Fatal(err)
	}
	if err := store.Attach(Config{DataDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if err := store.Detach(); err != nil {
		t.Fatal(err)
	}
	if err := store.Detach(); err != nil {
		t.Fatal(err)
	}
}
