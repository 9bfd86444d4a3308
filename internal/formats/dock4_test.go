package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

// newLoader returns a loader over a fresh scene and registry with warnings
// silenced.
func newTestLoader() *Loader {
	sc := scene.New()
	reg := docked.New(sc)
	l := NewLoader(reg, sc)
	l.Warn = io.Discard
	return l
}

func atomLine(serial int, x float64) string {
	return fmt.Sprintf("ATOM  %5d  CA  LIG A   1    %8.3f%8.3f%8.3f  1.00  0.00           C",
		serial, x, 0.0, 0.0)
}

// dock4Cluster builds cluster text with the given (Cluster, ClusterRank)
// pairs, one single-atom pose each.
func dock4Cluster(pairs [][2]int) string {
	var sb strings.Builder
	for i, p := range pairs {
		fmt.Fprintf(&sb, "REMARK Cluster: %d\n", p[0])
		fmt.Fprintf(&sb, "REMARK ClusterRank: %d\n", p[1])
		sb.WriteString("REMARK deltaG: -7.5\n")
		sb.WriteString(atomLine(i+1, float64(i)) + "\n")
		sb.WriteString("TER\n")
	}
	return sb.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDock4ModeAll(t *testing.T) {
	l := newTestLoader()
	path := writeTemp(t, "cluster.dock4", dock4Cluster([][2]int{{0, 0}, {0, 1}, {1, 0}}))

	object, err := l.Dock4(path, "", Dock4ModeAll)
	if err != nil {
		t.Fatal(err)
	}
	if object != "cluster" {
		t.Fatalf("expected object name from filename, got %q", object)
	}
	if l.Registry.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.Registry.Len())
	}
	if got := l.Scene.CountStates("cluster"); got != 3 {
		t.Fatalf("expected 3 states, got %d", got)
	}
	for n, e := range l.Registry.Entries() {
		if e.State != n+1 {
			t.Fatalf("entry %d has state %d", n, e.State)
		}
	}
	g, _ := l.Registry.Entries()[0].Remarks["deltaG"].Float()
	if g != -7.5 {
		t.Fatalf("expected deltaG -7.5, got %v", g)
	}
}

func TestDock4ModeBest(t *testing.T) {
	// ClusterRank sequence {0,1,0,2}: exactly the rank-0 poses survive,
	// renumbered to states [1,2].
	l := newTestLoader()
	path := writeTemp(t, "cluster.dock4", dock4Cluster([][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 2}}))

	if _, err := l.Dock4(path, "best", Dock4ModeBest); err != nil {
		t.Fatal(err)
	}
	if l.Registry.Len() != 2 {
		t.Fatalf("expected 2 surviving entries, got %d", l.Registry.Len())
	}
	for n, e := range l.Registry.Entries() {
		if e.State != n+1 {
			t.Fatalf("entry %d has state %d, want %d", n, e.State, n+1)
		}
	}
	if got := l.Scene.CountStates("best"); got != 2 {
		t.Fatalf("expected 2 states, got %d", got)
	}
}

func TestDock4ModeBestMissingRank(t *testing.T) {
	l := newTestLoader()
	cluster := "REMARK deltaG: -7.5\n" + atomLine(1, 0) + "\n"
	path := writeTemp(t, "cluster.dock4", cluster)

	_, err := l.Dock4(path, "", Dock4ModeBest)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestDock4ModeCluster(t *testing.T) {
	// Clusters {1,1,2}: two objects, base-1 with 2 states and base-2 with 1.
	l := newTestLoader()
	path := writeTemp(t, "cluster.dock4", dock4Cluster([][2]int{{1, 0}, {1, 1}, {2, 0}}))

	if _, err := l.Dock4(path, "base", Dock4ModeCluster); err != nil {
		t.Fatal(err)
	}
	if got := l.Scene.CountStates("base-1"); got != 2 {
		t.Fatalf("base-1 has %d states, want 2", got)
	}
	if got := l.Scene.CountStates("base-2"); got != 1 {
		t.Fatalf("base-2 has %d states, want 1", got)
	}
	idx, err := l.Registry.FindAll(map[string]docked.Remark{docked.KeyObject: docked.Str("base-1")}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx) != 2 {
		t.Fatalf("expected 2 entries for base-1, got %v", idx)
	}
	states := []int{l.Registry.Entries()[idx[0]].State, l.Registry.Entries()[idx[1]].State}
	if states[0] != 1 || states[1] != 2 {
		t.Fatalf("base-1 states %v, want [1 2]", states)
	}
}

func TestDock4ModeClusterMissingCluster(t *testing.T) {
	l := newTestLoader()
	cluster := "REMARK deltaG: -7.5\n" + atomLine(1, 0) + "\n"
	path := writeTemp(t, "cluster.dock4", cluster)

	_, err := l.Dock4(path, "", Dock4ModeCluster)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestDock4FileNotFound(t *testing.T) {
	l := newTestLoader()
	_, err := l.Dock4(filepath.Join(t.TempDir(), "nope.dock4"), "", Dock4ModeAll)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestDock4EqualizesRemarks(t *testing.T) {
	l := newTestLoader()
	// Second pose carries an extra remark the first lacks.
	cluster := "REMARK Cluster: 1\n" + atomLine(1, 0) + "\n" +
		"REMARK Cluster: 2\nREMARK FullFitness: -100.5\n" + atomLine(2, 1) + "\n"
	path := writeTemp(t, "cluster.dock4", cluster)

	if _, err := l.Dock4(path, "", Dock4ModeAll); err != nil {
		t.Fatal(err)
	}
	first := l.Registry.Entries()[0]
	v, ok := first.Remarks["FullFitness"]
	if !ok || !v.IsNull() {
		t.Fatalf("expected null back-fill for FullFitness, got %v ok=%v", v, ok)
	}
}
