// Package integration provides shared test helpers for integration tests.
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unizar-flav/viewdock/internal/formats"
	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/internal/session"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

// newSession creates a fresh scene, registry and loader with warnings routed
// to the test log.
func newSession(t *testing.T) (*docked.Registry, *scene.Scene, *formats.Loader) {
	t.Helper()
	sc := scene.New()
	reg := docked.New(sc)
	sc.OnRename(reg.RenameObject)
	l := formats.NewLoader(reg, sc)
	l.Warn = testWriter{t}
	return reg, sc, l
}

// newAttachedStore creates a store attached to an isolated temp directory.
func newAttachedStore(t *testing.T, dataDir string) *session.Store {
	t.Helper()
	store := session.NewStore()
	err := store.Attach(session.Config{Backend: session.BackendSQLite, DataDir: dataDir})
	require.NoError(t, err, "Attach must succeed")
	t.Cleanup(func() { store.Detach() })
	return store
}

// writeFile writes content under dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// pdbAtom returns one fixed-column ATOM record.
func pdbAtom(serial int, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d  CA  LIG A   1    %8.3f%8.3f%8.3f  1.00  0.00           C",
		serial, x, y, z)
}

// vinaFile builds a PDBQT text with one model per affinity value.
func vinaFile(affinities []float64) string {
	var sb strings.Builder
	for i, a := range affinities {
		fmt.Fprintf(&sb, "MODEL %d\n", i+1)
		fmt.Fprintf(&sb, "REMARK VINA RESULT:    %6.1f      0.000      0.000\n", a)
		sb.WriteString(pdbAtom(1, float64(i), 0, 0) + "\n")
		sb.WriteString("ENDMDL\n")
	}
	return sb.String()
}

// swissDockFile builds a Dock 4+ cluster text from (Cluster, ClusterRank,
// deltaG) triples, one single-atom pose each.
func swissDockFile(poses [][3]float64) string {
	var sb strings.Builder
	for i, p := range poses {
		fmt.Fprintf(&sb, "REMARK Cluster: %d\n", int(p[0]))
		fmt.Fprintf(&sb, "REMARK ClusterRank: %d\n", int(p[1]))
		fmt.Fprintf(&sb, "REMARK deltaG: %.2f\n", p[2])
		sb.WriteString(pdbAtom(i+1, float64(i), 0, 0) + "\n")
		sb.WriteString("TER\n")
	}
	return sb.String()
}

// testWriter adapts *testing.T to io.Writer for loader warnings.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
