// Package formats parses docking-result files (AutoDock Vina PDBQT, SwissDock
// Dock4 clusters and ChimeraX descriptors, pyDock energy tables, XYZ
// trajectories), registers the geometry with the scene, and appends the
// per-pose remarks to the docked registry.
package formats

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrNetworkFailure = errors.New("remote fetch failed")
)

// DefaultPyDockMaxN caps how many pyDock conformations a generic load pulls in.
const DefaultPyDockMaxN = 100

// Loader reads docking files into a registry/scene pair.
type Loader struct {
	Registry *docked.Registry
	Scene    *scene.Scene

	// Client fetches remote ChimeraX payloads; a default with a 30s
	// timeout is used when nil.
	Client *http.Client

	// Warn receives non-fatal load warnings; defaults to os.Stderr.
	Warn io.Writer
}

// NewLoader returns a loader bound to the given registry and scene.
func NewLoader(reg *docked.Registry, sc *scene.Scene) *Loader {
	return &Loader{Registry: reg, Scene: sc}
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (l *Loader) warnf(format string, args ...any) {
	w := l.Warn
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "viewdock: WARNING: "+format+"\n", args...)
}

// Load dispatches on the filename suffix: recognized docking formats go
// through the matching reader with default options, anything else falls back
// to the scene's native loader.
func (l *Loader) Load(filename, object string) error {
	suffix := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch suffix {
	case "chimerax":
		return l.ChimeraX(filename)
	case "dock4", "zip":
		_, err := l.Dock4(filename, object, 0)
		return err
	case "ene", "enerst":
		_, err := l.PyDock(filename, object, DefaultPyDockMaxN)
		return err
	case "pdbqt":
		_, err := l.PDBQT(filename, object)
		return err
	case "xyz":
		_, err := l.XYZ(filename, object)
		return err
	default:
		if object == "" {
			object = baseObjectName(filename)
		}
		return l.Scene.LoadFile(filename, l.Scene.NonRepeatedName(object))
	}
}

// baseObjectName derives a default object name from the filename: the
// basename up to the first dot.
func baseObjectName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// readFileString reads a whole file, wrapping not-found errors so callers can
// surface them as user errors.
func readFileString(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", filename, err)
	}
	return string(data), nil
}

func splitTextLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
