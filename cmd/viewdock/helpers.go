// Shared helpers for viewdock CLI commands.
package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unizar-flav/viewdock/internal/formats"
	"github.com/unizar-flav/viewdock/internal/scene"
	"github.com/unizar-flav/viewdock/internal/session"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

// cliSession bundles the attached store with the scene and registry restored
// from it, plus a loader over both.
type cliSession struct {
	store    *session.Store
	scene    *scene.Scene
	registry *docked.Registry
	loader   *formats.Loader
}

// openSession attaches the session store under the resolved data directory and
// restores the scene and registry from it. Scene renames propagate into the
// registry so entries never point at stale object names. The caller must call
// close or saveAndClose.
func openSession() (*cliSession, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store := session.NewStore()
	cfg := session.Config{
		Backend: session.BackendSQLite,
		DataDir: dataDir,
	}
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}

	sc := scene.New()
	reg, err := store.Load(sc)
	if err != nil {
		store.Detach()
		return nil, fmt.Errorf("load session: %w", err)
	}
	sc.OnRename(reg.RenameObject)

	loader := formats.NewLoader(reg, sc)
	if cliConfig.fetchTimeoutSeconds > 0 {
		loader.Client = &http.Client{
			Timeout: time.Duration(cliConfig.fetchTimeoutSeconds) * time.Second,
		}
	}

	return &cliSession{store: store, scene: sc, registry: reg, loader: loader}, nil
}

// close detaches the store without persisting, for read-only commands.
func (s *cliSession) close() error {
	return s.store.Detach()
}

// saveAndClose persists the session and detaches the store.
func (s *cliSession) saveAndClose() error {
	if err := s.store.Save(s.registry, s.scene); err != nil {
		s.store.Detach()
		return fmt.Errorf("save session: %w", err)
	}
	return s.store.Detach()
}

// parseCriteria converts key=value arguments into find criteria; values are
// interpreted the same way remarks read from files are. A repeated key is an
// error: criteria are a map, so the second value would silently win.
func parseCriteria(args []string) (map[string]docked.Remark, error) {
	criteria := make(map[string]docked.Remark, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("criteria must be key=value, got %q", arg)
		}
		if _, dup := criteria[key]; dup {
			return nil, fmt.Errorf("duplicate criteria key %q", key)
		}
		criteria[key] = docked.Parse(value)
	}
	return criteria, nil
}
