package formats

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chimeraXDescriptor(targetURL, clusterURL string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<ChimeraPuppet type="std_webdata">
  <web_files>
    <file name="target.pdb" format="text" prot="true" loc="%s"/>
  </web_files>
  <commands>
    <py_cmd>open_files("%s")</py_cmd>
  </commands>
</ChimeraPuppet>
`, targetURL, clusterURL)
}

func TestChimeraXFetch(t *testing.T) {
	targetPDB := atomLine(1, 5) + "\n"
	clusterPDB := dock4Cluster([][2]int{{0, 0}, {0, 1}})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/target.pdb":
			fmt.Fprint(w, targetPDB)
		case "/clusters.pdb":
			fmt.Fprint(w, clusterPDB)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := newTestLoader()
	path := writeTemp(t, "job.chimerax",
		chimeraXDescriptor(srv.URL+"/target.pdb", srv.URL+"/clusters.pdb"))

	if err := l.ChimeraX(path); err != nil {
		t.Fatal(err)
	}
	if got := l.Scene.CountStates("target"); got != 1 {
		t.Fatalf("target has %d states, want 1", got)
	}
	if got := l.Scene.CountStates("clusters"); got != 2 {
		t.Fatalf("clusters has %d states, want 2", got)
	}
	if l.Registry.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Registry.Len())
	}
	if l.Registry.Entries()[0].Object != "clusters" {
		t.Fatalf("entry points at %q", l.Registry.Entries()[0].Object)
	}
}

func TestChimeraXLocalFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	targetURL := srv.URL + "/target.pdb"
	clusterURL := srv.URL + "/clusters.pdb"
	srv.Close()

	dir := t.TempDir()
	descriptor := filepath.Join(dir, "job.chimerax")
	if err := os.WriteFile(descriptor, []byte(chimeraXDescriptor(targetURL, clusterURL)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "target.pdb"), []byte(atomLine(1, 5)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cluster := dock4Cluster([][2]int{{0, 0}})
	if err := os.WriteFile(filepath.Join(dir, "clusters.pdb"), []byte(cluster), 0o644); err != nil {
		t.Fatal(err)
	}

	l := newTestLoader()
	var warnings bytes.Buffer
	l.Warn = &warnings

	if err := l.ChimeraX(descriptor); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(warnings.String(), "trying local files") {
		t.Fatalf("expected fallback warning, got %q", warnings.String())
	}
	if got := l.Scene.CountStates("target"); got != 1 {
		t.Fatalf("target has %d states, want 1", got)
	}
	if l.Registry.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Registry.Len())
	}
}

func TestChimeraXFetchFailureNoLocalFiles(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	targetURL := srv.URL + "/target.pdb"
	clusterURL := srv.URL + "/clusters.pdb"
	srv.Close()

	l := newTestLoader()
	path := writeTemp(t, "job.chimerax", chimeraXDescriptor(targetURL, clusterURL))

	err := l.ChimeraX(path)
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestChimeraXMalformedDescriptor(t *testing.T) {
	l := newTestLoader()
	path := writeTemp(t, "job.chimerax", "<ChimeraPuppet></ChimeraPuppet>")
	err := l.ChimeraX(path)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestChimeraXNonRepeatedObjects(t *testing.T) {
	targetPDB := atomLine(1, 5) + "\n"
	clusterPDB := dock4Cluster([][2]int{{0, 0}})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target.pdb" {
			fmt.Fprint(w, targetPDB)
			return
		}
		fmt.Fprint(w, clusterPDB)
	}))
	defer srv.Close()

	l := newTestLoader()
	path := writeTemp(t, "job.chimerax",
		chimeraXDescriptor(srv.URL+"/target.pdb", srv.URL+"/clusters.pdb"))

	if err := l.ChimeraX(path); err != nil {
		t.Fatal(err)
	}
	if err := l.ChimeraX(path); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"target", "target_2", "clusters", "clusters_2"} {
		if !l.Scene.HasObject(name) {
			t.Fatalf("expected object %q after second load", name)
		}
	}
}
