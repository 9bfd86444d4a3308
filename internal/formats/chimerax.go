package formats

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
)

// chimeraXDoc is the part of a UCSF Chimera web-data descriptor SwissDock
// writes: a receptor URL plus a scripting command that embeds the ligand
// cluster URL.
type chimeraXDoc struct {
	XMLName  xml.Name `xml:"ChimeraPuppet"`
	WebFiles struct {
		File struct {
			Loc string `xml:"loc,attr"`
		} `xml:"file"`
	} `xml:"web_files"`
	Commands struct {
		PyCmd string `xml:"py_cmd"`
	} `xml:"commands"`
}

// clusterURLRe extracts the quoted cluster-PDB URL from the command string.
var clusterURLRe = regexp.MustCompile(`"(http[^"]+pdb)"`)

// ChimeraX loads a SwissDock .chimerax descriptor: receptor and ligand
// cluster are fetched from the referenced URLs, with a fallback to same-named
// files next to the descriptor when the remote fetch fails (expired
// calculations). The receptor becomes object "target" and the cluster is
// loaded through the Dock4 reader as "clusters".
func (l *Loader) ChimeraX(filename string) error {
	text, err := readFileString(filename)
	if err != nil {
		return err
	}

	var doc chimeraXDoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return fmt.Errorf("%w: invalid chimerax descriptor: %v", ErrMalformedInput, err)
	}
	targetURL := doc.WebFiles.File.Loc
	m := clusterURLRe.FindStringSubmatch(doc.Commands.PyCmd)
	if targetURL == "" || m == nil {
		return fmt.Errorf("%w: chimerax descriptor lacks target or cluster URL", ErrMalformedInput)
	}
	clusterURL := m[1]
	targetName := urlBasename(targetURL)
	clusterName := urlBasename(clusterURL)
	if targetName == "" || clusterName == "" {
		return fmt.Errorf("%w: chimerax descriptor has unusable URLs", ErrMalformedInput)
	}

	targetObj := l.Scene.NonRepeatedName("target")
	clustersObj := l.Scene.NonRepeatedName("clusters")

	targetPDB, errTarget := l.fetch(targetURL)
	clusterPDB, errCluster := l.fetch(clusterURL)
	if errTarget == nil && errCluster == nil {
		if err := l.Scene.ReadPDBString(targetPDB, targetObj); err != nil {
			return err
		}
		return l.loadDock4Lines(splitTextLines(clusterPDB), clustersObj, Dock4ModeAll)
	}

	fetchErr := errTarget
	if fetchErr == nil {
		fetchErr = errCluster
	}
	l.warnf("bad server response for %q, calculation too old? trying local files", filename)

	dir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		return err
	}
	targetFile := filepath.Join(dir, targetName)
	clusterFile := filepath.Join(dir, clusterName)
	if !fileExists(targetFile) || !fileExists(clusterFile) {
		return fmt.Errorf("%w: %v", ErrNetworkFailure, fetchErr)
	}
	if err := l.Scene.LoadFile(targetFile, targetObj); err != nil {
		return err
	}
	lines, err := readDock4Lines(clusterFile)
	if err != nil {
		return err
	}
	return l.loadDock4Lines(lines, clustersObj, Dock4ModeAll)
}

// fetch retrieves a URL body as a string.
func (l *Loader) fetch(rawURL string) (string, error) {
	resp, err := l.client().Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("%w: %s returned %s", ErrNetworkFailure, rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	return string(body), nil
}

func urlBasename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
