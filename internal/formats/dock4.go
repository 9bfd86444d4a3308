package formats

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

// Dock4 load modes.
const (
	Dock4ModeAll     = 0 // all poses into one multi-state object
	Dock4ModeBest    = 1 // only poses with ClusterRank == 0
	Dock4ModeCluster = 2 // one object per distinct Cluster value
)

// dock4RemarkRe matches "REMARK key: value" lines with a numeric value.
var dock4RemarkRe = regexp.MustCompile(`(?i)^REMARK\b\s+(\w+)\s*:\s*(-?\d+\.?\d*)`)

// dock4Pose is one parsed pose: its accumulated remarks and the verbatim
// coordinate block, terminated by an injected ENDMDL marker.
type dock4Pose struct {
	remarks map[string]docked.Remark
	block   string
}

// Dock4 loads a SwissDock cluster of ligands in PDB Dock4 format, optionally
// zip-wrapped. Returns the base object name used.
func (l *Loader) Dock4(filename, object string, mode int) (string, error) {
	lines, err := readDock4Lines(filename)
	if err != nil {
		return "", err
	}
	if object == "" {
		object = baseObjectName(filename)
	}
	object = l.Scene.NonRepeatedName(object)
	if err := l.loadDock4Lines(lines, object, mode); err != nil {
		return "", err
	}
	return object, nil
}

// loadDock4Lines runs the streamed scan over cluster text already in memory.
// Used directly by the ChimeraX reader for fetched payloads.
func (l *Loader) loadDock4Lines(lines []string, object string, mode int) error {
	if mode < Dock4ModeAll || mode > Dock4ModeCluster {
		return fmt.Errorf("invalid dock4 mode %d (want 0, 1 or 2)", mode)
	}

	poses := scanDock4(lines)
	if len(poses) == 0 {
		return fmt.Errorf("%w: no ATOM/HETATM records found", ErrMalformedInput)
	}

	entries := make([]*docked.Entry, len(poses))
	for n, p := range poses {
		entries[n] = docked.NewEntry(p.remarks)
		entries[n].Object = object
		entries[n].State = n + 1
	}

	switch mode {
	case Dock4ModeBest:
		var blocks []string
		var kept []*docked.Entry
		for n, e := range entries {
			rank, ok := e.Remarks["ClusterRank"]
			if !ok {
				return fmt.Errorf("%w: missing 'ClusterRank' while splitting", ErrMalformedInput)
			}
			if rank.Equal(docked.Int(0)) {
				blocks = append(blocks, poses[n].block)
				e.State = len(blocks)
				kept = append(kept, e)
			}
		}
		if err := l.Scene.ReadPDBString(strings.Join(blocks, ""), object); err != nil {
			return err
		}
		entries = kept

	case Dock4ModeCluster:
		blocks := make(map[string][]string)
		var order []string
		for n, e := range entries {
			cluster, ok := e.Remarks["Cluster"]
			if !ok {
				return fmt.Errorf("%w: missing 'Cluster' while splitting", ErrMalformedInput)
			}
			name := object + "-" + cluster.String()
			if _, ok := blocks[name]; !ok {
				order = append(order, name)
			}
			blocks[name] = append(blocks[name], poses[n].block)
			e.Object = name
			e.State = len(blocks[name])
		}
		for _, name := range order {
			if err := l.Scene.ReadPDBString(strings.Join(blocks[name], ""), name); err != nil {
				return err
			}
		}

	default:
		blocks := make([]string, len(poses))
		for n, p := range poses {
			blocks[n] = p.block
		}
		if err := l.Scene.ReadPDBString(strings.Join(blocks, ""), object); err != nil {
			return err
		}
	}

	l.Registry.Append(entries...)
	l.Registry.EqualizeRemarks()
	return nil
}

// scanDock4 walks the cluster text recognizing three line classes: compliant
// REMARK runs accumulated into a pending remark set, ATOM/HETATM runs
// captured verbatim as one pose, and everything else skipped.
func scanDock4(lines []string) []dock4Pose {
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			trimmed = append(trimmed, s)
		}
	}

	var poses []dock4Pose
	pending := make(map[string]docked.Remark)
	i := 0
	for i < len(trimmed) {
		keyword := strings.ToUpper(strings.Fields(trimmed[i])[0])
		switch {
		case keyword == "REMARK" && dock4RemarkRe.MatchString(trimmed[i]):
			pending = make(map[string]docked.Remark)
			for i < len(trimmed) {
				m := dock4RemarkRe.FindStringSubmatch(trimmed[i])
				if m == nil {
					break
				}
				pending[m[1]] = dock4RemarkValue(m[1], m[2])
				i++
			}
		case keyword == "ATOM" || keyword == "HETATM":
			start := i
			for i < len(trimmed) {
				k := strings.ToUpper(strings.Fields(trimmed[i])[0])
				if k != "ATOM" && k != "HETATM" {
					break
				}
				i++
			}
			remarks := make(map[string]docked.Remark, len(pending))
			for k, v := range pending {
				remarks[k] = v
			}
			poses = append(poses, dock4Pose{
				remarks: remarks,
				block:   strings.Join(trimmed[start:i], "\n") + "\nENDMDL\n",
			})
		default:
			i++
		}
	}
	return poses
}

// dock4RemarkValue parses a remark value: Cluster and ClusterRank are integer
// identifiers, everything else a float.
func dock4RemarkValue(key, value string) docked.Remark {
	if key == "Cluster" || key == "ClusterRank" {
		if v, err := strconv.Atoi(strings.TrimSuffix(value, ".")); err == nil {
			return docked.Int(v)
		}
	}
	return docked.Parse(value)
}

// readDock4Lines reads a cluster file, unwrapping a zip archive to its first
// PDB-like member when present.
func readDock4Lines(filename string) ([]string, error) {
	text, err := readFileString(filename)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(text, "PK\x03\x04") {
		unwrapped, err := unwrapZip([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("unwrap %q: %w", filename, err)
		}
		text = unwrapped
	}
	return splitTextLines(text), nil
}

func unwrapZip(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".pdb") && !strings.HasSuffix(name, ".dock4") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("%w: no PDB member in zip archive", ErrMalformedInput)
}
