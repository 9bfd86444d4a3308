package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

// PyDock loads a pyDock energy resume file (.ene / .eneRST). The receptor
// (*_rec.pdb) is loaded once as <object>_rec; each table row's Conf number is
// matched against a companion *_<Conf>.pdb file loaded as the next state of
// <object>_lig. Rows whose file is missing are skipped with a warning. After
// loading, receptor atoms are subtracted from the ligand object. Returns the
// base object name used.
func (l *Loader) PyDock(filename, object string, maxN int) (string, error) {
	if object == "" {
		object = baseObjectName(filename)
	}
	recObj := object + "_rec"
	ligObj := object + "_lig"

	dir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		return "", err
	}
	pdbFiles, err := filepath.Glob(filepath.Join(dir, "*.pdb"))
	if err != nil {
		return "", err
	}
	receptorFile := findSuffix(pdbFiles, "_rec.pdb")
	ligandFile := findSuffix(pdbFiles, "_lig.pdb")
	if receptorFile == "" || ligandFile == "" {
		return "", fmt.Errorf("%w: missing '_rec.pdb' or '_lig.pdb' next to %q", ErrMalformedInput, filename)
	}

	rows, header, err := readEnergyTable(filename)
	if err != nil {
		return "", err
	}
	confCol := -1
	for i, h := range header {
		if h == "Conf" {
			confCol = i
		}
	}
	if confCol < 0 {
		return "", fmt.Errorf("%w: energy table has no 'Conf' column", ErrMalformedInput)
	}

	if err := l.Scene.LoadFile(receptorFile, recObj); err != nil {
		return "", err
	}

	var entries []*docked.Entry
	missing := false
	for n, row := range rows {
		if maxN > 0 && n+1 > maxN {
			break
		}
		conf := row[confCol]
		confFile := findSuffix(pdbFiles, "_"+conf+".pdb")
		if confFile == "" {
			missing = true
			continue
		}
		if err := l.Scene.LoadFile(confFile, ligObj); err != nil {
			return "", err
		}
		remarks := make(map[string]docked.Remark, len(header))
		for i, h := range header {
			if i < len(row) {
				remarks[h] = docked.Parse(row[i])
			}
		}
		e := docked.NewEntry(remarks)
		e.Object = ligObj
		e.State = len(entries) + 1
		entries = append(entries, e)
	}
	if missing {
		l.warnf("some ligands defined in the energy file could not be found and loaded")
	}

	l.Registry.Append(entries...)
	l.Registry.EqualizeRemarks()

	if l.Scene.HasObject(ligObj) {
		if _, err := l.Scene.Subtract(ligObj, recObj); err != nil {
			return "", err
		}
	}
	return object, nil
}

// readEnergyTable parses the whitespace-delimited table: separator lines
// beginning with "----" are dropped, the first remaining line is the header.
func readEnergyTable(filename string) ([][]string, []string, error) {
	text, err := readFileString(filename)
	if err != nil {
		return nil, nil, err
	}
	var rows [][]string
	var header []string
	for _, line := range splitTextLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "----") {
			continue
		}
		fields := strings.Fields(line)
		if header == nil {
			header = fields
			continue
		}
		rows = append(rows, fields)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("%w: empty energy table %q", ErrMalformedInput, filename)
	}
	return rows, header, nil
}

// findSuffix returns the first path ending with suffix, or "".
func findSuffix(paths []string, suffix string) string {
	for _, p := range paths {
		if strings.HasSuffix(p, suffix) {
			return p
		}
	}
	return ""
}
