package formats

import (
	"fmt"
	"strings"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

// vinaFields are the AutoDock Vina remark names recognized as "field: value"
// lines inside a PDBQT model.
var vinaFields = []string{
	"INTER + INTRA",
	"INTER",
	"INTRA",
	"UNBOUND",
	"Name",
}

// Remark names for the three numbers of a "VINA RESULT" line: binding
// affinity (kcal/mol) and the RMSD lower/upper bounds to the best pose.
const (
	remarkAffinity = "Affinity"
	remarkRMSDLb   = "RMSD_lb"
	remarkRMSDUb   = "RMSD_ub"
)

// PDBQT loads an AutoDock Vina result file as one multi-state object, one
// state per MODEL, and records the docking remarks of each pose. Returns the
// object name used.
func (l *Loader) PDBQT(filename, object string) (string, error) {
	text, err := readFileString(filename)
	if err != nil {
		return "", err
	}
	if object == "" {
		object = baseObjectName(filename)
	}
	object = l.Scene.NonRepeatedName(object)

	var entries []*docked.Entry
	remarks := make(map[string]docked.Remark)
	sawModel := false
	flush := func() {
		if len(remarks) == 0 && !sawModel {
			return
		}
		entries = append(entries, docked.NewEntry(remarks))
		remarks = make(map[string]docked.Remark)
	}
	for _, line := range splitTextLines(text) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "MODEL"):
			if sawModel {
				flush()
			}
			sawModel = true
		case strings.HasPrefix(line, "REMARK"):
			parseVinaRemark(strings.TrimSpace(strings.TrimPrefix(line, "REMARK")), remarks)
		}
	}
	if sawModel {
		flush()
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: no MODEL records in %q", ErrMalformedInput, filename)
	}

	if err := l.Scene.ReadPDBString(text, object); err != nil {
		return "", err
	}
	for n, e := range entries {
		e.Object = object
		e.State = n + 1
	}
	l.Registry.Append(entries...)
	l.Registry.EqualizeRemarks()
	return object, nil
}

// parseVinaRemark interprets the payload of one REMARK line. The "VINA
// RESULT" triple decomposes into three fixed numeric remarks; the fixed Vina
// field list is parsed as "field: value".
func parseVinaRemark(rest string, remarks map[string]docked.Remark) {
	if after, ok := strings.CutPrefix(rest, "VINA RESULT:"); ok {
		fields := strings.Fields(after)
		names := []string{remarkAffinity, remarkRMSDLb, remarkRMSDUb}
		for i, name := range names {
			if i < len(fields) {
				remarks[name] = docked.Parse(fields[i])
			}
		}
		return
	}
	for _, field := range vinaFields {
		if after, ok := strings.CutPrefix(rest, field); ok {
			after = strings.TrimSpace(after)
			if value, ok := strings.CutPrefix(after, ":"); ok {
				remarks[field] = docked.Parse(strings.TrimSpace(value))
			} else if value, ok := strings.CutPrefix(after, "="); ok {
				remarks[field] = docked.Parse(strings.TrimSpace(value))
			}
			return
		}
	}
}
