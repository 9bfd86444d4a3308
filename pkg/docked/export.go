package docked

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatTXT = "txt"
)

// GuessFormat infers the export format from a filename suffix, falling back
// to csv for unrecognized suffixes.
func GuessFormat(filename string) string {
	suffix := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if suffix == FormatCSV || suffix == FormatTXT {
		return suffix
	}
	return FormatCSV
}

// Export writes one header line and one line per entry to w, fields in
// RemarkKeys order. Fields are joined by ";" for csv and by two spaces for
// txt, where the header line is additionally prefixed with "#  ". Returns
// ErrNoEntries for an empty registry and ErrUnknownFormat for formats other
// than csv/txt.
func (r *Registry) Export(w io.Writer, format string) error {
	if r.Len() == 0 {
		return ErrNoEntries
	}
	format = strings.ToLower(format)
	var joiner string
	switch format {
	case FormatCSV:
		joiner = ";"
	case FormatTXT:
		joiner = "  "
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	keys := r.RemarkKeys()
	bw := bufio.NewWriter(w)
	header := strings.Join(keys, joiner)
	if format == FormatTXT {
		header = "#  " + header
	}
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	fields := make([]string, len(keys))
	for _, e := range r.entries {
		for i, k := range keys {
			fields[i] = e.Remarks[k].String()
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, joiner)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportFile writes the registry's remark data to filename in the given
// format, guessing from the suffix when format is empty.
func (r *Registry) ExportFile(filename, format string) error {
	if format == "" {
		format = GuessFormat(filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %q: %w", filename, err)
	}
	if err := r.Export(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
