package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

// XYZ loads a multi-frame XYZ trajectory as one multi-state object. The
// comment line of each frame becomes that frame's sole remark value; when
// every comment looks numeric the values are coerced to numbers. Returns the
// object name used.
func (l *Loader) XYZ(filename, object string) (string, error) {
	text, err := readFileString(filename)
	if err != nil {
		return "", err
	}
	if object == "" {
		object = baseObjectName(filename)
	}
	object = l.Scene.NonRepeatedName(object)

	comments, err := xyzComments(text)
	if err != nil {
		return "", err
	}
	if len(comments) == 0 {
		return "", fmt.Errorf("%w: no frames in %q", ErrMalformedInput, filename)
	}

	allNumeric := true
	for _, c := range comments {
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			allNumeric = false
			break
		}
	}

	if err := l.Scene.LoadFile(filename, object); err != nil {
		return "", err
	}

	for n, c := range comments {
		var value docked.Remark
		if allNumeric {
			v, _ := strconv.ParseFloat(c, 64)
			value = docked.Number(v)
		} else {
			value = docked.Str(c)
		}
		e := docked.NewEntry(map[string]docked.Remark{
			"structure": docked.Int(n + 1),
			"value":     value,
		})
		e.Object = object
		e.State = n + 1
		l.Registry.Append(e)
	}
	l.Registry.EqualizeRemarks()
	return object, nil
}

// xyzComments scans the two-line-per-frame header convention and returns one
// comment string per frame.
func xyzComments(text string) ([]string, error) {
	lines := splitTextLines(text)
	var comments []string
	for i := 0; i < len(lines); {
		countLine := strings.TrimSpace(lines[i])
		if countLine == "" {
			i++
			continue
		}
		count, err := strconv.Atoi(countLine)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: bad atom count %q", ErrMalformedInput, countLine)
		}
		if i+1 >= len(lines) {
			return nil, fmt.Errorf("%w: truncated xyz frame", ErrMalformedInput)
		}
		comments = append(comments, strings.TrimSpace(lines[i+1]))
		i += count + 2
	}
	return comments, nil
}
