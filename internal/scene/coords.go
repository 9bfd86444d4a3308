package scene

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/rmera/gochem/v3"
)

// parsePDBModels splits PDB-flavored text on MODEL/ENDMDL boundaries and
// parses the ATOM/HETATM records of each model into a state. Atom records
// outside any MODEL block form an implicit leading model.
func parsePDBModels(pdb string) ([]*State, error) {
	var states []*State
	current := &State{}
	flush := func() {
		if len(current.Atoms) > 0 {
			states = append(states, current)
		}
		current = &State{}
	}

	scanner := bufio.NewScanner(strings.NewReader(pdb))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		record := strings.ToUpper(strings.TrimSpace(line[:6]))
		switch record {
		case "ATOM", "HETATM":
			atom, err := parseAtomLine(line, record == "HETATM")
			if err != nil {
				return nil, err
			}
			current.Atoms = append(current.Atoms, atom)
		case "ENDMDL", "END":
			flush()
		case "MODEL":
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return states, nil
}

// parseAtomLine reads one ATOM/HETATM record using the fixed PDB columns,
// falling back to whitespace fields for lines too short to carry them.
func parseAtomLine(line string, het bool) (Atom, error) {
	if len(line) < 54 {
		return parseAtomFields(line, het)
	}
	for len(line) < 80 {
		line += " "
	}
	serial, _ := strconv.Atoi(strings.TrimSpace(line[6:11]))
	resSeq, _ := strconv.Atoi(strings.TrimSpace(line[22:26]))
	x, errX := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if errX != nil || errY != nil || errZ != nil {
		return Atom{}, fmt.Errorf("malformed coordinates in %q", strings.TrimSpace(line))
	}
	return Atom{
		Het:     het,
		Serial:  serial,
		Name:    strings.TrimSpace(line[12:16]),
		ResName: strings.TrimSpace(line[17:20]),
		Chain:   strings.TrimSpace(line[21:22]),
		ResSeq:  resSeq,
		Element: strings.TrimSpace(line[76:78]),
		X:       x,
		Y:       y,
		Z:       z,
	}, nil
}

// parseAtomFields handles nonstandard short records written by some docking
// tools: record, serial, name, resName, [chain,] resSeq, x, y, z.
func parseAtomFields(line string, het bool) (Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return Atom{}, fmt.Errorf("malformed atom record %q", line)
	}
	coords := fields[len(fields)-3:]
	x, errX := strconv.ParseFloat(coords[0], 64)
	y, errY := strconv.ParseFloat(coords[1], 64)
	z, errZ := strconv.ParseFloat(coords[2], 64)
	if errX != nil || errY != nil || errZ != nil {
		// Last three fields may be occupancy/b-factor/element on exotic
		// layouts; without fixed columns there is nothing more to try.
		return Atom{}, fmt.Errorf("malformed coordinates in %q", line)
	}
	serial, _ := strconv.Atoi(fields[1])
	return Atom{Het: het, Serial: serial, Name: fields[2], X: x, Y: y, Z: z}, nil
}

// parseXYZStates reads a multi-frame XYZ trajectory: per frame an atom-count
// line, a comment line, then count coordinate lines of "element x y z".
func parseXYZStates(text string) ([]*State, error) {
	lines := splitLines(text)
	var states []*State
	for i := 0; i < len(lines); {
		countLine := strings.TrimSpace(lines[i])
		if countLine == "" {
			i++
			continue
		}
		count, err := strconv.Atoi(countLine)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("bad atom count %q at line %d", countLine, i+1)
		}
		if i+2+count > len(lines) {
			return nil, fmt.Errorf("truncated xyz frame at line %d", i+1)
		}
		st := &State{}
		for n := 0; n < count; n++ {
			fields := strings.Fields(lines[i+2+n])
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed xyz record %q", lines[i+2+n])
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("malformed xyz coordinates %q", lines[i+2+n])
			}
			st.Atoms = append(st.Atoms, Atom{
				Serial:  n + 1,
				Name:    fields[0],
				Element: fields[0],
				X:       x,
				Y:       y,
				Z:       z,
			})
		}
		states = append(states, st)
		i += count + 2
	}
	return states, nil
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Coords returns the coordinates of one state as a gochem matrix, one row
// per atom.
func (s *Scene) Coords(name string, state int) (*v3.Matrix, error) {
	o, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	if state < 1 || state > len(o.States) {
		return nil, fmt.Errorf("%w: %q state %d", ErrStateOutOfRange, name, state)
	}
	atoms := o.States[state-1].Atoms
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%q state %d has no atoms", name, state)
	}
	m := v3.Zeros(len(atoms))
	for i, a := range atoms {
		m.Set(i, 0, a.X)
		m.Set(i, 1, a.Y)
		m.Set(i, 2, a.Z)
	}
	return m, nil
}

// SetCoords replaces the coordinates of one state from a gochem matrix.
func (s *Scene) SetCoords(name string, state int, m *v3.Matrix) error {
	o, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	if state < 1 || state > len(o.States) {
		return fmt.Errorf("%w: %q state %d", ErrStateOutOfRange, name, state)
	}
	atoms := o.States[state-1].Atoms
	if m.NVecs() != len(atoms) {
		return fmt.Errorf("coordinate count %d does not match %d atoms", m.NVecs(), len(atoms))
	}
	for i := range atoms {
		atoms[i].X = m.At(i, 0)
		atoms[i].Y = m.At(i, 1)
		atoms[i].Z = m.At(i, 2)
	}
	return nil
}
