package molecule

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSDF reads the first record of an MDL V2000 molfile/SDF.
func parseSDF(lines []string) (*Structure, error) {
	if len(lines) < 4 {
		return nil, fmt.Errorf("sdf: %w: header needs 4 lines, got %d", ErrTruncated, len(lines))
	}
	st := &Structure{Title: strings.TrimSpace(lines[0])}

	counts := lines[3]
	if strings.Contains(counts, "V3000") {
		return nil, &ParseError{Format: "sdf", Line: 4, Wrapped: fmt.Errorf("V3000 molfiles are not supported")}
	}
	nAtoms, nBonds, err := parseCounts(counts)
	if err != nil {
		return nil, &ParseError{Format: "sdf", Line: 4, Wrapped: err}
	}
	if nAtoms < 0 || nBonds < 0 {
		return nil, &ParseError{Format: "sdf", Line: 4, Wrapped: fmt.Errorf("negative counts %d/%d", nAtoms, nBonds)}
	}

	atomStart := 4
	bondStart := atomStart + nAtoms
	if len(lines) < bondStart+nBonds {
		return nil, fmt.Errorf("sdf: %w: expected %d atoms and %d bonds", ErrTruncated, nAtoms, nBonds)
	}

	for i := atomStart; i < bondStart; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			return nil, &ParseError{Format: "sdf", Line: i + 1, Wrapped: fmt.Errorf("atom line has %d fields", len(fields))}
		}
		var xyz [3]float64
		for k := 0; k < 3; k++ {
			if xyz[k], err = strconv.ParseFloat(fields[k], 64); err != nil {
				return nil, &ParseError{Format: "sdf", Line: i + 1, Wrapped: err}
			}
		}
		st.Atoms = append(st.Atoms, Atom{
			Serial:  i - atomStart + 1,
			Name:    fields[3],
			Element: NormalizeSymbol(fields[3]),
			X:       xyz[0],
			Y:       xyz[1],
			Z:       xyz[2],
		})
	}

	seen := make(map[[2]int]struct{}, nBonds)
	for i := bondStart; i < bondStart+nBonds; i++ {
		a, b, order, err := parseBondLine(lines[i])
		if err != nil {
			return nil, &ParseError{Format: "sdf", Line: i + 1, Wrapped: err}
		}
		st.addBond(a-1, b-1, order, seen)
	}
	return st, nil
}

// parseCounts reads "aaabbb..." fixed columns, falling back to fields for
// files written with loose spacing.
func parseCounts(line string) (int, int, error) {
	a, errA := strconv.Atoi(column(line, 0, 3))
	b, errB := strconv.Atoi(column(line, 3, 6))
	if errA == nil && errB == nil {
		return a, b, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("invalid counts line %q", line)
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseBondLine(line string) (int, int, int, error) {
	a, errA := strconv.Atoi(column(line, 0, 3))
	b, errB := strconv.Atoi(column(line, 3, 6))
	o, errO := strconv.Atoi(column(line, 6, 9))
	if errA == nil && errB == nil && errO == nil {
		return a, b, o, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("bond line has %d fields", len(fields))
	}
	vals := make([]int, 3)
	for k := range vals {
		v, err := strconv.Atoi(fields[k])
		if err != nil {
			return 0, 0, 0, err
		}
		vals[k] = v
	}
	return vals[0], vals[1], vals[2], nil
}
