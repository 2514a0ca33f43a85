package molecule

import (
	"fmt"
	"strconv"
	"strings"
)

func parseXYZ(lines []string) (*Structure, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("xyz: %w: header needs 2 lines", ErrTruncated)
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, &ParseError{Format: "xyz", Line: 1, Wrapped: err}
	}
	if n < 0 {
		return nil, &ParseError{Format: "xyz", Line: 1, Wrapped: fmt.Errorf("negative atom count %d", n)}
	}
	if len(lines) < n+2 {
		return nil, fmt.Errorf("xyz: %w: expected %d atoms, got %d lines", ErrTruncated, n, len(lines)-2)
	}

	st := &Structure{Title: strings.TrimSpace(lines[1]), Atoms: make([]Atom, 0, n)}
	for i := 2; i < n+2; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			return nil, &ParseError{Format: "xyz", Line: i + 1, Wrapped: fmt.Errorf("atom line has %d fields", len(fields))}
		}
		var xyz [3]float64
		for k := 0; k < 3; k++ {
			if xyz[k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
				return nil, &ParseError{Format: "xyz", Line: i + 1, Wrapped: err}
			}
		}
		st.Atoms = append(st.Atoms, Atom{
			Serial:  i - 1,
			Name:    fields[0],
			Element: NormalizeSymbol(fields[0]),
			X:       xyz[0],
			Y:       xyz[1],
			Z:       xyz[2],
		})
	}
	return st, nil
}
