package molecule

import (
	"strconv"
	"strings"
	"unicode"
)

func parsePDB(lines []string) (*Structure, error) {
	st := &Structure{}
	serialIndex := make(map[int]int)
	var conect [][2]int
	// only the first model is read; CONECT follows the last ENDMDL
	pastFirstModel := false

	for n, line := range lines {
		record := column(line, 0, 6)
		switch record {
		case "HEADER":
			if st.Title == "" {
				st.Title = column(line, 62, 66)
			}
		case "ATOM", "HETATM":
			if pastFirstModel {
				continue
			}
			a, err := parsePDBAtom(line)
			if err != nil {
				return nil, &ParseError{Format: "pdb", Line: n + 1, Wrapped: err}
			}
			serialIndex[a.Serial] = len(st.Atoms)
			st.Atoms = append(st.Atoms, a)
		case "CONECT":
			from, err := strconv.Atoi(column(line, 6, 11))
			if err != nil {
				return nil, &ParseError{Format: "pdb", Line: n + 1, Wrapped: err}
			}
			for _, start := range []int{11, 16, 21, 26} {
				field := column(line, start, start+5)
				if field == "" {
					continue
				}
				to, err := strconv.Atoi(field)
				if err != nil {
					return nil, &ParseError{Format: "pdb", Line: n + 1, Wrapped: err}
				}
				conect = append(conect, [2]int{from, to})
			}
		case "ENDMDL":
			pastFirstModel = true
		}
	}
	return withConect(st, serialIndex, conect), nil
}

func withConect(st *Structure, serialIndex map[int]int, conect [][2]int) *Structure {
	seen := make(map[[2]int]struct{})
	for _, c := range conect {
		i, ok1 := serialIndex[c[0]]
		j, ok2 := serialIndex[c[1]]
		if ok1 && ok2 {
			st.addBond(i, j, 1, seen)
		}
	}
	return st
}

func parsePDBAtom(line string) (Atom, error) {
	var a Atom
	var err error

	if s := column(line, 6, 11); s != "" {
		if a.Serial, err = strconv.Atoi(s); err != nil {
			return a, err
		}
	}
	a.Name = column(line, 12, 16)
	a.Residue = column(line, 17, 20)
	a.Chain = column(line, 21, 22)
	if s := column(line, 22, 26); s != "" {
		if a.ResSeq, err = strconv.Atoi(s); err != nil {
			return a, err
		}
	}
	if a.X, err = strconv.ParseFloat(column(line, 30, 38), 64); err != nil {
		return a, err
	}
	if a.Y, err = strconv.ParseFloat(column(line, 38, 46), 64); err != nil {
		return a, err
	}
	if a.Z, err = strconv.ParseFloat(column(line, 46, 54), 64); err != nil {
		return a, err
	}

	a.Element = NormalizeSymbol(column(line, 76, 78))
	if a.Element == "" {
		a.Element = elementFromName(rawColumn(line, 12, 16))
	}
	return a, nil
}

// elementFromName guesses the element from a raw PDB atom name such as
// " CA " (alpha carbon) or "FE  " (iron) when columns 77-78 are blank.
// Names starting in column 13 are two-letter elements, except hydrogens
// with four-character names like "HD11".
func elementFromName(raw string) string {
	letters := strings.TrimLeftFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) })
	letters = strings.TrimSpace(letters)
	if letters == "" {
		return ""
	}
	if len(raw) > 0 && unicode.IsLetter(rune(raw[0])) && raw[0] != 'H' && len(letters) >= 2 {
		if _, ok := LookupElement(letters[:2]); ok {
			return NormalizeSymbol(letters[:2])
		}
	}
	return NormalizeSymbol(letters[:1])
}

func rawColumn(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
