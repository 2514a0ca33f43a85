package molecule

import "strings"

// Element holds per-element rendering data. Radii are in ångström,
// colours are 8-bit RGB.
type Element struct {
	Symbol       string
	Covalent     float64
	VanDerWaals  float64
	Color        [3]uint8
	AtomicNumber int
}

var unknownElement = Element{Symbol: "X", Covalent: 0.77, VanDerWaals: 1.70, Color: [3]uint8{255, 20, 147}}

// CPK-style colours, covalent radii from Cordero et al. and Bondi vdW radii.
var elements = map[string]Element{
	"H":  {"H", 0.31, 1.20, [3]uint8{255, 255, 255}, 1},
	"HE": {"He", 0.28, 1.40, [3]uint8{217, 255, 255}, 2},
	"LI": {"Li", 1.28, 1.82, [3]uint8{204, 128, 255}, 3},
	"B":  {"B", 0.84, 1.92, [3]uint8{255, 181, 181}, 5},
	"C":  {"C", 0.76, 1.70, [3]uint8{144, 144, 144}, 6},
	"N":  {"N", 0.71, 1.55, [3]uint8{48, 80, 248}, 7},
	"O":  {"O", 0.66, 1.52, [3]uint8{255, 13, 13}, 8},
	"F":  {"F", 0.57, 1.47, [3]uint8{144, 224, 80}, 9},
	"NA": {"Na", 1.66, 2.27, [3]uint8{171, 92, 242}, 11},
	"MG": {"Mg", 1.41, 1.73, [3]uint8{138, 255, 0}, 12},
	"AL": {"Al", 1.21, 1.84, [3]uint8{191, 166, 166}, 13},
	"SI": {"Si", 1.11, 2.10, [3]uint8{240, 200, 160}, 14},
	"P":  {"P", 1.07, 1.80, [3]uint8{255, 128, 0}, 15},
	"S":  {"S", 1.05, 1.80, [3]uint8{255, 255, 48}, 16},
	"CL": {"Cl", 1.02, 1.75, [3]uint8{31, 240, 31}, 17},
	"K":  {"K", 2.03, 2.75, [3]uint8{143, 64, 212}, 19},
	"CA": {"Ca", 1.76, 2.31, [3]uint8{61, 255, 0}, 20},
	"MN": {"Mn", 1.39, 2.00, [3]uint8{156, 122, 199}, 25},
	"FE": {"Fe", 1.32, 2.00, [3]uint8{224, 102, 51}, 26},
	"CO": {"Co", 1.26, 2.00, [3]uint8{240, 144, 160}, 27},
	"NI": {"Ni", 1.24, 1.63, [3]uint8{80, 208, 80}, 28},
	"CU": {"Cu", 1.32, 1.40, [3]uint8{200, 128, 51}, 29},
	"ZN": {"Zn", 1.22, 1.39, [3]uint8{125, 128, 176}, 30},
	"SE": {"Se", 1.20, 1.90, [3]uint8{255, 161, 0}, 34},
	"BR": {"Br", 1.20, 1.85, [3]uint8{166, 41, 41}, 35},
	"I":  {"I", 1.39, 1.98, [3]uint8{148, 0, 148}, 53},
}

// LookupElement returns the table entry for a symbol, case-insensitive.
// Unknown symbols get a magenta placeholder and ok=false.
func LookupElement(symbol string) (Element, bool) {
	e, ok := elements[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return unknownElement, false
	}
	return e, true
}

// NormalizeSymbol turns "CL", "cl" or " Cl" into "Cl".
func NormalizeSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return ""
	}
	if e, ok := elements[strings.ToUpper(s)]; ok {
		return e.Symbol
	}
	if len(s) == 1 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
