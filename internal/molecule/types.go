package molecule

import "math"

// Atom is a single atom with its cartesian position in ångström.
type Atom struct {
	Serial  int
	Name    string
	Element string
	Residue string
	Chain   string
	ResSeq  int
	X, Y, Z float64
}

// Radius returns the van der Waals radius used for glyph scaling.
func (a Atom) Radius() float64 {
	e, _ := LookupElement(a.Element)
	return e.VanDerWaals
}

// Color returns the element colour.
func (a Atom) Color() [3]uint8 {
	e, _ := LookupElement(a.Element)
	return e.Color
}

// Bond connects two atoms by index into Structure.Atoms. I < J always.
type Bond struct {
	I, J  int
	Order int
}

// Structure is the reader output: atoms, bonds and the file title.
type Structure struct {
	Title string
	Atoms []Atom
	Bonds []Bond
}

func (s *Structure) NumAtoms() int { return len(s.Atoms) }
func (s *Structure) NumBonds() int { return len(s.Bonds) }

// BondLength returns the distance between the bonded atoms.
func (s *Structure) BondLength(b Bond) float64 {
	return distance(s.Atoms[b.I], s.Atoms[b.J])
}

// Bounds returns the axis-aligned bounding box of all atom centres.
func (s *Structure) Bounds() (min, max [3]float64) {
	if len(s.Atoms) == 0 {
		return
	}
	min = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, a := range s.Atoms {
		p := [3]float64{a.X, a.Y, a.Z}
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}
	return min, max
}

// Center returns the centre of the bounding box.
func (s *Structure) Center() (float64, float64, float64) {
	lo, hi := s.Bounds()
	return (lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2, (lo[2] + hi[2]) / 2
}

// addBond appends a bond unless it is a self-bond or already present.
func (s *Structure) addBond(i, j, order int, seen map[[2]int]struct{}) {
	if i == j || i < 0 || j < 0 || i >= len(s.Atoms) || j >= len(s.Atoms) {
		return
	}
	if i > j {
		i, j = j, i
	}
	key := [2]int{i, j}
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	s.Bonds = append(s.Bonds, Bond{I: i, J: j, Order: order})
}

func distance(a, b Atom) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
