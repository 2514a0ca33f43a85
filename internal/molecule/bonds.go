package molecule

import (
	"math"

	"github.com/san-kum/molviz/internal/parallel"
)

// bondTolerance is added to the scaled covalent radius sum, in ångström.
const bondTolerance = 0.56

// minBondLength rejects overlapping atoms (alternate locations, bad input).
const minBondLength = 0.4

type cellKey struct{ x, y, z int }

// InferBonds adds single bonds between atoms closer than
// bScale*(rcov_i+rcov_j)+0.56 Å. Pairs with one hydrogen use hbScale
// instead of bScale, H-H pairs are never bonded. Existing bonds are kept
// and not duplicated.
func InferBonds(s *Structure, bScale, hbScale float64) {
	n := len(s.Atoms)
	if n < 2 {
		return
	}

	radii := make([]float64, n)
	isH := make([]bool, n)
	maxR := 0.0
	for i, a := range s.Atoms {
		e, _ := LookupElement(a.Element)
		radii[i] = e.Covalent
		isH[i] = e.AtomicNumber == 1
		maxR = math.Max(maxR, e.Covalent)
	}
	scale := math.Max(bScale, hbScale)
	cell := scale*2*maxR + bondTolerance
	if cell <= 0 {
		return
	}

	grid := make(map[cellKey][]int, n)
	keys := make([]cellKey, n)
	for i, a := range s.Atoms {
		k := cellKey{int(math.Floor(a.X / cell)), int(math.Floor(a.Y / cell)), int(math.Floor(a.Z / cell))}
		keys[i] = k
		grid[k] = append(grid[k], i)
	}

	// found[i] holds the bonds from atom i to higher-indexed atoms.
	found := make([][]Bond, n)
	parallel.For(n, 128, func(start, end int) {
		for i := start; i < end; i++ {
			k := keys[i]
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for dz := -1; dz <= 1; dz++ {
						for _, j := range grid[cellKey{k.x + dx, k.y + dy, k.z + dz}] {
							if j <= i || (isH[i] && isH[j]) {
								continue
							}
							f := bScale
							if isH[i] || isH[j] {
								f = hbScale
							}
							limit := f*(radii[i]+radii[j]) + bondTolerance
							d := distance(s.Atoms[i], s.Atoms[j])
							if d > minBondLength && d < limit {
								found[i] = append(found[i], Bond{I: i, J: j, Order: 1})
							}
						}
					}
				}
			}
		}
	})

	seen := make(map[[2]int]struct{}, len(s.Bonds))
	for _, b := range s.Bonds {
		seen[[2]int{b.I, b.J}] = struct{}{}
	}
	for _, local := range found {
		for _, b := range local {
			s.addBond(b.I, b.J, b.Order, seen)
		}
	}
}
