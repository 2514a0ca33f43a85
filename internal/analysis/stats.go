package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/molviz/internal/molecule"
)

var ErrNoBonds = errors.New("analysis: structure has no bonds")

type ElementCount struct {
	Symbol string
	Count  int
}

type BondStats struct {
	Count   int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Lengths []float64
}

type Summary struct {
	Title            string
	Atoms            int
	Composition      []ElementCount
	Formula          string
	Bonds            BondStats
	Chains           int
	Residues         int
	Min, Max         r3.Vec
	Centroid         r3.Vec
	RadiusOfGyration float64
}

func Summarize(s *molecule.Structure) (*Summary, error) {
	if s.NumAtoms() == 0 {
		return nil, molecule.ErrNoAtoms
	}
	comp := Composition(s)
	sum := &Summary{
		Title:            s.Title,
		Atoms:            s.NumAtoms(),
		Composition:      comp,
		Formula:          Formula(comp),
		Centroid:         Centroid(s),
		RadiusOfGyration: RadiusOfGyration(s),
	}
	lo, hi := s.Bounds()
	sum.Min = r3.Vec{X: lo[0], Y: lo[1], Z: lo[2]}
	sum.Max = r3.Vec{X: hi[0], Y: hi[1], Z: hi[2]}

	if bs, err := BondLengths(s); err == nil {
		sum.Bonds = bs
	}

	chains := map[string]struct{}{}
	residues := map[string]struct{}{}
	for _, a := range s.Atoms {
		if a.Residue == "" {
			continue
		}
		chains[a.Chain] = struct{}{}
		residues[fmt.Sprintf("%s/%d/%s", a.Chain, a.ResSeq, a.Residue)] = struct{}{}
	}
	sum.Chains, sum.Residues = len(chains), len(residues)
	return sum, nil
}

// Composition counts atoms per element in Hill order: carbon, then
// hydrogen, then the rest alphabetically. Without carbon every element is
// alphabetical.
func Composition(s *molecule.Structure) []ElementCount {
	counts := map[string]int{}
	for _, a := range s.Atoms {
		counts[molecule.NormalizeSymbol(a.Element)]++
	}
	out := make([]ElementCount, 0, len(counts))
	for sym, n := range counts {
		out = append(out, ElementCount{Symbol: sym, Count: n})
	}
	_, hasCarbon := counts["C"]
	rank := func(sym string) int {
		if !hasCarbon {
			return 2
		}
		switch sym {
		case "C":
			return 0
		case "H":
			return 1
		}
		return 2
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i].Symbol), rank(out[j].Symbol)
		if ri != rj {
			return ri < rj
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func Formula(comp []ElementCount) string {
	var b strings.Builder
	for _, e := range comp {
		b.WriteString(e.Symbol)
		if e.Count > 1 {
			fmt.Fprintf(&b, "%d", e.Count)
		}
	}
	return b.String()
}

func BondLengths(s *molecule.Structure) (BondStats, error) {
	if s.NumBonds() == 0 {
		return BondStats{}, ErrNoBonds
	}
	lengths := make([]float64, len(s.Bonds))
	for i, b := range s.Bonds {
		lengths[i] = s.BondLength(b)
	}
	sort.Float64s(lengths)

	bs := BondStats{
		Count:   len(lengths),
		Mean:    stat.Mean(lengths, nil),
		Min:     floats.Min(lengths),
		Max:     floats.Max(lengths),
		Lengths: lengths,
	}
	if len(lengths) > 1 {
		bs.StdDev = stat.StdDev(lengths, nil)
	}
	return bs, nil
}

func positions(s *molecule.Structure) []r3.Vec {
	out := make([]r3.Vec, len(s.Atoms))
	for i, a := range s.Atoms {
		out[i] = r3.Vec{X: a.X, Y: a.Y, Z: a.Z}
	}
	return out
}

func Centroid(s *molecule.Structure) r3.Vec {
	var c r3.Vec
	if s.NumAtoms() == 0 {
		return c
	}
	for _, p := range positions(s) {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(s.NumAtoms()), c)
}

// RadiusOfGyration is the unweighted RMS distance of the atoms from their
// centroid.
func RadiusOfGyration(s *molecule.Structure) float64 {
	if s.NumAtoms() == 0 {
		return 0
	}
	c := Centroid(s)
	sq := make([]float64, s.NumAtoms())
	for i, p := range positions(s) {
		sq[i] = r3.Norm2(r3.Sub(p, c))
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

// Histogram bins sorted values into n equal-width bins spanning their
// range. It returns the counts and the n+1 bin edges.
func Histogram(sorted []float64, n int) ([]float64, []float64) {
	if len(sorted) == 0 || n < 1 {
		return nil, nil
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	// stat.Histogram needs the last edge strictly above the largest value.
	hi = math.Nextafter(hi+1e-9*math.Max(1, math.Abs(hi)), math.Inf(1))
	edges := floats.Span(make([]float64, n+1), lo, hi)
	counts := stat.Histogram(nil, edges, sorted, nil)
	return counts, edges
}

// PlotBondLengths renders a bond length histogram as an ASCII chart.
func PlotBondLengths(sorted []float64, bins, width, height int) string {
	counts, edges := Histogram(sorted, bins)
	if len(counts) < 2 {
		return ""
	}
	caption := fmt.Sprintf("bond length %.2f-%.2f Å", edges[0], edges[len(edges)-1])
	return asciigraph.Plot(counts,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption))
}
