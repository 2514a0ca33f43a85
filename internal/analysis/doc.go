// Package analysis computes descriptive statistics of a structure: its
// element composition and formula, bond length distribution, bounding box
// and radius of gyration.
//
//	sum, err := analysis.Summarize(st)
//	fmt.Println(sum.Formula, sum.Bonds.Mean)
//	fmt.Println(analysis.PlotBondLengths(sum.Bonds.Lengths, 12, 40, 8))
package analysis
