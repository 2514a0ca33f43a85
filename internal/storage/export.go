package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/molviz/internal/analysis"
)

type ExportData struct {
	Source           string             `json:"source"`
	Title            string             `json:"title,omitempty"`
	Atoms            int                `json:"atoms"`
	Formula          string             `json:"formula"`
	Composition      map[string]int     `json:"composition"`
	Chains           int                `json:"chains"`
	Residues         int                `json:"residues"`
	Bonds            int                `json:"bonds"`
	BondLength       map[string]float64 `json:"bond_length,omitempty"`
	RadiusOfGyration float64            `json:"radius_of_gyration"`
	Min              [3]float64         `json:"min"`
	Max              [3]float64         `json:"max"`
}

func NewExportData(source string, sum *analysis.Summary) ExportData {
	data := ExportData{
		Source:           source,
		Title:            sum.Title,
		Atoms:            sum.Atoms,
		Formula:          sum.Formula,
		Composition:      make(map[string]int, len(sum.Composition)),
		Chains:           sum.Chains,
		Residues:         sum.Residues,
		Bonds:            sum.Bonds.Count,
		RadiusOfGyration: sum.RadiusOfGyration,
		Min:              [3]float64{sum.Min.X, sum.Min.Y, sum.Min.Z},
		Max:              [3]float64{sum.Max.X, sum.Max.Y, sum.Max.Z},
	}
	for _, e := range sum.Composition {
		data.Composition[e.Symbol] = e.Count
	}
	if sum.Bonds.Count > 0 {
		data.BondLength = map[string]float64{
			"mean":   sum.Bonds.Mean,
			"stddev": sum.Bonds.StdDev,
			"min":    sum.Bonds.Min,
			"max":    sum.Bonds.Max,
		}
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}
