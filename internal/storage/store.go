package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/molviz/internal/molecule"
)

var ErrNoRecord = errors.New("storage: no such render")

// Store keeps one directory per render under baseDir, each holding a
// metadata.json and an atoms.csv snapshot of the structure.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID         string             `json:"id"`
	Source     string             `json:"source"`
	Title      string             `json:"title,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Atoms      int                `json:"atoms"`
	Bonds      int                `json:"bonds"`
	Resolution float64            `json:"resolution"`
	Radius     float64            `json:"radius"`
	Preset     string             `json:"preset,omitempty"`
	Outputs    []string           `json:"outputs"`
	Stats      map[string]float64 `json:"stats,omitempty"`
}

// NewID derives a render id from the source file name and the current
// time.
func (s *Store) NewID(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "render"
	}
	return fmt.Sprintf("%s_%d", base, time.Now().UnixNano())
}

// Dir returns the directory for a render id, creating it.
func (s *Store) Dir(id string) (string, error) {
	dir := filepath.Join(s.baseDir, id)
	return dir, os.MkdirAll(dir, 0755)
}

// Save writes meta and the structure's atoms. An empty meta.ID is filled
// in from meta.Source.
func (s *Store) Save(meta *RenderMetadata, st *molecule.Structure) (string, error) {
	if meta.ID == "" {
		meta.ID = s.NewID(meta.Source)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if st != nil {
		meta.Atoms, meta.Bonds = st.NumAtoms(), st.NumBonds()
		if meta.Title == "" {
			meta.Title = st.Title
		}
	}

	runDir, err := s.Dir(meta.ID)
	if err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if st == nil {
		return meta.ID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "atoms.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"serial", "element", "x", "y", "z", "radius"}); err != nil {
		return "", err
	}
	for _, a := range st.Atoms {
		row := []string{
			strconv.Itoa(a.Serial),
			a.Element,
			strconv.FormatFloat(a.X, 'f', 4, 64),
			strconv.FormatFloat(a.Y, 'f', 4, 64),
			strconv.FormatFloat(a.Z, 'f', 4, 64),
			strconv.FormatFloat(a.Radius(), 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

// List returns every readable render, newest first.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRecord, id)
		}
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadAtoms reads back the atoms.csv snapshot of a render. Rows that fail
// to parse are skipped.
func (s *Store) LoadAtoms(id string) ([]molecule.Atom, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "atoms.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []molecule.Atom{}, nil
	}

	atoms := make([]molecule.Atom, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		serial, _ := strconv.Atoi(rec[0])
		var xyz [3]float64
		ok := true
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(rec[2+k], 64)
			if err != nil {
				ok = false
				break
			}
			xyz[k] = v
		}
		if !ok {
			continue
		}
		atoms = append(atoms, molecule.Atom{Serial: serial, Element: rec[1], X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return atoms, nil
}
