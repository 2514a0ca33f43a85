package molecule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a structure file format.
type Format string

const (
	FormatPDB Format = "pdb"
	FormatSDF Format = "sdf"
	FormatXYZ Format = "xyz"
)

// Options control how bonds are derived.
type Options struct {
	// BScale scales covalent radii for heavy-atom bonds.
	BScale float64
	// HBScale scales covalent radii for bonds involving hydrogen.
	HBScale float64
	// InferBonds forces distance-based bonding even for formats that
	// carry explicit connectivity.
	InferBonds bool
}

func DefaultOptions() Options {
	return Options{BScale: 1.0, HBScale: 1.0}
}

// DetectFormat maps a file extension to a format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdb", ".ent":
		return FormatPDB, nil
	case ".sdf", ".mol", ".sd":
		return FormatSDF, nil
	case ".xyz":
		return FormatXYZ, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ReadFile opens path and parses it with the reader for its extension.
func ReadFile(path string, opts Options) (*Structure, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := Read(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if st.Title == "" {
		st.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return st, nil
}

// Read parses r in the given format.
func Read(r io.Reader, format Format, opts Options) (*Structure, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var st *Structure
	explicit := false
	switch format {
	case FormatPDB:
		st, err = parsePDB(lines)
	case FormatSDF:
		st, err = parseSDF(lines)
		explicit = true
	case FormatXYZ:
		st, err = parseXYZ(lines)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(st.Atoms) == 0 {
		return nil, ErrNoAtoms
	}
	if !explicit || opts.InferBonds {
		InferBonds(st, opts.BScale, opts.HBScale)
	}
	return st, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// column returns line[start:end] (0-based, end exclusive), trimmed, or ""
// when the line is too short.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}
