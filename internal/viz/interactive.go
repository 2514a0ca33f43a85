package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/molviz/internal/molecule"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var formatInfo = map[molecule.Format]string{
	molecule.FormatPDB: "protein data bank",
	molecule.FormatSDF: "mdl molfile",
	molecule.FormatXYZ: "cartesian xyz",
}

const (
	stateMenu = iota
	stateView
)

// Loader builds a viewer for a structure file.
type Loader func(path string) (Model, error)

type picker struct {
	state, cursor int
	dir           string
	files         []string
	load          Loader
	err           error
	viewer        Model
	opened        int
	width, height int
}

// NewPicker lists the structure files in dir and opens the chosen one
// with load.
func NewPicker(dir string, load Loader) (*picker, error) {
	files, err := ListStructures(dir)
	if err != nil {
		return nil, err
	}
	return &picker{state: stateMenu, dir: dir, files: files, load: load}, nil
}

// ListStructures returns the readable structure files in dir, sorted.
func ListStructures(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := molecule.DetectFormat(e.Name()); err == nil {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateView {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		if ws, ok := msg.(tea.WindowSizeMsg); ok {
			m.width, m.height = ws.Width, ws.Height
		}
		next, cmd := m.viewer.Update(msg)
		m.viewer = next.(Model)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.menuKey(msg)
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.files) == 0 {
			return m, nil
		}
		v, err := m.load(filepath.Join(m.dir, m.files[m.cursor]))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		if m.width > 0 {
			v.resize(m.width, m.height)
		}
		m.opened++
		v.gen = m.opened
		m.viewer = v
		m.state = stateView
		return m, v.Init()
	}
	return m, nil
}

func (m picker) View() string {
	if m.state == stateView {
		return m.viewer.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Render("molviz") + dim.Render("  "+m.dir) + "\n\n")
	if len(m.files) == 0 {
		s.WriteString(dim.Render("no .pdb, .sdf, .mol or .xyz files here") + "\n")
	}
	for i, f := range m.files {
		format, _ := molecule.DetectFormat(f)
		info := dim.Render(formatInfo[format])
		if i == m.cursor {
			s.WriteString(magenta.Render("▸ ") + white.Render(fmt.Sprintf("%-32s", f)) + info + "\n")
		} else {
			s.WriteString("  " + dim.Render(fmt.Sprintf("%-32s", f)) + info + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓ select · enter open · esc back · q quit"))
	return s.String()
}

// RunPicker starts the file picker on the alternate screen.
func RunPicker(dir string, load Loader) error {
	p, err := NewPicker(dir, load)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(*p, tea.WithAltScreen()).Run()
	return err
}
