package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/widget"
)

const (
	width       = 80
	height      = 24
	panelWidth  = 44
	minCanvasW  = 20
	minCanvasH  = 8
	rotateStep  = 0.1
	spinStep    = 0.03
	framePeriod = time.Second / 30
)

// TickMsg drives spin and slider animation. Ticks from an older
// generation are dropped so a reopened viewer runs a single chain.
type TickMsg struct {
	Time time.Time
	gen  int
}

// Options configure the terminal viewer.
type Options struct {
	Title string
	Theme string
	Spin  bool
	// Snapshot saves the current canvas and returns where it went.
	Snapshot func(*Canvas) (string, error)
	// Steps maps slider names to the amount one key press moves them.
	Steps map[string]float64
}

// Model is the bubbletea model of the terminal molecule viewer. The
// sliders of ui drive the pipeline exactly as the window's sliders do.
type Model struct {
	pipeline  *scene.Pipeline
	ui        *widget.UI
	names     []string
	steps     map[string]float64
	bars      map[string]progress.Model
	selected  int
	canvas    *Canvas
	camera    *Camera
	wireframe bool
	spinning  bool
	showHelp  bool
	title     string
	status    string
	drawn     int
	gen       int
	snapshot  func(*Canvas) (string, error)
}

func NewModel(p *scene.Pipeline, ui *widget.UI, opts Options) Model {
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	names := ui.Names()
	bars := make(map[string]progress.Model, len(names))
	for _, name := range names {
		bars[name] = progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage())
	}
	steps := map[string]float64{}
	for k, v := range opts.Steps {
		steps[k] = v
	}
	title := opts.Title
	if title == "" {
		title = p.Structure.Title
	}
	return Model{
		pipeline: p,
		ui:       ui,
		names:    names,
		steps:    steps,
		bars:     bars,
		canvas:   NewCanvas(width-panelWidth, height),
		camera:   NewCamera(p.Extent),
		spinning: opts.Spin,
		title:    title,
		snapshot: opts.Snapshot,
	}
}

func tick(gen int) tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg { return TickMsg{Time: t, gen: gen} })
}

func (m Model) Init() tea.Cmd { return tick(m.gen) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.spinning {
			m.camera.RotateY(spinStep)
		}
		m.ui.Tick()
		m.draw()
		return m, tick(m.gen)
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw, ch := w-panelWidth-4, h-4
	if cw < minCanvasW {
		cw = minCanvasW
	}
	if ch < minCanvasH {
		ch = minCanvasH
	}
	m.canvas = NewCanvas(cw, ch)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if len(m.names) > 0 {
			m.selected = (m.selected + 1) % len(m.names)
		}
	case "shift+tab":
		if len(m.names) > 0 {
			m.selected = (m.selected + len(m.names) - 1) % len(m.names)
		}
	case "right", "l":
		m.nudge(1)
	case "left", "h":
		m.nudge(-1)
	case "up", "k":
		m.camera.RotateX(-rotateStep)
	case "down", "j":
		m.camera.RotateX(rotateStep)
	case "a":
		m.camera.RotateY(-rotateStep)
	case "d":
		m.camera.RotateY(rotateStep)
	case "z":
		m.camera.RotateZ(rotateStep)
	case "Z":
		m.camera.RotateZ(-rotateStep)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "r":
		m.camera.Reset()
	case " ":
		m.spinning = !m.spinning
	case "w":
		m.wireframe = !m.wireframe
	case "t":
		NextTheme()
	case "s":
		m.saveSnapshot()
	case "?":
		m.showHelp = !m.showHelp
	}
	m.draw()
	return m, nil
}

// nudge moves the selected slider by dir steps through the widget, so
// its observers run as if the slider had been dragged.
func (m *Model) nudge(dir float64) {
	if len(m.names) == 0 {
		return
	}
	name := m.names[m.selected]
	w, err := m.ui.Slider(name)
	if err != nil {
		m.status = err.Error()
		return
	}
	step, ok := m.steps[name]
	if !ok {
		step = (w.Representation().MaximumValue() - w.Representation().MinimumValue()) / 16
	}
	w.Nudge(dir * step)
}

func (m *Model) saveSnapshot() {
	if m.snapshot == nil {
		m.status = "snapshots disabled"
		return
	}
	m.draw()
	path, err := m.snapshot(m.canvas)
	if err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.drawn = 0
	for _, a := range m.pipeline.Actors() {
		if m.wireframe {
			m.drawn += DrawWireframe(m.canvas, a, m.camera)
		} else {
			m.drawn += DrawPoints(m.canvas, a, m.camera)
		}
	}
}

// Canvas returns the most recently drawn canvas.
func (m Model) Canvas() *Canvas { return m.canvas }

func (m Model) View() string {
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Secondary, CurrentTheme.Accent)) + "\n\n")

	st := m.pipeline.Structure
	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Atoms", fmt.Sprintf("%d", st.NumAtoms()))
	row("Bonds", fmt.Sprintf("%d", st.NumBonds()))
	row("Sphere", fmt.Sprintf("%dx%d r=%.2f", m.pipeline.Sphere.ThetaResolution(), m.pipeline.Sphere.PhiResolution(), m.pipeline.Sphere.Radius()))
	row("Tube", fmt.Sprintf("%d sides", m.pipeline.Tube.NumberOfSides()))
	row("Triangles", fmt.Sprintf("%d", m.pipeline.AtomActor.Mesh().NumTriangles()+m.pipeline.BondActor.Mesh().NumTriangles()))
	mode := "points"
	if m.wireframe {
		mode = "wireframe"
	}
	row("Drawn", fmt.Sprintf("%d %s", m.drawn, mode))

	s.WriteString("\n" + Separator(panelWidth-6) + "\n\nSLIDERS\n")
	for i, name := range m.names {
		w, err := m.ui.Slider(name)
		if err != nil {
			continue
		}
		rep, ok := w.Representation().(*widget.SliderRepresentation2D)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-12s %s %s", rep.Title, m.bars[name].ViewAs(rep.Fraction()), strings.TrimSpace(rep.Label()))
		if i == m.selected {
			s.WriteString(selectedStyle().Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + keyHint().Render(m.status) + "\n")
	}
	s.WriteString(keyHint().Render("\nTab:Slider ←→:Adjust Q:Quit\nSP:Spin W:Wire S:Snap ?:Help"))

	panel := panelStyle().Width(panelWidth).Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Tab      - Select next slider       ║
║  ←/→ h/l  - Move selected slider     ║
║  ↑/↓ j/k  - Rotate about X           ║
║  A/D      - Rotate about Y           ║
║  Z        - Roll                     ║
║  +/-      - Zoom                     ║
║  R        - Reset camera             ║
║  Space    - Toggle spin              ║
║  W        - Points / wireframe       ║
║  T        - Cycle themes             ║
║  S        - Save SVG snapshot        ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the viewer on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
