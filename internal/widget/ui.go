package widget

import (
	"errors"
	"fmt"

	"github.com/san-kum/molviz/internal/geometry"
)

var ErrUnknownSlider = errors.New("widget: unknown slider")

const (
	ResolutionMin = 4.0
	ResolutionMax = 20.0
	RadiusMin     = 0.1
	RadiusMax     = 3.0
)

// Style is the shared look of the sliders a UI creates.
type Style struct {
	Color          geometry.Color
	SelectedColor  geometry.Color
	SliderLength   float64
	SliderWidth    float64
	EndCapLength   float64
	EndCapWidth    float64
	TubeWidth      float64
	Animate        bool
	AnimationSteps int
}

func DefaultStyle() Style {
	return Style{
		Color:          geometry.Color{R: 204, G: 204, B: 204},
		SelectedColor:  geometry.Color{R: 255, G: 128, B: 0},
		SliderLength:   0.02,
		SliderWidth:    0.03,
		EndCapLength:   0.01,
		EndCapWidth:    0.03,
		TubeWidth:      0.005,
		Animate:        true,
		AnimationSteps: DefaultAnimationSteps,
	}
}

func (s Style) apply(rep *SliderRepresentation2D) {
	rep.SliderColor = s.Color
	rep.TubeColor = s.Color
	rep.CapColor = s.Color
	rep.TitleColor = s.Color
	rep.LabelColor = s.Color
	rep.SelectedColor = s.SelectedColor
	rep.SliderLength = s.SliderLength
	rep.SliderWidth = s.SliderWidth
	rep.EndCapLength = s.EndCapLength
	rep.EndCapWidth = s.EndCapWidth
	rep.TubeWidth = s.TubeWidth
}

// UI owns the sliders of one interactive view, keyed by name.
type UI struct {
	Style   Style
	sliders map[string]*SliderWidget
	order   []string
}

func NewUI() *UI {
	return &UI{Style: DefaultStyle(), sliders: make(map[string]*SliderWidget)}
}

// Add registers w under name, replacing any slider already there.
func (u *UI) Add(name string, w *SliderWidget) {
	if _, ok := u.sliders[name]; !ok {
		u.order = append(u.order, name)
	}
	u.sliders[name] = w
}

func (u *UI) Slider(name string) (*SliderWidget, error) {
	w, ok := u.sliders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlider, name)
	}
	return w, nil
}

// Names returns slider names in the order they were added.
func (u *UI) Names() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

func (u *UI) Sliders() []*SliderWidget {
	out := make([]*SliderWidget, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.sliders[name])
	}
	return out
}

func (u *UI) newSlider(title string, lo, hi, value float64, p1, p2 Coordinate) (*SliderWidget, *SliderRepresentation2D) {
	rep := NewSliderRepresentation2D()
	rep.SetMaximumValue(hi)
	rep.SetMinimumValue(lo)
	rep.SetValue(value)
	rep.Title = title
	rep.Point1 = p1
	rep.Point2 = p2
	u.Style.apply(rep)

	w := NewSliderWidget()
	w.SetRepresentation(rep)
	if u.Style.Animate {
		w.SetAnimationModeToAnimate()
	}
	if u.Style.AnimationSteps > 0 {
		w.NumberOfAnimationSteps = u.Style.AnimationSteps
	}
	w.EnabledOn()
	return w, rep
}

// AddResolutionSlider adds a 4..20 slider starting at value that drives
// the sphere resolution and tube side count. sphere or tube may be nil to
// control only one of them.
func (u *UI) AddResolutionSlider(sphere *geometry.SphereSource, tube *geometry.TubeFilter, name string, value float64) *SliderWidget {
	w, rep := u.newSlider("Resolution", ResolutionMin, ResolutionMax, value,
		Coordinate{X: 0.05, Y: 0.9}, Coordinate{X: 0.45, Y: 0.9})
	rep.LabelFormat = "%.0f"
	w.AddObserver(InteractionEvent, NewResolutionCallback(sphere, tube))
	u.Add(name, w)
	return w
}

// AddRadiusSlider adds a 0.1..3.0 slider driving the sphere radius.
func (u *UI) AddRadiusSlider(sphere *geometry.SphereSource, name string, value float64) *SliderWidget {
	w, rep := u.newSlider("Atom Radius", RadiusMin, RadiusMax, value,
		Coordinate{X: 0.55, Y: 0.9}, Coordinate{X: 0.95, Y: 0.9})
	rep.LabelFormat = "%.2f"
	w.AddObserver(InteractionEvent, NewRadiusCallback(sphere))
	u.Add(name, w)
	return w
}

// ButtonDown offers a press to each slider in turn until one takes it.
func (u *UI) ButtonDown(x, y float64, width, height int) bool {
	for _, w := range u.Sliders() {
		if w.ButtonDown(x, y, width, height) {
			return true
		}
	}
	return false
}

func (u *UI) MouseMove(x, y float64, width, height int) bool {
	moved := false
	for _, w := range u.Sliders() {
		moved = w.MouseMove(x, y, width, height) || moved
	}
	return moved
}

func (u *UI) ButtonUp() bool {
	released := false
	for _, w := range u.Sliders() {
		released = w.ButtonUp() || released
	}
	return released
}

// Tick advances running animations and reports whether any remain.
func (u *UI) Tick() bool {
	running := false
	for _, w := range u.Sliders() {
		running = w.Tick() || running
	}
	return running
}

func (u *UI) Interacting() bool {
	for _, w := range u.Sliders() {
		if w.Interacting() {
			return true
		}
	}
	return false
}
