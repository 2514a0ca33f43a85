package widget

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/san-kum/molviz/internal/geometry"
)

const (
	viewW = 640
	viewH = 480
	railY = 432.0
)

func resolutionRep() *SliderRepresentation2D {
	rep := NewSliderRepresentation2D()
	rep.SetMaximumValue(20)
	rep.SetMinimumValue(4)
	rep.SetValue(10)
	rep.Point1 = Coordinate{X: 0.05, Y: 0.9}
	rep.Point2 = Coordinate{X: 0.45, Y: 0.9}
	DefaultStyle().apply(rep)
	return rep
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSliderRepresentation_Clamp(t *testing.T) {
	rep := resolutionRep()

	tests := []struct {
		in, want float64
	}{
		{12, 12},
		{100, 20},
		{-5, 4},
		{4, 4},
		{20, 20},
	}
	for _, tt := range tests {
		rep.SetValue(tt.in)
		if rep.Value() != tt.want {
			t.Errorf("SetValue(%v) -> %v, want %v", tt.in, rep.Value(), tt.want)
		}
	}

	rep.SetValue(math.NaN())
	if rep.Value() != 20 {
		t.Errorf("NaN changed value to %v", rep.Value())
	}

	rep.SetMinimumValue(25)
	if rep.MinimumValue() != 4 {
		t.Errorf("crossing minimum accepted: %v", rep.MinimumValue())
	}
	rep.SetMaximumValue(8)
	if rep.Value() != 8 {
		t.Errorf("value not reclamped after narrowing max: %v", rep.Value())
	}
}

func TestSliderRepresentation_Label(t *testing.T) {
	rep := resolutionRep()
	rep.LabelFormat = "%.1f"
	rep.SetValue(12.25)
	if got := rep.Label(); got != "12.2" && got != "12.3" {
		t.Errorf("Label() = %q", got)
	}
}

func TestSliderRepresentation_InteractionState(t *testing.T) {
	rep := resolutionRep()

	tests := []struct {
		name string
		x, y float64
		want InteractionState
	}{
		{"bead", 129.6, railY, Slider},
		{"bead edge", 129.6 + 6, railY + 9, Slider},
		{"left cap", 34, railY, LeftCap},
		{"right cap", 286, railY, RightCap},
		{"tube", 250, railY, Tube},
		{"above", 129.6, railY - 30, Outside},
		{"past end", 300, railY, Outside},
		{"far away", 600, 100, Outside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rep.ComputeInteractionState(tt.x, tt.y, viewW, viewH); got != tt.want {
				t.Errorf("state at (%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSliderRepresentation_ValueAt(t *testing.T) {
	rep := resolutionRep()

	tests := []struct {
		x, want float64
	}{
		{38.4, 4},
		{281.6, 20},
		{160, 12},
		{0, 4},
		{640, 20},
	}
	for _, tt := range tests {
		if got := rep.ValueAt(tt.x, railY, viewW, viewH); !near(got, tt.want) {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) attach(w *SliderWidget) {
	for _, e := range []Event{StartInteractionEvent, InteractionEvent, EndInteractionEvent} {
		w.AddObserver(e, func(_ *SliderWidget, e Event) { r.events = append(r.events, e) })
	}
}

func (r *recorder) count(e Event) int {
	n := 0
	for _, got := range r.events {
		if got == e {
			n++
		}
	}
	return n
}

func newWidget() (*SliderWidget, *SliderRepresentation2D, *recorder) {
	rep := resolutionRep()
	w := NewSliderWidget()
	w.SetRepresentation(rep)
	w.EnabledOn()
	rec := &recorder{}
	rec.attach(w)
	return w, rep, rec
}

func TestSliderWidget_JumpOnTube(t *testing.T) {
	w, rep, rec := newWidget()

	if !w.ButtonDown(160, railY, viewW, viewH) {
		t.Fatal("press on tube not consumed")
	}
	if !near(rep.Value(), 12) {
		t.Errorf("value = %v, want 12", rep.Value())
	}
	if !rep.Highlighted() {
		t.Error("expected highlight during interaction")
	}
	w.ButtonUp()

	want := []Event{StartInteractionEvent, InteractionEvent, EndInteractionEvent}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, rec.events[i], want[i])
		}
	}
	if rep.Highlighted() {
		t.Error("highlight left on after release")
	}
}

func TestSliderWidget_Animate(t *testing.T) {
	w, rep, rec := newWidget()
	w.SetAnimationModeToAnimate()

	w.ButtonDown(160, railY, viewW, viewH)
	w.ButtonUp()
	if rep.Value() != 10 {
		t.Fatalf("animated press moved value immediately to %v", rep.Value())
	}

	ticks := 0
	for w.Tick() {
		ticks++
		if ticks > 100 {
			t.Fatal("animation never finished")
		}
	}
	if ticks != DefaultAnimationSteps-1 {
		t.Errorf("ticks = %d, want %d", ticks, DefaultAnimationSteps-1)
	}
	if !near(rep.Value(), 12) {
		t.Errorf("final value = %v, want 12", rep.Value())
	}
	if got := rec.count(InteractionEvent); got != DefaultAnimationSteps {
		t.Errorf("interaction events = %d, want %d", got, DefaultAnimationSteps)
	}
	if rec.count(EndInteractionEvent) != 1 || w.Interacting() {
		t.Error("animation did not end cleanly")
	}
}

func TestSliderWidget_PressDuringAnimation(t *testing.T) {
	w, rep, rec := newWidget()
	w.SetAnimationModeToAnimate()

	w.ButtonDown(160, railY, viewW, viewH)
	w.ButtonUp()
	w.Tick()

	w.SetAnimationModeToJump()
	if !w.ButtonDown(286, railY, viewW, viewH) {
		t.Fatal("press during animation not consumed")
	}
	w.ButtonUp()
	if w.Tick() {
		t.Error("aborted animation kept running")
	}
	if rep.Value() != 20 {
		t.Errorf("value = %v, want 20", rep.Value())
	}
	if s, e := rec.count(StartInteractionEvent), rec.count(EndInteractionEvent); s != 2 || e != 2 {
		t.Errorf("start/end events = %d/%d, want 2/2", s, e)
	}
}

func TestSliderWidget_Caps(t *testing.T) {
	w, rep, _ := newWidget()

	w.ButtonDown(286, railY, viewW, viewH)
	w.ButtonUp()
	if rep.Value() != 20 {
		t.Errorf("right cap -> %v, want 20", rep.Value())
	}
	w.ButtonDown(34, railY, viewW, viewH)
	w.ButtonUp()
	if rep.Value() != 4 {
		t.Errorf("left cap -> %v, want 4", rep.Value())
	}
}

func TestSliderWidget_Drag(t *testing.T) {
	w, rep, rec := newWidget()

	if !w.ButtonDown(129.6, railY, viewW, viewH) {
		t.Fatal("press on bead not consumed")
	}
	if rec.count(InteractionEvent) != 0 {
		t.Error("grabbing the bead should not change the value")
	}
	w.MouseMove(281.6, railY+40, viewW, viewH)
	if !near(rep.Value(), 20) {
		t.Errorf("dragged value = %v, want 20", rep.Value())
	}
	w.MouseMove(1000, railY, viewW, viewH)
	if rep.Value() != 20 {
		t.Errorf("drag past the end left %v", rep.Value())
	}
	if !w.ButtonUp() {
		t.Error("release not consumed")
	}
	if w.MouseMove(38.4, railY, viewW, viewH) {
		t.Error("move after release should be ignored")
	}
}

func TestSliderWidget_Disabled(t *testing.T) {
	w, rep, rec := newWidget()
	w.SetEnabled(false)
	if w.Enabled() {
		t.Fatal("SetEnabled(false) left the widget enabled")
	}

	if w.ButtonDown(160, railY, viewW, viewH) {
		t.Error("disabled widget consumed a press")
	}
	w.Nudge(3)
	if rep.Value() != 10 || len(rec.events) != 0 {
		t.Errorf("disabled widget changed: value %v events %v", rep.Value(), rec.events)
	}
	if w.ButtonDown(600, 100, viewW, viewH) {
		t.Error("press outside consumed")
	}
}

func TestSliderWidget_RemoveObserver(t *testing.T) {
	w, _, _ := newWidget()
	calls := 0
	tag := w.AddObserver(InteractionEvent, func(*SliderWidget, Event) { calls++ })

	w.Nudge(1)
	if !w.RemoveObserver(tag) {
		t.Fatal("RemoveObserver returned false")
	}
	w.Nudge(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if w.RemoveObserver(tag) {
		t.Error("second removal should report false")
	}
}

func TestResolutionCallback(t *testing.T) {
	sphere := geometry.NewSphereSource()
	tube := geometry.NewTubeFilter()

	ui := NewUI()
	w := ui.AddResolutionSlider(sphere, tube, "resolution", 10)
	w.Nudge(2.7)

	if sphere.ThetaResolution() != 12 || sphere.PhiResolution() != 12 {
		t.Errorf("sphere resolution %d/%d, want 12/12", sphere.ThetaResolution(), sphere.PhiResolution())
	}
	if tube.NumberOfSides() != 12 {
		t.Errorf("tube sides %d, want 12", tube.NumberOfSides())
	}

	w.Nudge(-100)
	if sphere.ThetaResolution() != 4 || tube.NumberOfSides() != 4 {
		t.Errorf("expected clamp to 4, got %d/%d", sphere.ThetaResolution(), tube.NumberOfSides())
	}
}

func TestResolutionCallback_Split(t *testing.T) {
	sphere := geometry.NewSphereSource()
	tube := geometry.NewTubeFilter()

	ui := NewUI()
	ui.AddResolutionSlider(sphere, nil, "atoms", 10)
	ui.AddResolutionSlider(nil, tube, "bonds", 10)

	atoms, _ := ui.Slider("atoms")
	atoms.Nudge(6)
	if sphere.ThetaResolution() != 16 {
		t.Errorf("sphere theta = %d, want 16", sphere.ThetaResolution())
	}
	if tube.NumberOfSides() != 3 {
		t.Errorf("atoms slider touched tube: %d sides", tube.NumberOfSides())
	}

	bonds, _ := ui.Slider("bonds")
	bonds.Nudge(-3)
	if tube.NumberOfSides() != 7 || sphere.ThetaResolution() != 16 {
		t.Errorf("bonds slider: tube %d sphere %d", tube.NumberOfSides(), sphere.ThetaResolution())
	}
}

func TestRadiusCallback(t *testing.T) {
	sphere := geometry.NewSphereSource()
	sphere.SetRadius(1)

	ui := NewUI()
	w := ui.AddRadiusSlider(sphere, "radius", 1.0)
	w.Nudge(0.5)
	if !near(sphere.Radius(), 1.5) {
		t.Errorf("radius = %v, want 1.5", sphere.Radius())
	}

	w.Nudge(100)
	if sphere.Radius() != RadiusMax {
		t.Errorf("radius = %v, want %v", sphere.Radius(), RadiusMax)
	}
}

type foreignRep struct{ value float64 }

func (f *foreignRep) Value() float64                             { return f.value }
func (f *foreignRep) SetValue(v float64)                         { f.value = v }
func (f *foreignRep) MinimumValue() float64                      { return 0 }
func (f *foreignRep) MaximumValue() float64                      { return 100 }
func (f *foreignRep) ValueAt(float64, float64, int, int) float64 { return f.value }
func (f *foreignRep) SetHighlighted(bool)                        {}
func (f *foreignRep) ComputeInteractionState(float64, float64, int, int) InteractionState {
	return Outside
}

func TestCallback_CastFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	sphere := geometry.NewSphereSource()
	sphere.SetRadius(1)
	tube := geometry.NewTubeFilter()

	w := NewSliderWidget()
	w.SetRepresentation(&foreignRep{value: 15})
	w.EnabledOn()
	w.AddObserver(InteractionEvent, NewResolutionCallback(sphere, tube))
	w.AddObserver(InteractionEvent, NewRadiusCallback(sphere))
	w.InvokeEvent(InteractionEvent)

	if sphere.ThetaResolution() != 8 || tube.NumberOfSides() != 3 || sphere.Radius() != 1 {
		t.Error("callback changed targets despite a foreign representation")
	}
	if got := strings.Count(buf.String(), "unable to cast to SliderRepresentation2D"); got != 2 {
		t.Errorf("expected two cast errors logged, got %d: %q", got, buf.String())
	}
}

func TestUI_Registry(t *testing.T) {
	ui := NewUI()
	ui.AddResolutionSlider(nil, nil, "resolution", 10)
	ui.AddRadiusSlider(nil, "radius", 1)

	names := ui.Names()
	if len(names) != 2 || names[0] != "resolution" || names[1] != "radius" {
		t.Errorf("names = %v", names)
	}
	if _, err := ui.Slider("missing"); !errors.Is(err, ErrUnknownSlider) {
		t.Errorf("error = %v, want ErrUnknownSlider", err)
	}

	ui.Add("radius", NewSliderWidget())
	if len(ui.Names()) != 2 {
		t.Error("replacing a slider should not duplicate its name")
	}
}

func TestUI_Dispatch(t *testing.T) {
	sphere := geometry.NewSphereSource()
	ui := NewUI()
	ui.Style.Animate = false
	ui.AddResolutionSlider(sphere, nil, "resolution", 10)
	ui.AddRadiusSlider(sphere, "radius", 1)

	if ui.ButtonDown(600, 100, viewW, viewH) {
		t.Error("press away from sliders consumed")
	}
	if !ui.ButtonDown(160, railY, viewW, viewH) {
		t.Fatal("press on resolution tube not consumed")
	}
	if !ui.Interacting() {
		t.Error("expected interaction in progress")
	}
	ui.ButtonUp()
	if sphere.ThetaResolution() != 12 {
		t.Errorf("theta = %d, want 12", sphere.ThetaResolution())
	}
	if ui.Tick() {
		t.Error("no animation should be running in jump mode")
	}
}
