package widget

import (
	"fmt"
	"math"

	"github.com/san-kum/molviz/internal/geometry"
)

// InteractionState is what a display position hits on a slider.
type InteractionState int

const (
	Outside InteractionState = iota
	Tube
	Slider
	LeftCap
	RightCap
)

func (s InteractionState) String() string {
	switch s {
	case Tube:
		return "tube"
	case Slider:
		return "slider"
	case LeftCap:
		return "left cap"
	case RightCap:
		return "right cap"
	default:
		return "outside"
	}
}

// Representation is the model and geometry behind a SliderWidget. Display
// positions are in pixels with the origin at the top left of a w x h
// viewport.
type Representation interface {
	Value() float64
	SetValue(v float64)
	MinimumValue() float64
	MaximumValue() float64
	ComputeInteractionState(x, y float64, w, h int) InteractionState
	ValueAt(x, y float64, w, h int) float64
	SetHighlighted(on bool)
}

// Coordinate is a normalised display position in [0,1]^2, y pointing down.
type Coordinate struct {
	X, Y float64
}

// SliderRepresentation2D is a flat slider drawn over the scene: a tube
// between two end caps with a movable bead. Lengths and widths are
// fractions of the viewport width.
type SliderRepresentation2D struct {
	minimum float64
	maximum float64
	value   float64

	Title       string
	LabelFormat string
	ShowLabel   bool
	Point1      Coordinate
	Point2      Coordinate

	SliderLength float64
	SliderWidth  float64
	EndCapLength float64
	EndCapWidth  float64
	TubeWidth    float64

	SliderColor   geometry.Color
	TubeColor     geometry.Color
	CapColor      geometry.Color
	TitleColor    geometry.Color
	LabelColor    geometry.Color
	SelectedColor geometry.Color

	highlighted bool
}

func NewSliderRepresentation2D() *SliderRepresentation2D {
	return &SliderRepresentation2D{
		minimum:       0,
		maximum:       1,
		LabelFormat:   "%-#6.3g",
		ShowLabel:     true,
		Point1:        Coordinate{X: 0.1, Y: 0.9},
		Point2:        Coordinate{X: 0.4, Y: 0.9},
		SliderLength:  0.05,
		SliderWidth:   0.05,
		EndCapLength:  0.025,
		EndCapWidth:   0.05,
		TubeWidth:     0.025,
		SliderColor:   geometry.Color{R: 255, G: 255, B: 255},
		TubeColor:     geometry.Color{R: 255, G: 255, B: 255},
		CapColor:      geometry.Color{R: 255, G: 255, B: 255},
		TitleColor:    geometry.Color{R: 255, G: 255, B: 255},
		LabelColor:    geometry.Color{R: 255, G: 255, B: 255},
		SelectedColor: geometry.Color{R: 255, G: 0, B: 0},
	}
}

func (r *SliderRepresentation2D) MinimumValue() float64 { return r.minimum }
func (r *SliderRepresentation2D) MaximumValue() float64 { return r.maximum }
func (r *SliderRepresentation2D) Value() float64        { return r.value }
func (r *SliderRepresentation2D) Highlighted() bool     { return r.highlighted }

func (r *SliderRepresentation2D) SetHighlighted(on bool) { r.highlighted = on }

// SetMinimumValue moves the lower bound. A bound that would cross the
// other is ignored.
func (r *SliderRepresentation2D) SetMinimumValue(v float64) {
	if v >= r.maximum {
		return
	}
	r.minimum = v
	r.SetValue(r.value)
}

func (r *SliderRepresentation2D) SetMaximumValue(v float64) {
	if v <= r.minimum {
		return
	}
	r.maximum = v
	r.SetValue(r.value)
}

// SetValue stores v clamped to [min, max].
func (r *SliderRepresentation2D) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	r.value = math.Max(r.minimum, math.Min(r.maximum, v))
}

// Fraction is the value's position along the tube in [0,1].
func (r *SliderRepresentation2D) Fraction() float64 {
	return (r.value - r.minimum) / (r.maximum - r.minimum)
}

func (r *SliderRepresentation2D) Label() string {
	return fmt.Sprintf(r.LabelFormat, r.value)
}

// CurrentSliderColor is the bead colour, SelectedColor while interacting.
func (r *SliderRepresentation2D) CurrentSliderColor() geometry.Color {
	if r.highlighted {
		return r.SelectedColor
	}
	return r.SliderColor
}

// Layout is a slider resolved to pixels.
type Layout struct {
	P1, P2       [2]float64
	Dir, Normal  [2]float64
	Length       float64
	TubeStart    [2]float64
	TubeEnd      [2]float64
	Bead         [2]float64
	SliderLength float64
	SliderWidth  float64
	CapLength    float64
	CapWidth     float64
	TubeWidth    float64
}

func (r *SliderRepresentation2D) Layout(w, h int) Layout {
	fw, fh := float64(w), float64(h)
	l := Layout{
		P1: [2]float64{r.Point1.X * fw, r.Point1.Y * fh},
		P2: [2]float64{r.Point2.X * fw, r.Point2.Y * fh},
	}
	dx, dy := l.P2[0]-l.P1[0], l.P2[1]-l.P1[1]
	l.Length = math.Hypot(dx, dy)
	if l.Length > 0 {
		l.Dir = [2]float64{dx / l.Length, dy / l.Length}
	} else {
		l.Dir = [2]float64{1, 0}
	}
	l.Normal = [2]float64{-l.Dir[1], l.Dir[0]}

	l.SliderLength = r.SliderLength * fw
	l.SliderWidth = r.SliderWidth * fw
	l.CapLength = math.Min(r.EndCapLength*fw, l.Length/2)
	l.CapWidth = r.EndCapWidth * fw
	l.TubeWidth = r.TubeWidth * fw

	l.TubeStart = l.along(l.CapLength)
	l.TubeEnd = l.along(l.Length - l.CapLength)
	l.Bead = l.along(l.CapLength + r.Fraction()*l.tubeLength())
	return l
}

func (l Layout) tubeLength() float64 { return l.Length - 2*l.CapLength }

func (l Layout) along(u float64) [2]float64 {
	return [2]float64{l.P1[0] + l.Dir[0]*u, l.P1[1] + l.Dir[1]*u}
}

// local returns the position of (x, y) along the slider axis and its
// distance from it.
func (l Layout) local(x, y float64) (u, v float64) {
	px, py := x-l.P1[0], y-l.P1[1]
	return px*l.Dir[0] + py*l.Dir[1], px*l.Normal[0] + py*l.Normal[1]
}

func (r *SliderRepresentation2D) ComputeInteractionState(x, y float64, w, h int) InteractionState {
	l := r.Layout(w, h)
	u, v := l.local(x, y)
	v = math.Abs(v)

	beadU := l.CapLength + r.Fraction()*l.tubeLength()
	switch {
	case math.Abs(u-beadU) <= l.SliderLength/2 && v <= l.SliderWidth/2:
		return Slider
	case u >= 0 && u < l.CapLength && v <= l.CapWidth/2:
		return LeftCap
	case u > l.Length-l.CapLength && u <= l.Length && v <= l.CapWidth/2:
		return RightCap
	case u >= l.CapLength && u <= l.Length-l.CapLength && v <= math.Max(l.TubeWidth, l.SliderWidth)/2:
		return Tube
	}
	return Outside
}

// ValueAt maps a display position to the value whose bead sits closest
// to it.
func (r *SliderRepresentation2D) ValueAt(x, y float64, w, h int) float64 {
	l := r.Layout(w, h)
	tl := l.tubeLength()
	if tl <= 0 {
		return r.value
	}
	u, _ := l.local(x, y)
	t := math.Max(0, math.Min(1, (u-l.CapLength)/tl))
	return r.minimum + t*(r.maximum-r.minimum)
}
