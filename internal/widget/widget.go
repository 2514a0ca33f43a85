package widget

type Event int

const (
	StartInteractionEvent Event = iota
	InteractionEvent
	EndInteractionEvent
)

func (e Event) String() string {
	switch e {
	case StartInteractionEvent:
		return "StartInteractionEvent"
	case InteractionEvent:
		return "InteractionEvent"
	case EndInteractionEvent:
		return "EndInteractionEvent"
	}
	return "UnknownEvent"
}

type AnimationMode int

const (
	// Jump moves the bead straight to a clicked tube position.
	Jump AnimationMode = iota
	// Animate slides it there over NumberOfAnimationSteps ticks.
	Animate
)

const DefaultAnimationSteps = 24

// Observer is called with the widget that fired the event.
type Observer func(w *SliderWidget, e Event)

type observer struct {
	tag   int
	event Event
	fn    Observer
}

type widgetState int

const (
	idle widgetState = iota
	dragging
	animating
)

// SliderWidget turns pointer input into value changes on its
// representation and notifies observers. Not safe for concurrent use;
// drive it from the host's event loop.
type SliderWidget struct {
	rep     Representation
	enabled bool

	AnimationMode          AnimationMode
	NumberOfAnimationSteps int

	observers []observer
	nextTag   int

	state    widgetState
	animFrom float64
	animTo   float64
	animStep int
}

func NewSliderWidget() *SliderWidget {
	return &SliderWidget{
		AnimationMode:          Jump,
		NumberOfAnimationSteps: DefaultAnimationSteps,
		nextTag:                1,
	}
}

func (w *SliderWidget) SetRepresentation(r Representation) { w.rep = r }
func (w *SliderWidget) Representation() Representation     { return w.rep }

func (w *SliderWidget) SetEnabled(on bool) {
	w.enabled = on
	if !on {
		w.state = idle
	}
}

func (w *SliderWidget) EnabledOn()    { w.SetEnabled(true) }
func (w *SliderWidget) EnabledOff()   { w.SetEnabled(false) }
func (w *SliderWidget) Enabled() bool { return w.enabled }

func (w *SliderWidget) SetAnimationModeToAnimate() { w.AnimationMode = Animate }
func (w *SliderWidget) SetAnimationModeToJump()    { w.AnimationMode = Jump }

// AddObserver registers fn for event e and returns a tag for
// RemoveObserver. Observers run in registration order.
func (w *SliderWidget) AddObserver(e Event, fn Observer) int {
	tag := w.nextTag
	w.nextTag++
	w.observers = append(w.observers, observer{tag: tag, event: e, fn: fn})
	return tag
}

func (w *SliderWidget) RemoveObserver(tag int) bool {
	for i, o := range w.observers {
		if o.tag == tag {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (w *SliderWidget) InvokeEvent(e Event) {
	for _, o := range w.observers {
		if o.event == e {
			o.fn(w, e)
		}
	}
}

// Interacting reports whether a drag or animation is in progress.
func (w *SliderWidget) Interacting() bool { return w.state != idle }

// ButtonDown starts an interaction when (x, y) hits the slider. It
// reports whether the press was consumed.
func (w *SliderWidget) ButtonDown(x, y float64, width, height int) bool {
	if !w.enabled || w.rep == nil || w.state == dragging {
		return false
	}
	hit := w.rep.ComputeInteractionState(x, y, width, height)
	if hit == Outside {
		return false
	}
	if w.state == animating {
		w.end()
	}
	if hit == Slider {
		w.begin(dragging)
		return true
	}

	var target float64
	switch hit {
	case LeftCap:
		target = w.rep.MinimumValue()
	case RightCap:
		target = w.rep.MaximumValue()
	default:
		target = w.rep.ValueAt(x, y, width, height)
	}
	if w.AnimationMode == Animate && w.NumberOfAnimationSteps > 1 {
		w.begin(animating)
		w.animFrom = w.rep.Value()
		w.animTo = target
		w.animStep = 0
		return true
	}
	w.begin(dragging)
	w.rep.SetValue(target)
	w.InvokeEvent(InteractionEvent)
	return true
}

// MouseMove drags the bead while a drag is active.
func (w *SliderWidget) MouseMove(x, y float64, width, height int) bool {
	if w.state != dragging {
		return false
	}
	w.rep.SetValue(w.rep.ValueAt(x, y, width, height))
	w.InvokeEvent(InteractionEvent)
	return true
}

// ButtonUp ends a drag. An animation keeps running until Tick finishes it.
func (w *SliderWidget) ButtonUp() bool {
	if w.state != dragging {
		return false
	}
	w.end()
	return true
}

// Tick advances a running animation by one step, firing InteractionEvent.
// It returns true while the animation is still in progress.
func (w *SliderWidget) Tick() bool {
	if w.state != animating {
		return false
	}
	w.animStep++
	t := float64(w.animStep) / float64(w.NumberOfAnimationSteps)
	w.rep.SetValue(w.animFrom + t*(w.animTo-w.animFrom))
	w.InvokeEvent(InteractionEvent)
	if w.animStep >= w.NumberOfAnimationSteps {
		w.end()
		return false
	}
	return true
}

// Nudge changes the value by delta as one complete interaction, the
// keyboard path of the terminal viewer.
func (w *SliderWidget) Nudge(delta float64) {
	if !w.enabled || w.rep == nil || w.state != idle {
		return
	}
	w.begin(dragging)
	w.rep.SetValue(w.rep.Value() + delta)
	w.InvokeEvent(InteractionEvent)
	w.end()
}

func (w *SliderWidget) begin(s widgetState) {
	w.state = s
	w.rep.SetHighlighted(true)
	w.InvokeEvent(StartInteractionEvent)
}

func (w *SliderWidget) end() {
	w.state = idle
	w.rep.SetHighlighted(false)
	w.InvokeEvent(EndInteractionEvent)
}
