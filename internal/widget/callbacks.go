package widget

import (
	"log"

	"github.com/san-kum/molviz/internal/geometry"
)

func sliderRepresentation(w *SliderWidget) (*SliderRepresentation2D, bool) {
	rep, ok := w.Representation().(*SliderRepresentation2D)
	if !ok {
		log.Println("error: unable to cast to SliderRepresentation2D")
	}
	return rep, ok
}

// NewResolutionCallback copies the slider value, truncated, into the
// sphere's theta and phi resolution and the tube's side count, then
// updates both. Either target may be nil.
func NewResolutionCallback(sphere *geometry.SphereSource, tube *geometry.TubeFilter) Observer {
	return func(w *SliderWidget, _ Event) {
		rep, ok := sliderRepresentation(w)
		if !ok {
			return
		}
		n := int(rep.Value())

		if sphere != nil {
			sphere.SetThetaResolution(n)
			sphere.SetPhiResolution(n)
			sphere.Update()
		}
		if tube != nil {
			tube.SetNumberOfSides(n)
			tube.Update()
		}
	}
}

// NewRadiusCallback writes the slider value as the sphere radius.
func NewRadiusCallback(sphere *geometry.SphereSource) Observer {
	return func(w *SliderWidget, _ Event) {
		rep, ok := sliderRepresentation(w)
		if !ok || sphere == nil {
			return
		}
		sphere.SetRadius(rep.Value())
		sphere.Update()
	}
}
