package geometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/molviz/internal/geometry"
)

var _ = Describe("SphereSource", func() {
	var sphere *geometry.SphereSource

	BeforeEach(func() {
		sphere = geometry.NewSphereSource()
		sphere.SetRadius(1)
	})

	DescribeTable("vertex and triangle counts",
		func(theta, phi int) {
			sphere.SetThetaResolution(theta)
			sphere.SetPhiResolution(phi)
			out := sphere.Output()
			Expect(out.NumVertices()).To(Equal(theta*(phi-2) + 2))
			Expect(out.NumTriangles()).To(Equal(2 * theta * (phi - 2)))
		},
		Entry("minimum", 3, 3),
		Entry("coarse", 4, 4),
		Entry("default", 8, 8),
		Entry("fine", 20, 20),
		Entry("mixed", 12, 5),
	)

	It("places every vertex on the surface", func() {
		sphere.SetCenter(geometry.Vec3{X: 1, Y: 2, Z: 3})
		sphere.SetRadius(2.5)
		sphere.SetThetaResolution(10)
		sphere.SetPhiResolution(7)
		for _, p := range sphere.Output().Positions {
			Expect(p.Sub(sphere.Center()).Length()).To(BeNumerically("~", 2.5, 1e-9))
		}
	})

	It("clamps resolution below three", func() {
		sphere.SetThetaResolution(1)
		sphere.SetPhiResolution(-4)
		Expect(sphere.ThetaResolution()).To(Equal(geometry.MinSphereResolution))
		Expect(sphere.PhiResolution()).To(Equal(geometry.MinSphereResolution))
	})

	It("only rebuilds after a change", func() {
		first := sphere.Output()
		Expect(sphere.Output()).To(BeIdenticalTo(first))

		sphere.SetRadius(1)
		Expect(sphere.Output()).To(BeIdenticalTo(first))

		sphere.SetThetaResolution(16)
		Expect(sphere.Output()).NotTo(BeIdenticalTo(first))
	})

	It("keeps every triangle index in range", func() {
		sphere.SetThetaResolution(9)
		sphere.SetPhiResolution(6)
		out := sphere.Output()
		for _, t := range out.Triangles {
			for _, idx := range t {
				Expect(idx).To(BeNumerically(">=", 0))
				Expect(idx).To(BeNumerically("<", out.NumVertices()))
			}
		}
	})
})

var _ = Describe("TubeFilter", func() {
	var tube *geometry.TubeFilter
	segments := []geometry.Segment{
		{A: geometry.Vec3{}, B: geometry.Vec3{X: 1.5}},
		{A: geometry.Vec3{X: 1.5}, B: geometry.Vec3{X: 1.5, Y: 1.5}},
		{A: geometry.Vec3{Z: 2}, B: geometry.Vec3{Z: 2}},
	}

	BeforeEach(func() {
		tube = geometry.NewTubeFilter()
		tube.SetInput(segments)
		tube.SetRadius(0.2)
		tube.CappingOff()
	})

	It("emits two rings per non-degenerate segment", func() {
		tube.SetNumberOfSides(8)
		out := tube.Output()
		Expect(out.NumVertices()).To(Equal(2 * 2 * 8))
		Expect(out.NumTriangles()).To(Equal(2 * 2 * 8))
	})

	It("adds caps when capping is on", func() {
		tube.SetNumberOfSides(6)
		tube.CappingOn()
		out := tube.Output()
		Expect(out.NumVertices()).To(Equal(2 * (2*6 + 2*6)))
		Expect(out.NumTriangles()).To(Equal(2 * (2*6 + 2*(6-2))))
	})

	It("keeps ring vertices at the tube radius", func() {
		single := geometry.NewTubeFilter()
		single.SetInput(segments[:1])
		single.SetRadius(0.2)
		single.SetNumberOfSides(12)
		for _, p := range single.Output().Positions {
			Expect(math.Hypot(p.Y, p.Z)).To(BeNumerically("~", 0.2, 1e-9))
		}
	})

	It("clamps sides below three", func() {
		tube.SetNumberOfSides(2)
		Expect(tube.NumberOfSides()).To(Equal(geometry.MinTubeSides))
	})
})

var _ = Describe("Glyph3D", func() {
	var (
		sphere *geometry.SphereSource
		glyph  *geometry.Glyph3D
		points []geometry.GlyphPoint
	)

	BeforeEach(func() {
		sphere = geometry.NewSphereSource()
		sphere.SetRadius(1)
		sphere.SetThetaResolution(6)
		sphere.SetPhiResolution(6)

		points = []geometry.GlyphPoint{
			{Pos: geometry.Vec3{}, Scale: 1.7, Color: geometry.Color{R: 144, G: 144, B: 144}},
			{Pos: geometry.Vec3{X: 3}, Scale: 1.2, Color: geometry.Color{R: 255, G: 255, B: 255}},
		}
		glyph = geometry.NewGlyph3D()
		glyph.SetInput(points)
		glyph.SetSource(sphere)
		glyph.SetScaleFactor(0.25)
	})

	It("copies the source once per point", func() {
		src := sphere.Output()
		out := glyph.Output()
		Expect(out.NumVertices()).To(Equal(2 * src.NumVertices()))
		Expect(out.NumTriangles()).To(Equal(2 * src.NumTriangles()))
		Expect(out.HasColors()).To(BeTrue())
		Expect(out.Colors[src.NumVertices()]).To(Equal(points[1].Color))
	})

	It("scales by factor and point scale", func() {
		out := glyph.Output()
		Expect(out.Positions[0].Length()).To(BeNumerically("~", 0.25*1.7, 1e-9))
	})

	It("ignores point scale when data scaling is off", func() {
		glyph.SetScaleMode(geometry.DataScalingOff)
		out := glyph.Output()
		Expect(out.Positions[0].Length()).To(BeNumerically("~", 0.25, 1e-9))
	})

	It("ignores point scale when scaling is off", func() {
		glyph.ScalingOff()
		Expect(glyph.Output().Positions[0].Length()).To(BeNumerically("~", 0.25, 1e-9))
		glyph.ScalingOn()
		Expect(glyph.Output().Positions[0].Length()).To(BeNumerically("~", 0.25*1.7, 1e-9))
	})

	It("rebuilds when the source changes", func() {
		before := glyph.Output()
		sphere.SetRadius(2)
		after := glyph.Output()
		Expect(after).NotTo(BeIdenticalTo(before))
		Expect(after.Positions[0].Length()).To(BeNumerically("~", 2*0.25*1.7, 1e-9))
	})

	It("builds large inputs in parallel with stable layout", func() {
		many := make([]geometry.GlyphPoint, 2000)
		for i := range many {
			many[i] = geometry.GlyphPoint{Pos: geometry.Vec3{X: float64(i)}, Scale: 1}
		}
		glyph.SetInput(many)
		out := glyph.Output()
		nv := sphere.Output().NumVertices()
		Expect(out.NumVertices()).To(Equal(2000 * nv))
		Expect(out.Positions[1999*nv].X).To(BeNumerically("~", 1999, 1e-9))
		Expect(out.Triangles[len(out.Triangles)-1][0]).To(BeNumerically(">=", 1999*nv))
	})
})

var _ = Describe("Mesh", func() {
	It("appends with offset indices", func() {
		a := &geometry.Mesh{
			Positions: []geometry.Vec3{{}, {X: 1}, {Y: 1}},
			Normals:   make([]geometry.Vec3, 3),
			Triangles: [][3]int{{0, 1, 2}},
		}
		b := &geometry.Mesh{}
		b.Append(a)
		b.Append(a)
		Expect(b.NumVertices()).To(Equal(6))
		Expect(b.Triangles[1]).To(Equal([3]int{3, 4, 5}))

		lo, hi := b.Bounds()
		Expect(lo).To(Equal(geometry.Vec3{}))
		Expect(hi).To(Equal(geometry.Vec3{X: 1, Y: 1}))
	})
})
