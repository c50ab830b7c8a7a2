package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glmotion/internal/anim"
	"glmotion/internal/config"
	"glmotion/internal/graphics"
)

var triangleVertices = []float32{
	0.0, 1.0, 0.0,
	-1.0, -1.0, 0.0,
	1.0, -1.0, 0.0,
}

var tetrahedronVertices = []float32{
	-1.0, -1.0, 0.0,
	0.0, -1.0, 1.0,
	1.0, -1.0, 0.0,
	0.0, 1.0, 0.0,
}

// four faces, wound counter-clockwise from outside
var tetrahedronIndices = []uint32{
	0, 3, 1,
	1, 3, 2,
	2, 3, 0,
	0, 1, 2,
}

func offsetOnly(a config.AnimationSettings) anim.State {
	return anim.State{
		Offset:    anim.NewSymmetric(a.Offset.Limit, a.Offset.Step),
		HasOffset: true,
	}
}

func spinAndSize(a config.AnimationSettings) anim.State {
	return anim.State{
		Spin: anim.Angle{Step: a.Spin.Step},
		Size: anim.Oscillator{
			Value:      a.Size.Start,
			Increasing: true,
			Min:        a.Size.Min,
			Max:        a.Size.Max,
			Step:       a.Size.Step,
		},
		HasSpin: true,
		HasSize: true,
	}
}

func offsetAndSpin(a config.AnimationSettings) anim.State {
	return anim.State{
		Offset:    anim.NewSymmetric(a.Offset.Limit, a.Offset.Step),
		Spin:      anim.Angle{Step: a.Spin.Step},
		HasOffset: true,
		HasSpin:   true,
	}
}

var builtin = []*Scene{
	{
		Name:     "triangle",
		Variant:  graphics.VariantTranslate,
		Vertices: triangleVertices,
		newState: offsetOnly,
	},
	{
		Name:       "tetrahedron",
		Variant:    graphics.VariantModel,
		Vertices:   tetrahedronVertices,
		Indices:    tetrahedronIndices,
		DepthTest:  true,
		Transforms: []Transform{Rotate(mgl32.Vec3{0, 1, 0}), ScaleSize()},
		newState:   spinAndSize,
	},
	{
		Name:     "orbit",
		Variant:  graphics.VariantModel,
		Vertices: triangleVertices,
		Transforms: []Transform{
			Rotate(mgl32.Vec3{0, 0, 1}),
			TranslateOffset(),
			ScaleFixed(0.4, 0.4, 1),
		},
		newState: offsetAndSpin,
	},
}

// All returns the built-in scenes in cycling order.
func All() []*Scene {
	return builtin
}

// Names lists the built-in scene names.
func Names() []string {
	out := make([]string, len(builtin))
	for i, sc := range builtin {
		out[i] = sc.Name
	}
	return out
}

// Lookup finds a scene by name.
func Lookup(name string) (*Scene, error) {
	for _, sc := range builtin {
		if sc.Name == name {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
}

// Next returns the scene after sc, wrapping around.
func Next(sc *Scene) *Scene {
	for i, s := range builtin {
		if s == sc {
			return builtin[(i+1)%len(builtin)]
		}
	}
	return builtin[0]
}
