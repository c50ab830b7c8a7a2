// Package scene defines the demo configurations: which mesh is drawn, with
// which shader variant, and how the animation drives its uniforms.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glmotion/internal/anim"
	"glmotion/internal/config"
	"glmotion/internal/graphics"
)

// Uniform names used by the built-in shader variants.
const (
	UniformXMove = "xMove"
	UniformModel = "model"
)

// UniformSetter is the part of a shader program a scene drives.
type UniformSetter interface {
	Uniform(name string) (graphics.UniformLocation, error)
	SetFloat(loc graphics.UniformLocation, value float32)
	SetMat4(loc graphics.UniformLocation, m mgl32.Mat4)
}

// Transform appends one step to a model matrix.
type Transform func(m mgl32.Mat4, s *anim.State) mgl32.Mat4

// TranslateOffset moves along X by the offset oscillator.
func TranslateOffset() Transform {
	return func(m mgl32.Mat4, s *anim.State) mgl32.Mat4 {
		return m.Mul4(mgl32.Translate3D(s.Offset.Value, 0, 0))
	}
}

// Rotate turns about axis by the spin angle.
func Rotate(axis mgl32.Vec3) Transform {
	return func(m mgl32.Mat4, s *anim.State) mgl32.Mat4 {
		return m.Mul4(mgl32.HomogRotate3D(s.Spin.Radians(), axis))
	}
}

// ScaleSize scales X and Y by the size oscillator.
func ScaleSize() Transform {
	return func(m mgl32.Mat4, s *anim.State) mgl32.Mat4 {
		return m.Mul4(mgl32.Scale3D(s.Size.Value, s.Size.Value, 1))
	}
}

// ScaleFixed scales by constant factors.
func ScaleFixed(x, y, z float32) Transform {
	return func(m mgl32.Mat4, _ *anim.State) mgl32.Mat4 {
		return m.Mul4(mgl32.Scale3D(x, y, z))
	}
}

// Scene is one demo configuration.
type Scene struct {
	Name     string
	Variant  graphics.Variant
	Vertices []float32
	Indices  []uint32
	// DepthTest is needed for meshes whose faces overlap on screen.
	DepthTest bool
	// Transforms compose left to right starting from identity. Only used by
	// the model variant.
	Transforms []Transform

	newState func(config.AnimationSettings) anim.State
}

// NewState builds the scene's animation from the configured constants.
func (sc *Scene) NewState(a config.AnimationSettings) (anim.State, error) {
	s := sc.newState(a)
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("scene %s: %w", sc.Name, err)
	}
	return s, nil
}

// Model composes the scene's transforms for the current state.
func (sc *Scene) Model(s *anim.State) mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, t := range sc.Transforms {
		m = t(m, s)
	}
	return m
}

// Binding holds the uniform locations a scene pushes every frame.
type Binding struct {
	loc graphics.UniformLocation
}

// Bind resolves the scene's uniform in p. A missing uniform is an error the
// caller may treat as recoverable.
func (sc *Scene) Bind(p UniformSetter) (Binding, error) {
	name := UniformModel
	if sc.Variant == graphics.VariantTranslate {
		name = UniformXMove
	}
	loc, err := p.Uniform(name)
	if err != nil {
		return Binding{loc: graphics.NoUniform}, fmt.Errorf("scene %s: %w", sc.Name, err)
	}
	return Binding{loc: loc}, nil
}

// Push uploads the uniform values for s. The program must be in use.
func (sc *Scene) Push(p UniformSetter, b Binding, s *anim.State) {
	if sc.Variant == graphics.VariantTranslate {
		p.SetFloat(b.loc, s.Offset.Value)
		return
	}
	p.SetMat4(b.loc, sc.Model(s))
}
