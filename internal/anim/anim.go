package anim

import (
	"fmt"

	"github.com/chewxy/math32"
)

// FullTurn is the wrap threshold for angles, in degrees.
const FullTurn float32 = 360

// Oscillator is a scalar bouncing between Min and Max by Step per frame.
type Oscillator struct {
	Value      float32
	Increasing bool
	Min        float32
	Max        float32
	Step       float32
}

// NewSymmetric returns an oscillator bounded by [-limit, limit], starting at
// zero and moving up, the way the translating triangle moves.
func NewSymmetric(limit, step float32) Oscillator {
	return Oscillator{Increasing: true, Min: -limit, Max: limit, Step: step}
}

// Validate reports whether the bounds and step describe a usable oscillator.
func (o Oscillator) Validate() error {
	if o.Min >= o.Max {
		return fmt.Errorf("oscillator bounds [%g, %g] are empty", o.Min, o.Max)
	}
	if o.Step <= 0 || o.Step > o.Max-o.Min {
		return fmt.Errorf("oscillator step %g must be in (0, %g]", o.Step, o.Max-o.Min)
	}
	if o.Value < o.Min || o.Value > o.Max {
		return fmt.Errorf("oscillator start %g outside [%g, %g]", o.Value, o.Min, o.Max)
	}
	return nil
}

// Advance moves the value by delta steps and reports whether the direction
// flipped. The flip happens on the step that reaches or crosses a bound and
// the value is pinned to that bound.
func (o *Oscillator) Advance(delta float32) bool {
	d := o.Step * delta
	if o.Increasing {
		o.Value = math32.Min(o.Value+d, o.Max)
		if o.Value == o.Max {
			o.Increasing = false
			return true
		}
		return false
	}
	o.Value = math32.Max(o.Value-d, o.Min)
	if o.Value == o.Min {
		o.Increasing = true
		return true
	}
	return false
}

// Angle is a rotation in degrees that wraps into [0, 360).
type Angle struct {
	Value float32
	Step  float32
}

// Advance adds delta steps and wraps the result into [0, 360).
func (a *Angle) Advance(delta float32) {
	v := math32.Mod(a.Value+a.Step*delta, FullTurn)
	if v < 0 {
		v += FullTurn
	}
	// -tiny + 360 rounds to 360 in float32
	if v >= FullTurn {
		v = 0
	}
	a.Value = v
}

// Radians returns the angle converted for matrix helpers.
func (a Angle) Radians() float32 {
	return a.Value * math32.Pi / 180
}

// State groups the scalars one scene animates. Scenes leave unused scalars
// disabled.
type State struct {
	Offset Oscillator
	Size   Oscillator
	Spin   Angle

	HasOffset bool
	HasSize   bool
	HasSpin   bool
}

// Advance steps every enabled scalar. delta is 1 for one fixed frame step.
func (s *State) Advance(delta float32) {
	if s.HasOffset {
		s.Offset.Advance(delta)
	}
	if s.HasSize {
		s.Size.Advance(delta)
	}
	if s.HasSpin {
		s.Spin.Advance(delta)
	}
}

// Validate checks every enabled scalar.
func (s State) Validate() error {
	if s.HasOffset {
		if err := s.Offset.Validate(); err != nil {
			return fmt.Errorf("offset: %w", err)
		}
	}
	if s.HasSize {
		if err := s.Size.Validate(); err != nil {
			return fmt.Errorf("size: %w", err)
		}
	}
	if s.HasSpin {
		if math32.Abs(s.Spin.Step) >= FullTurn {
			return fmt.Errorf("spin: step %g must be below one full turn", s.Spin.Step)
		}
		if s.Spin.Value < 0 || s.Spin.Value >= FullTurn {
			return fmt.Errorf("spin: start %g outside [0, 360)", s.Spin.Value)
		}
	}
	return nil
}
