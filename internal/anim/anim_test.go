package anim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetReachesLimitAfter140Steps(t *testing.T) {
	o := NewSymmetric(0.7, 0.005)
	require.NoError(t, o.Validate())

	for i := 1; i <= 140; i++ {
		require.False(t, o.Advance(1), "flipped early at step %d", i)
	}
	// float32 accumulation leaves the value just short of the limit
	assert.InDelta(t, 0.7, o.Value, 1e-5)
	assert.Less(t, o.Value, float32(0.7))
	assert.True(t, o.Increasing)

	// the next step crosses 0.7 and flips
	assert.True(t, o.Advance(1))
	assert.False(t, o.Increasing)
	assert.Equal(t, float32(0.7), o.Value)
}

func TestOscillatorStaysInBounds(t *testing.T) {
	cases := []Oscillator{
		NewSymmetric(0.7, 0.005),
		{Value: 0.4, Increasing: true, Min: 0.1, Max: 0.8, Step: 0.001},
		{Value: 0.4, Increasing: false, Min: 0.1, Max: 0.8, Step: 0.33},
		{Value: 0, Increasing: true, Min: -1, Max: 1, Step: 2},
	}
	for _, o := range cases {
		require.NoError(t, o.Validate())
		for i := 0; i < 5000; i++ {
			o.Advance(1)
			if o.Value < o.Min || o.Value > o.Max {
				t.Fatalf("step %d: value %g left [%g, %g]", i, o.Value, o.Min, o.Max)
			}
		}
	}
}

func TestOscillatorFlipsOncePerBound(t *testing.T) {
	o := Oscillator{Value: 0.4, Increasing: true, Min: 0.1, Max: 0.8, Step: 0.01}
	lastBound := 0 // +1 max, -1 min
	flips := 0
	for i := 0; i < 10000; i++ {
		if !o.Advance(1) {
			continue
		}
		flips++
		bound := 1
		if o.Increasing {
			bound = -1
		}
		if bound == lastBound {
			t.Fatalf("step %d: flipped twice in a row at the same bound", i)
		}
		lastBound = bound
	}
	assert.Greater(t, flips, 10)
}

func TestOscillatorLargeDelta(t *testing.T) {
	o := NewSymmetric(0.7, 0.005)
	flipped := o.Advance(1000)
	assert.True(t, flipped)
	assert.Equal(t, float32(0.7), o.Value)
	assert.False(t, o.Increasing)
}

func TestAngleWrap(t *testing.T) {
	a := Angle{Step: 0.5}
	var unwrapped float64
	for i := 0; i < 3000; i++ {
		a.Advance(1)
		unwrapped += 0.5
		if a.Value < 0 || a.Value >= FullTurn {
			t.Fatalf("step %d: angle %g outside [0, 360)", i, a.Value)
		}
		want := math.Mod(unwrapped, 360)
		diff := math.Abs(float64(a.Value) - want)
		if diff > 1e-3 && math.Abs(diff-360) > 1e-3 {
			t.Fatalf("step %d: angle %g not congruent to %g", i, a.Value, want)
		}
	}
}

func TestAngleNegativeStep(t *testing.T) {
	a := Angle{Value: 0.25, Step: -0.5}
	a.Advance(1)
	assert.InDelta(t, 359.75, a.Value, 1e-4)
}

func TestAngleLargeDelta(t *testing.T) {
	a := Angle{Value: 10, Step: 0.5}
	a.Advance(1000)
	assert.InDelta(t, 150, a.Value, 1e-3)

	a = Angle{Value: 10, Step: -0.5}
	a.Advance(1000)
	assert.InDelta(t, 230, a.Value, 1e-3)
}

func TestAngleRadians(t *testing.T) {
	a := Angle{Value: 180}
	assert.InDelta(t, math.Pi, a.Radians(), 1e-6)
}

func TestStateAdvanceSkipsDisabled(t *testing.T) {
	s := State{
		Offset:    NewSymmetric(0.7, 0.005),
		Size:      Oscillator{Value: 0.4, Increasing: true, Min: 0.1, Max: 0.8, Step: 0.001},
		Spin:      Angle{Step: 1},
		HasOffset: true,
		HasSpin:   true,
	}
	s.Advance(1)
	assert.InDelta(t, 0.005, s.Offset.Value, 1e-7)
	assert.Equal(t, float32(0.4), s.Size.Value)
	assert.Equal(t, float32(1), s.Spin.Value)
}

func TestStateValidate(t *testing.T) {
	s := State{Offset: Oscillator{Min: 1, Max: 0, Step: 0.1}, HasOffset: true}
	assert.Error(t, s.Validate())

	s = State{Size: Oscillator{Value: 0.5, Min: 0, Max: 1, Step: 0}, HasSize: true}
	assert.Error(t, s.Validate())

	s = State{Spin: Angle{Step: 400}, HasSpin: true}
	assert.Error(t, s.Validate())

	s = State{Spin: Angle{Value: 10, Step: 1}, HasSpin: true, Offset: NewSymmetric(0.5, 0.01), HasOffset: true}
	assert.NoError(t, s.Validate())
}
