package window

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitErrorUnwrap(t *testing.T) {
	cause := errors.New("no display")
	var err error = &InitError{Stage: StageWindow, Err: cause}

	var ie *InitError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, StageWindow, ie.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "window creation failed: no display", err.Error())
}

func TestContextLifecycle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c, err := Create(64, 48, "context test", Options{SwapInterval: 0, Hidden: true})
	if err != nil {
		var ie *InitError
		require.True(t, errors.As(err, &ie), "unexpected error type %T", err)
		t.Skipf("no GL context available: %v", err)
	}

	assert.False(t, c.ShouldClose())
	c.SetShouldClose(true)
	assert.True(t, c.ShouldClose())

	w, h := c.FramebufferSize()
	assert.Positive(t, w)
	assert.Positive(t, h)

	c.PollEvents()
	c.SwapBuffers()

	c.Destroy()
	c.Destroy()
}
