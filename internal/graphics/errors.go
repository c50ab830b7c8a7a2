package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage identifies a shader stage in a program.
type Stage uint32

const (
	StageVertex   Stage = gl.VERTEX_SHADER
	StageFragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%x)", uint32(s))
}

var (
	// ErrUniformNotFound is returned when a name has no active uniform in the program.
	ErrUniformNotFound = errors.New("uniform not found")
	// ErrInvalidGeometry wraps every mesh validation failure.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrEmptyFramebuffer is returned when there are no pixels to read,
	// for example while the window is minimised.
	ErrEmptyFramebuffer = errors.New("empty framebuffer")
)

// ShaderCompileError carries the driver log of a stage that failed to compile.
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// ShaderLinkError carries the driver log of a failed link.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// ShaderValidateError carries the driver log of a failed validation pass.
// It does not prevent the program from being used.
type ShaderValidateError struct {
	Log string
}

func (e *ShaderValidateError) Error() string {
	return fmt.Sprintf("program validation failed: %s", e.Log)
}
