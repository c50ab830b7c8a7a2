package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformLocation is a resolved uniform slot. NoUniform marks a miss.
type UniformLocation int32

const NoUniform UniformLocation = -1

// ShaderProgram is a linked vertex+fragment program and its uniform table.
type ShaderProgram struct {
	ID uint32

	uniforms   map[string]UniformLocation
	validation error
	// program that was current when Use was called
	prev uint32
}

// Compile builds a program from vertex and fragment sources. A stage that
// fails to compile is never attached. Validation failures do not fail the
// call; they are reported by Validation.
func Compile(vertexSrc, fragmentSrc string) (*ShaderProgram, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return nil, fmt.Errorf("failed to create program object")
	}

	var attached []uint32
	cleanup := func() {
		for _, s := range attached {
			gl.DetachShader(program, s)
			gl.DeleteShader(s)
		}
	}

	for _, st := range []struct {
		stage Stage
		src   string
	}{
		{StageVertex, vertexSrc},
		{StageFragment, fragmentSrc},
	} {
		shader, err := compileShader(st.src, st.stage)
		if err != nil {
			cleanup()
			gl.DeleteProgram(program)
			return nil, err
		}
		gl.AttachShader(program, shader)
		attached = append(attached, shader)
	}

	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		cleanup()
		gl.DeleteProgram(program)
		return nil, &ShaderLinkError{Log: log}
	}
	// shaders are no longer needed once linked
	cleanup()

	p := &ShaderProgram{ID: program, uniforms: activeUniforms(program)}

	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		p.validation = &ShaderValidateError{Log: programLog(program)}
	}
	return p, nil
}

// Validation returns the result of the validation pass run at link time.
func (p *ShaderProgram) Validation() error {
	return p.validation
}

// Uniform returns the location resolved at link time for name.
func (p *ShaderProgram) Uniform(name string) (UniformLocation, error) {
	loc, ok := p.uniforms[name]
	if !ok {
		return NoUniform, fmt.Errorf("%q: %w", name, ErrUniformNotFound)
	}
	return loc, nil
}

// Use binds the program for subsequent draw calls and remembers the program
// it replaced.
func (p *ShaderProgram) Use() {
	var cur int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &cur)
	p.prev = uint32(cur)
	gl.UseProgram(p.ID)
}

// Unuse restores the program that was current before Use. Use/Unuse pairs
// do not nest on the same program.
func (p *ShaderProgram) Unuse() {
	gl.UseProgram(p.prev)
	p.prev = 0
}

// SetFloat uploads a float uniform. A NoUniform location is ignored.
func (p *ShaderProgram) SetFloat(loc UniformLocation, value float32) {
	if loc == NoUniform {
		return
	}
	gl.Uniform1f(int32(loc), value)
}

// SetMat4 uploads a column-major 4x4 matrix. A NoUniform location is ignored.
func (p *ShaderProgram) SetMat4(loc UniformLocation, m mgl32.Mat4) {
	if loc == NoUniform {
		return
	}
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// Delete releases the GL program.
func (p *ShaderProgram) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func compileShader(source string, stage Stage) (uint32, error) {
	shader := gl.CreateShader(uint32(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &ShaderCompileError{Stage: stage, Log: trimLog(log)}
	}
	return shader, nil
}

func programLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return trimLog(log)
}

// activeUniforms resolves every active uniform once so lookups never hit the driver.
func activeUniforms(program uint32) map[string]UniformLocation {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	out := make(map[string]UniformLocation, count)
	if maxLen == 0 {
		return out
	}
	buf := make([]uint8, maxLen)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), maxLen, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		// arrays report "name[0]"
		name = strings.TrimSuffix(name, "[0]")
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		out[name] = UniformLocation(loc)
	}
	return out
}

func trimLog(log string) string {
	return strings.TrimRight(log, "\x00\n ")
}
