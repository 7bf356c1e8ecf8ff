package shaders

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Link builds a program out of two compiled shaders. On failure the error
// carries the linker's info log.
func Link(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logmsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", trimLog(logmsg))
	}

	return program, nil
}

// Compile compiles one shader stage. On failure the error carries the
// compiler's info log.
func Compile(name, source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s shader: %v", name, trimLog(clog))
	}

	return shader, nil
}

func trimLog(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
