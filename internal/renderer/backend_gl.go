//go:build !js && !nogl

package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/cleargl/pkg/gfx"
)

const positionLocation = 0

type backend struct {
	initialized bool
	program     uint32
	vao         uint32
	positions   *gfx.VertexAttributeArray

	mvpUniform  int32
	tintUniform int32
}

func (b *backend) init(api gfx.GL, conf Config) error {
	program, err := buildProgram(conf.ShaderSource)
	if err != nil {
		return err
	}
	b.program = program
	b.mvpUniform = gl.GetUniformLocation(program, gl.Str("uMVP\x00"))
	b.tintUniform = gl.GetUniformLocation(program, gl.Str("uTint\x00"))

	positions, err := gfx.NewVertexAttributeArray(gfx.NewAttribute(api, "aPosition", positionLocation), 3)
	if err != nil {
		gl.DeleteProgram(program)
		return err
	}
	if err := positions.CopyFrom(conf.Vertices); err != nil {
		positions.Close()
		gl.DeleteProgram(program)
		return err
	}
	b.positions = positions

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	positions.Bind()
	gl.EnableVertexAttribArray(positionLocation)
	gl.VertexAttribPointer(positionLocation, int32(positions.ElementsPerIndex()), gl.FLOAT, false, 0, gl.PtrOffset(0))
	positions.Unbind()
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	b.initialized = true
	return nil
}

func (b *backend) draw(api gfx.GL, mvp mgl32.Mat4, tint [4]float32, vertices int32) error {
	if !b.initialized {
		return nil
	}
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.mvpUniform, 1, false, &mvp[0])
	gl.Uniform4f(b.tintUniform, tint[0], tint[1], tint[2], tint[3])
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, vertices)
	gl.BindVertexArray(0)
	if code := api.GetError(); code != gfx.NoError {
		return fmt.Errorf("draw: %w 0x%04X", gfx.ErrGL, code)
	}
	return nil
}

func (b *backend) dispose() error {
	if !b.initialized {
		return nil
	}
	var err error
	if b.positions != nil {
		err = b.positions.Close()
		b.positions = nil
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
	}
	b.initialized = false
	return err
}

func buildProgram(source string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, buildShaderSource(source, "VERTEX"))
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, buildShaderSource(source, "FRAGMENT"))
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link error: %s", log)
	}
	return program, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
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
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}
