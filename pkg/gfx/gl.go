package gfx

import (
	"errors"
	"fmt"
	"unsafe"
)

// GL is the slice of the OpenGL API the wrappers delegate to. Method
// signatures follow github.com/go-gl/gl so the binding satisfies it directly.
type GL interface {
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GetError() uint32
	GetIntegerv(pname uint32, data *int32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
}

const (
	NoError        uint32 = 0
	ArrayBuffer    uint32 = 0x8892
	StaticDraw     uint32 = 0x88E4
	SampleBuffers  uint32 = 0x80A8
	Samples        uint32 = 0x80A9
	ColorBufferBit uint32 = 0x00004000
	DepthBufferBit uint32 = 0x00000100
)

const float32Size = 4

var ErrGL = errors.New("gl error")

// checkGL turns a pending GL error into an error wrapping ErrGL.
func checkGL(gl GL, op string) error {
	if code := gl.GetError(); code != NoError {
		return fmt.Errorf("%s: %w 0x%04X", op, ErrGL, code)
	}
	return nil
}
