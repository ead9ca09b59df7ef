//go:build !js && !nogl

// Package glcore binds the buffer and query entry points of the OpenGL 3.3
// core profile used by the gfx wrappers.
package glcore

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type API struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{logger: logger}
}

// Init loads the GL function pointers. A context must be current.
func (a *API) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialise OpenGL context: %w", err)
	}
	a.logger.Info("OpenGL initialised", "version", a.Version())
	return nil
}

func (a *API) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (a *API) GenBuffers(n int32, buffers *uint32) {
	gl.GenBuffers(n, buffers)
}

func (a *API) DeleteBuffers(n int32, buffers *uint32) {
	gl.DeleteBuffers(n, buffers)
}

func (a *API) BindBuffer(target uint32, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (a *API) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (a *API) GetError() uint32 {
	return gl.GetError()
}

func (a *API) GetIntegerv(pname uint32, data *int32) {
	gl.GetIntegerv(pname, data)
}

func (a *API) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (a *API) ClearColor(r, g, b, alpha float32) {
	gl.ClearColor(r, g, b, alpha)
}

func (a *API) Clear(mask uint32) {
	gl.Clear(mask)
}
