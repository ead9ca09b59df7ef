//go:build !js && !nogl

package renderer

import (
	"image/color"
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/cleargl/pkg/gfx"
)

// TriangleVertices is a unit triangle in the z=0 plane, three floats per
// vertex.
var TriangleVertices = []float32{
	0, 1, 0,
	-0.866, -0.5, 0,
	0.866, -0.5, 0,
}

type Config struct {
	// ShaderSource holds both stages, selected by VERTEX and FRAGMENT
	// defines. Empty uses the built-in shader.
	ShaderSource string
	Background   color.Color
	Tint         color.Color
	Vertices     []float32
	// DegreesPerFrame spins the model around the y axis.
	DegreesPerFrame float32
	// Anaglyph renders the left eye's off-axis projection instead of a
	// plain perspective one.
	Anaglyph bool
}

func DefaultConfig() Config {
	return Config{
		Background:      color.RGBA{R: 16, G: 16, B: 32, A: 255},
		Tint:            color.White,
		Vertices:        TriangleVertices,
		DegreesPerFrame: 1,
	}
}

// Scene draws one spinning mesh and is driven by a gfx.Window.
type Scene struct {
	conf   Config
	window *gfx.Window
	frames atomic.Uint64

	backend  backend
	angle    float32
	vertices int32
}

func NewScene(conf Config) *Scene {
	if conf.ShaderSource == "" {
		conf.ShaderSource = defaultShaderSource
	}
	if conf.Vertices == nil {
		conf.Vertices = TriangleVertices
	}
	if conf.Tint == nil {
		conf.Tint = color.White
	}
	return &Scene{conf: conf}
}

func (s *Scene) SetWindow(w *gfx.Window) {
	s.window = w
	w.LookAt(0, 0, 3, 0, 0, 0, 0, 1, 0)
}

// Frames reports how many frames were displayed.
func (s *Scene) Frames() uint64 {
	return s.frames.Load()
}

func (s *Scene) Init(gl gfx.GL) error {
	s.vertices = int32(len(s.conf.Vertices) / 3)
	return s.backend.init(gl, s.conf)
}

func (s *Scene) Reshape(gl gfx.GL, x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
	if height == 0 {
		return
	}
	aspect := float32(width) / float32(height)
	if s.conf.Anaglyph {
		s.window.SetPerspectiveAnaglyphProjectionMatrix(45, 3, aspect, 0.065, 0.1, 100)
		return
	}
	s.window.SetPerspectiveProjectionMatrix(45, aspect, 0.1, 100)
}

func (s *Scene) Display(gl gfx.GL) error {
	bg := colorToFloat(s.conf.Background)
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)

	s.angle = float32(math.Mod(float64(s.angle+s.conf.DegreesPerFrame), 360))
	mvp := s.modelViewProjection()
	if err := s.backend.draw(gl, mvp, colorToFloat(s.conf.Tint), s.vertices); err != nil {
		return err
	}
	s.frames.Add(1)
	return nil
}

func (s *Scene) modelViewProjection() mgl32.Mat4 {
	model := mgl32.HomogRotate3DY(mgl32.DegToRad(s.angle))
	mvp := gfx.NewMatrix()
	mvp.Mult(s.window.ProjectionMatrix())
	mvp.Mult(s.window.ViewMatrix())
	return mvp.Mat4().Mul4(model)
}

func (s *Scene) Dispose(gl gfx.GL) {
	if err := s.backend.dispose(); err != nil {
		gfx.Logger().Warn("scene dispose failed", "err", err)
	}
}
