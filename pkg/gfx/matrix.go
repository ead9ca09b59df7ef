package gfx

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a mutable 4x4 float matrix in column-major order, as uploaded to
// GL uniforms.
type Matrix struct {
	mat mgl32.Mat4
}

func NewMatrix() *Matrix {
	return &Matrix{mat: mgl32.Ident4()}
}

func (m *Matrix) SetIdentity() {
	m.mat = mgl32.Ident4()
}

// SetPerspectiveProjectionMatrix sets a symmetric perspective projection;
// fov is the vertical field of view in degrees.
func (m *Matrix) SetPerspectiveProjectionMatrix(fov, ratio, near, far float32) {
	m.mat = mgl32.Perspective(mgl32.DegToRad(fov), ratio, near, far)
}

// SetPerspectiveAnaglyphProjectionMatrix sets an off-axis projection for one
// eye of a stereo pair converging at convergenceDist. A positive
// eyeSeparation yields the left eye, a negative one the right eye.
func (m *Matrix) SetPerspectiveAnaglyphProjectionMatrix(fov, convergenceDist, aspectRatio, eyeSeparation, near, far float32) {
	tan := float32(math.Tan(float64(mgl32.DegToRad(fov)) / 2))
	top := near * tan
	a := aspectRatio * tan * convergenceDist
	b := a - eyeSeparation/2
	c := a + eyeSeparation/2
	left := -b * near / convergenceDist
	right := c * near / convergenceDist
	m.mat = mgl32.Frustum(left, right, -top, top, near, far).
		Mul4(mgl32.Translate3D(eyeSeparation/2, 0, 0))
}

func (m *Matrix) SetOrthoProjectionMatrix(left, right, bottom, top, near, far float32) {
	m.mat = mgl32.Ortho(left, right, bottom, top, near, far)
}

// SetCamera sets a view matrix looking from pos at target with the given up
// direction.
func (m *Matrix) SetCamera(posX, posY, posZ, targetX, targetY, targetZ, upX, upY, upZ float32) {
	m.mat = mgl32.LookAt(posX, posY, posZ, targetX, targetY, targetZ, upX, upY, upZ)
}

// Mult post-multiplies m by other in place.
func (m *Matrix) Mult(other *Matrix) {
	m.mat = m.mat.Mul4(other.mat)
}

func (m *Matrix) Mat4() mgl32.Mat4 {
	return m.mat
}

// Floats returns a column-major copy of the 16 elements.
func (m *Matrix) Floats() []float32 {
	out := make([]float32, 16)
	copy(out, m.mat[:])
	return out
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix%v", m.mat)
}
