package gfx

import (
	"fmt"
	"unsafe"
)

// Attribute names a vertex shader input and carries the GL handle the
// buffers bound to it use.
type Attribute struct {
	gl       GL
	name     string
	location uint32
}

func NewAttribute(gl GL, name string, location uint32) *Attribute {
	return &Attribute{gl: gl, name: name, location: location}
}

func (a *Attribute) GL() GL           { return a.gl }
func (a *Attribute) Name() string     { return a.name }
func (a *Attribute) Location() uint32 { return a.location }

func (a *Attribute) String() string {
	return fmt.Sprintf("Attribute{name=%s, location=%d}", a.name, a.location)
}

// VertexAttributeArray owns one GL array buffer holding float32 vertex data
// for an attribute. The buffer id is valid from construction until Close.
type VertexAttributeArray struct {
	attribute        *Attribute
	id               uint32
	elementsPerIndex int
}

// NewVertexAttributeArray allocates the buffer. Errors reported by the GL
// are returned wrapping ErrGL.
func NewVertexAttributeArray(attribute *Attribute, elementsPerIndex int) (*VertexAttributeArray, error) {
	a := &VertexAttributeArray{
		attribute:        attribute,
		elementsPerIndex: elementsPerIndex,
	}
	gl := attribute.GL()
	gl.GenBuffers(1, &a.id)
	if err := checkGL(gl, "gen buffers"); err != nil {
		return nil, err
	}
	if a.id == 0 {
		return nil, fmt.Errorf("gen buffers: %w: no buffer name returned", ErrGL)
	}
	return a, nil
}

// Close deletes the buffer. It must be called exactly once.
func (a *VertexAttributeArray) Close() error {
	gl := a.GL()
	gl.DeleteBuffers(1, &a.id)
	return checkGL(gl, "delete buffers")
}

// CopyFrom binds the buffer and uploads data as static draw content.
func (a *VertexAttributeArray) CopyFrom(data []float32) error {
	a.Bind()
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl := a.GL()
	gl.BufferData(ArrayBuffer, len(data)*float32Size, ptr, StaticDraw)
	return checkGL(gl, "buffer data")
}

func (a *VertexAttributeArray) Bind() {
	a.GL().BindBuffer(ArrayBuffer, a.id)
}

func (a *VertexAttributeArray) Unbind() {
	a.GL().BindBuffer(ArrayBuffer, 0)
}

func (a *VertexAttributeArray) GL() GL {
	return a.attribute.GL()
}

func (a *VertexAttributeArray) ID() uint32 {
	return a.id
}

func (a *VertexAttributeArray) Attribute() *Attribute {
	return a.attribute
}

func (a *VertexAttributeArray) ElementsPerIndex() int {
	return a.elementsPerIndex
}

func (a *VertexAttributeArray) String() string {
	return fmt.Sprintf("VertexAttributeArray{attribute=%v, id=%d, elementsPerIndex=%d}",
		a.attribute, a.id, a.elementsPerIndex)
}
