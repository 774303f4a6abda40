package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"lunarfolio/internal/view"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// vertexBuffer is one VAO/VBO pair with a fixed layout.
type vertexBuffer struct {
	vao, vbo uint32
	count    int32 // vertices uploaded, for static buffers
}

func newLineBuffer() vertexBuffer {
	var b vertexBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	stride := int32(view.LineStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aColor (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(3*4))
	return b
}

func newPointBuffer() vertexBuffer {
	var b vertexBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	stride := int32(view.PointStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	return b
}

func (b *vertexBuffer) upload(data []float32, usage uint32) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
}

func (b *vertexBuffer) destroy() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
}

type Renderer struct {
	lineProg      uint32
	lineUViewProj int32
	lineUFade     int32

	pointProg      uint32
	pointUViewProj int32
	pointUPPU      int32

	glowProg      uint32
	glowUViewProj int32
	glowUPPU      int32

	// Geometry that never changes is uploaded once.
	staticLines  vertexBuffer
	staticPoints vertexBuffer

	lines  vertexBuffer
	points vertexBuffer
	glow   vertexBuffer

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		return nil, fmt.Errorf("line program: %w", err)
	}
	pointProg, err := linkProgram(pointVertSrc, pointFragSrc)
	if err != nil {
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("point program: %w", err)
	}
	glowProg, err := linkProgram(pointVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(lineProg)
		gl.DeleteProgram(pointProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		lineProg:  lineProg,
		pointProg: pointProg,
		glowProg:  glowProg,
	}

	gl.UseProgram(lineProg)
	r.lineUViewProj = gl.GetUniformLocation(lineProg, gl.Str("uViewProj\x00"))
	r.lineUFade = gl.GetUniformLocation(lineProg, gl.Str("uFade\x00"))
	gl.Uniform1f(r.lineUFade, 1.0)

	gl.UseProgram(pointProg)
	r.pointUViewProj = gl.GetUniformLocation(pointProg, gl.Str("uViewProj\x00"))
	r.pointUPPU = gl.GetUniformLocation(pointProg, gl.Str("uPixelsPerUnit\x00"))

	gl.UseProgram(glowProg)
	r.glowUViewProj = gl.GetUniformLocation(glowProg, gl.Str("uViewProj\x00"))
	r.glowUPPU = gl.GetUniformLocation(glowProg, gl.Str("uPixelsPerUnit\x00"))

	r.staticLines = newLineBuffer()
	r.staticPoints = newPointBuffer()
	r.lines = newLineBuffer()
	r.points = newPointBuffer()
	r.glow = newPointBuffer()

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, b := range []*vertexBuffer{&r.staticLines, &r.staticPoints, &r.lines, &r.points, &r.glow} {
		b.destroy()
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
	}
	for _, id := range []uint32{r.lineProg, r.pointProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := Palette.Sky.Floats()
	gl.ClearColor(cr, cg, cb, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetStatic uploads the never-changing part of the scene.
func (r *Renderer) SetStatic(b *view.Batch) {
	r.staticLines.upload(b.Lines, gl.STATIC_DRAW)
	r.staticLines.count = int32(len(b.Lines) / view.LineStride)
	r.staticPoints.upload(b.Points, gl.STATIC_DRAW)
	r.staticPoints.count = int32(len(b.Points) / view.PointStride)
	gl.BindVertexArray(0)
}
