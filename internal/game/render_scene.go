package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"lunarfolio/internal/view"
)

// DrawScene renders the cached static geometry, then the per-frame batch.
// Glow goes last, additive with depth writes off.
func (r *Renderer) DrawScene(cam *Camera, dyn *view.Batch) {
	vp := cam.ViewProj
	ppu := cam.PixelsPerUnit()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	gl.UseProgram(r.lineProg)
	gl.UniformMatrix4fv(r.lineUViewProj, 1, false, &vp[0])
	if r.staticLines.count > 0 {
		gl.BindVertexArray(r.staticLines.vao)
		gl.DrawArrays(gl.LINES, 0, r.staticLines.count)
	}
	if n := len(dyn.Lines) / view.LineStride; n > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		r.lines.upload(dyn.Lines, gl.STREAM_DRAW)
		gl.DrawArrays(gl.LINES, 0, int32(n))
		gl.Disable(gl.BLEND)
	}

	gl.UseProgram(r.pointProg)
	gl.UniformMatrix4fv(r.pointUViewProj, 1, false, &vp[0])
	gl.Uniform1f(r.pointUPPU, ppu)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if r.staticPoints.count > 0 {
		gl.BindVertexArray(r.staticPoints.vao)
		gl.DrawArrays(gl.POINTS, 0, r.staticPoints.count)
	}
	if n := len(dyn.Points) / view.PointStride; n > 0 {
		r.points.upload(dyn.Points, gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(n))
	}

	if n := len(dyn.Glow) / view.PointStride; n > 0 {
		gl.UseProgram(r.glowProg)
		gl.UniformMatrix4fv(r.glowUViewProj, 1, false, &vp[0])
		gl.Uniform1f(r.glowUPPU, ppu)
		gl.BlendFunc(gl.ONE, gl.ONE)
		gl.DepthMask(false)
		r.glow.upload(dyn.Glow, gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(n))
		gl.DepthMask(true)
	}

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
}
