package game

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"lunarfolio/internal/sim"
	"lunarfolio/internal/view"
)

// Font atlas layout: printable ASCII in a 32-column grid of 7x13 cells.
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 32
	FontRows   = 3
	FontAtlasW = FontCols * FontCellW
	FontAtlasH = FontRows * FontCellH

	solidGlyph = 127 // fully covered cell, used for backgrounds
	wrapWidth  = 46  // characters per panel line
)

// buildFontAtlas rasterises basicfont into a coverage image.
func buildFontAtlas() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, FontAtlasW, FontAtlasH))
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for c := 32; c < 127; c++ {
		i := c - 32
		x, y := (i%FontCols)*FontCellW, (i/FontCols)*FontCellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(rune(c)))
	}
	i := solidGlyph - 32
	x, y := (i%FontCols)*FontCellW, (i/FontCols)*FontCellH
	for py := y + 1; py < y+FontCellH-1; py++ {
		for px := x + 1; px < x+FontCellW-1; px++ {
			img.Pix[py*img.Stride+px] = 0xff
		}
	}
	return img
}

// InitFont builds the font atlas and sets up the text rendering pipeline.
func (r *Renderer) InitFont() error {
	img := buildFontAtlas()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8,
		FontAtlasW, FontAtlasH, 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 512*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// quad queues one atlas cell stretched over w x h pixels.
func (r *Renderer) quad(c int, sx, sy, w, h float32, col RGB, alpha float32) {
	i := c - 32
	column, row := i%FontCols, i/FontCols
	u0 := float32(column*FontCellW) / float32(FontAtlasW)
	v0 := float32(row*FontCellH) / float32(FontAtlasH)
	u1 := float32((column+1)*FontCellW) / float32(FontAtlasW)
	v1 := float32((row+1)*FontCellH) / float32(FontAtlasH)
	cr, cg, cb := col.Floats()

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, alpha,
		sx+w, sy, u1, v0, cr, cg, cb, alpha,
		sx, sy+h, u0, v1, cr, cg, cb, alpha,
		sx+w, sy, u1, v0, cr, cg, cb, alpha,
		sx+w, sy+h, u1, v1, cr, cg, cb, alpha,
		sx, sy+h, u0, v1, cr, cg, cb, alpha,
	)
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB, alpha float32) {
	if ch <= 32 || ch > 126 {
		return
	}
	r.quad(int(ch), sx, sy, FontCellW*scale, FontCellH*scale, col, alpha)
}

// DrawRect queues a filled rectangle.
func (r *Renderer) DrawRect(sx, sy, w, h float32, col RGB, alpha float32) {
	// The solid cell has a one-pixel transparent border; overscan hides it.
	bx, by := w/float32(FontCellW-2), h/float32(FontCellH-2)
	r.quad(solidGlyph, sx-bx, sy-by, w+2*bx, h+2*by, col, alpha)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB, alpha float32) {
	advance := float32(FontCellW) * scale
	lineAdvance := float32(FontCellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col, alpha)
		x += advance
	}
}

// DrawShadowString draws text over a one-pixel drop shadow.
func (r *Renderer) DrawShadowString(text string, sx, sy int, scale float32, col RGB) {
	off := int(math.Max(1, float64(scale)))
	r.DrawString(text, sx+off, sy+off, scale, Palette.HUDShadow, 1)
	r.DrawString(text, sx, sy, scale, col, 1)
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			if lineLen > maxLineLen {
				maxLineLen = lineLen
			}
			lineLen = 0
			continue
		}
		lineLen++
	}
	if lineLen > maxLineLen {
		maxLineLen = lineLen
	}
	return int(float32(maxLineLen*FontCellW) * scale)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}

// uiScale picks an integer text scale for the framebuffer height.
func uiScale(fbH int) float32 {
	return float32(math.Max(1, math.Floor(float64(fbH)/540)))
}

// DrawLabels renders hologram text as screen-aligned cards anchored above
// each panel. Cards fade with panel opacity.
func (r *Renderer) DrawLabels(cam *Camera, labels []view.Label, fbW, fbH int) {
	scale := uiScale(fbH)
	lineH := float32(FontCellH+2) * scale
	for _, l := range labels {
		x, y, _, ok := cam.Project(l.Pos)
		if !ok || x < -200 || x > float32(fbW)+200 || y < -200 || y > float32(fbH)+200 {
			continue
		}
		var lines []string
		for _, s := range l.Lines {
			lines = append(lines, view.Wrap(s, wrapWidth)...)
		}
		w := float32(TextWidth(l.Title, scale))
		for _, s := range lines {
			w = float32(math.Max(float64(w), float64(TextWidth(s, scale))))
		}
		h := lineH * float32(len(lines)+1)
		pad := 6 * scale
		left, top := x-w/2, y-h

		r.DrawRect(left-pad, top-pad, w+2*pad, h+2*pad, Palette.PanelBack, 0.75*l.Alpha)
		r.DrawRect(left-pad, top-pad, w+2*pad, 2*scale, Hex(l.Color.RGB()), l.Alpha)
		r.DrawString(l.Title, int(left), int(top), scale, Palette.PanelTitle, l.Alpha)
		for i, s := range lines {
			r.DrawString(s, int(left), int(top+lineH*float32(i+1)), scale, Palette.PanelText, l.Alpha)
		}
	}
}

// RenderHUD draws the instruction block and the status line in screen space.
func RenderHUD(r *Renderer, w *sim.World, showHelp bool, fbW, fbH int) {
	scale := uiScale(fbH)
	lineH := int(float32(FontCellH+3) * scale)
	x, y := int(12*scale), int(12*scale)

	if showHelp {
		for _, line := range view.HelpText(w) {
			r.DrawShadowString(line, x, y, scale, Palette.HUDText)
			y += lineH
		}
		r.DrawShadowString("F1 hides this help, drag to orbit, scroll to zoom", x, y, scale, Palette.HUDAccent)
	} else {
		r.DrawShadowString("F1 for help", x, y, scale, Palette.HUDAccent)
	}

	b := w.Active()
	status := fmt.Sprintf("%s  camera:%s  x:%.1f z:%.1f", w.State, w.Camera.Mode, b.Position.X, b.Position.Z)
	r.DrawShadowString(status, x, fbH-lineH-int(8*scale), scale, Palette.HUDText)
	r.FlushText(fbW, fbH)
}
