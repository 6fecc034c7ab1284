package viz

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// maxPointVerts bounds one streaming upload: the full grid plus particles
// and trails with headroom.
const maxPointVerts = LatSteps*LonSteps + MaxTrailParticles*(TrailMaxPoints+1) + 1024

const maxLineVerts = 16384

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer owns the GL programs and streaming buffers. It draws exactly what
// a FrameBatches holds and keeps no animation state.
type Renderer struct {
	// Point sprite programs, sharing one VAO layout.
	coreProg uint32
	glowProg uint32
	pointVAO uint32
	pointVBO uint32

	coreUModel      int32
	coreUViewProj   int32
	coreUPointScale int32
	glowUModel      int32
	glowUViewProj   int32
	glowUPointScale int32

	// World-space line program.
	lineProg uint32
	lineVAO  uint32
	lineVBO  uint32
	lineUMVP int32

	// Screen-space overlay program (lines and triangles).
	screenProg   uint32
	screenVAO    uint32
	screenVBO    uint32
	screenUScale int32
}

func NewRenderer() (*Renderer, error) {
	coreProg, err := linkProgram(pointVertSrc, coreFragSrc)
	if err != nil {
		return nil, fmt.Errorf("core program: %w", err)
	}
	glowProg, err := linkProgram(pointVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(coreProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(coreProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("line program: %w", err)
	}
	screenProg, err := linkProgram(screenVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(coreProg)
		gl.DeleteProgram(glowProg)
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("screen program: %w", err)
	}

	r := &Renderer{
		coreProg:   coreProg,
		glowProg:   glowProg,
		lineProg:   lineProg,
		screenProg: screenProg,
	}

	// Point VAO/VBO: streaming buffer, PointStride floats per vertex.
	var pVAO, pVBO uint32
	gl.GenVertexArrays(1, &pVAO)
	gl.GenBuffers(1, &pVBO)
	gl.BindVertexArray(pVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, pVBO)

	pStride := int32(PointStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxPointVerts*int(pStride), nil, gl.STREAM_DRAW)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, pStride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, pStride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, pStride, glOffset(4*4))
	r.pointVAO = pVAO
	r.pointVBO = pVBO

	gl.UseProgram(coreProg)
	r.coreUModel = gl.GetUniformLocation(coreProg, gl.Str("uModel\x00"))
	r.coreUViewProj = gl.GetUniformLocation(coreProg, gl.Str("uViewProj\x00"))
	r.coreUPointScale = gl.GetUniformLocation(coreProg, gl.Str("uPointScale\x00"))

	gl.UseProgram(glowProg)
	r.glowUModel = gl.GetUniformLocation(glowProg, gl.Str("uModel\x00"))
	r.glowUViewProj = gl.GetUniformLocation(glowProg, gl.Str("uViewProj\x00"))
	r.glowUPointScale = gl.GetUniformLocation(glowProg, gl.Str("uPointScale\x00"))

	// Line VAO/VBO: streaming buffer, LineStride floats per vertex.
	var lVAO, lVBO uint32
	gl.GenVertexArrays(1, &lVAO)
	gl.GenBuffers(1, &lVBO)
	gl.BindVertexArray(lVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, lVBO)

	lStride := int32(LineStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxLineVerts*int(lStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, lStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, lStride, glOffset(3*4))
	r.lineVAO = lVAO
	r.lineVBO = lVBO

	gl.UseProgram(lineProg)
	r.lineUMVP = gl.GetUniformLocation(lineProg, gl.Str("uMVP\x00"))

	// Screen VAO/VBO: OverlayStride floats per vertex.
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	sStride := int32(OverlayStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxLineVerts*int(sStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, sStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, sStride, glOffset(2*4))
	r.screenVAO = sVAO
	r.screenVBO = sVBO

	gl.UseProgram(screenProg)
	r.screenUScale = gl.GetUniformLocation(screenProg, gl.Str("uScale\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.pointVBO, r.lineVBO, r.screenVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.pointVAO, r.lineVAO, r.screenVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.coreProg, r.glowProg, r.lineProg, r.screenProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(bg RGB, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawPoints streams a point batch and draws it. additive selects the glow
// program with ONE,ONE blending; otherwise the core program alpha-blends.
func (r *Renderer) DrawPoints(buf []float32, model, viewProj Mat4, pointScale float32, additive, depthTest bool) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / PointStride
	if count > maxPointVerts {
		count = maxPointVerts
	}

	prog := r.coreProg
	uModel, uVP, uScale := r.coreUModel, r.coreUViewProj, r.coreUPointScale
	if additive {
		prog = r.glowProg
		uModel, uVP, uScale = r.glowUModel, r.glowUViewProj, r.glowUPointScale
	}
	gl.UseProgram(prog)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)

	gl.UniformMatrix4fv(uModel, 1, false, &model[0])
	gl.UniformMatrix4fv(uVP, 1, false, &viewProj[0])
	gl.Uniform1f(uScale, pointScale)

	if depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*PointStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
}

// DrawLines streams world-space line segments.
func (r *Renderer) DrawLines(buf []float32, mvp Mat4) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / LineStride
	if count > maxLineVerts {
		count = maxLineVerts
	}
	gl.UseProgram(r.lineProg)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.UniformMatrix4fv(r.lineUMVP, 1, false, &mvp[0])

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*LineStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(count))
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawScreen(buf []float32, mode uint32, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / OverlayStride
	if count > maxLineVerts {
		count = maxLineVerts
	}
	gl.UseProgram(r.screenProg)
	gl.BindVertexArray(r.screenVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.screenVBO)

	// normalize to the shorter axis so circles stay round
	min := float32(fbW)
	if fbH < fbW {
		min = float32(fbH)
	}
	gl.Uniform2f(r.screenUScale, min/float32(fbW), min/float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*OverlayStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawScreenLines draws 2D overlay line segments (HUD ring, reticle).
func (r *Renderer) DrawScreenLines(buf []float32, fbW, fbH int) {
	r.drawScreen(buf, gl.LINES, fbW, fbH)
}

// DrawScreenTris draws 2D overlay triangles (background, vignette).
func (r *Renderer) DrawScreenTris(buf []float32, fbW, fbH int) {
	r.drawScreen(buf, gl.TRIANGLES, fbW, fbH)
}

// DrawFrame renders a full FrameBatches back to front. Only the sphere point
// passes carry the model spin; rings, grid, and particles live in world space.
func (r *Renderer) DrawFrame(b *FrameBatches, fbW, fbH int) {
	aspect := float64(fbW) / float64(fbH)
	proj := MatPerspective(FOVDegrees, aspect, 0.1, 100)
	view := MatMul(MatTranslate(0, 0, -CameraDist), MatRotateX(CameraTilt))
	viewProj := MatMul(proj, view)
	spin := MatRotateY(b.RotationDeg)

	// world size -> pixels at depth w, referenced to the default window height
	pointScale := float32(CameraDist) * float32(fbH) / float32(WindowHeight)

	r.BeginFrame(Palette.BgDark, fbW, fbH)
	r.DrawScreenTris(b.Background, fbW, fbH)
	r.DrawLines(b.WorldLines, viewProj)
	r.DrawPoints(b.Glow, spin, viewProj, pointScale, true, false)
	r.DrawPoints(b.Core, spin, viewProj, pointScale, false, true)
	r.DrawPoints(b.Particles, MatIdentity(), viewProj, pointScale, true, false)
	r.DrawScreenLines(b.HUDLines, fbW, fbH)
	r.DrawScreenTris(b.Vignette, fbW, fbH)
}
