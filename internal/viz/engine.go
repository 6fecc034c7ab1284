package viz

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// StatusBlendSeconds is the style transition length on a status change.
const StatusBlendSeconds = 0.6

// maxFrameDT guards animation against stalls (window drag, debugger).
const maxFrameDT = 0.1

// FrameBatches is one frame's worth of geometry, grouped by draw pass in
// back-to-front order. Point batches use PointStride, world lines LineStride,
// screen-space batches OverlayStride. All slices alias engine-owned buffers
// and are valid until the next RenderFrame call.
type FrameBatches struct {
	Background []float32 // screen tris, drawn first
	WorldLines []float32 // rings and floor grid, depth-tested
	Glow       []float32 // additive point pass
	Core       []float32 // alpha point pass, depth-tested
	Particles  []float32 // additive point pass
	HUDLines   []float32 // screen lines
	Vignette   []float32 // screen tris, drawn last

	Style       StyleConfig
	RotationDeg float64 // model spin, applied by the renderer's model matrix
	FPS         float64
}

// Engine ties the model, analyzer, composer, particles, and style together.
// It owns all animation state; the renderer only draws what RenderFrame
// hands back. Not safe for concurrent use; drive it from the render loop.
type Engine struct {
	model    *SphereModel
	coreIdx  []int
	glowIdx  []int
	composer *Composer
	anim     AnimationState

	analyzer  *Analyzer
	source    AudioSource
	particles *ParticleSystem

	clock   *Clock
	lastNow float64
	started bool

	status Status
	blend  StyleBlend

	batches  FrameBatches
	vignette []float32

	log *logrus.Entry
}

func NewEngine(seed uint64, clock *Clock, log *logrus.Logger) (*Engine, error) {
	if clock == nil {
		clock = NewClock()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	analyzer, err := NewAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("engine analyzer: %w", err)
	}

	model := NewSphereModel(seed)
	e := &Engine{
		model:     model,
		coreIdx:   model.StridedIndices(StrideLatCore, StrideLonCore),
		glowIdx:   model.StridedIndices(StrideLatGlow, StrideLonGlow),
		composer:  NewComposer(model),
		analyzer:  analyzer,
		particles: NewParticleSystem(MaxTrailParticles, splitmix64(seed^0x9d5c)),
		clock:     clock,
		status:    StatusIdle,
		vignette:  AppendVignette(nil),
		log:       log.WithField("component", "engine"),
	}
	e.blend = StyleBlend{From: StyleFor(StatusIdle), To: StyleFor(StatusIdle)}

	e.log.WithFields(logrus.Fields{
		"points": len(model.Points),
		"core":   len(e.coreIdx),
		"glow":   len(e.glowIdx),
		"seed":   seed,
	}).Info("engine ready")
	return e, nil
}

// SetSource swaps the audio source the analyzer reads each frame.
// A nil source means silence.
func (e *Engine) SetSource(src AudioSource) {
	e.source = src
}

func (e *Engine) Status() Status { return e.status }

// NotifyStatus records a new application status and starts a smooth style
// transition toward its look. Calling with the current status is a no-op.
func (e *Engine) NotifyStatus(s Status) {
	if s == e.status {
		return
	}
	e.log.WithFields(logrus.Fields{
		"from": e.status.String(),
		"to":   s.String(),
	}).Info("status change")
	e.status = s
	e.blend.Retarget(s, e.clock.Now(), StatusBlendSeconds)
}

// RenderFrame advances the animation by the elapsed wall time and rebuilds
// every geometry batch. The returned batches are valid until the next call.
func (e *Engine) RenderFrame() *FrameBatches {
	now := e.clock.Now()
	dt := now - e.lastNow
	if !e.started || dt < 0 {
		dt = 0
		e.started = true
	}
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	e.lastNow = now

	frame := e.analyzer.Analyze(e.source)
	style := e.blend.At(now)

	e.anim.Update(dt, frame)
	e.particles.SpawnFromLoudness(frame.RMS, dt)
	e.particles.Update(dt)

	b := &e.batches
	b.Style = style
	b.RotationDeg = e.anim.RotationDeg
	b.FPS = e.anim.FPS

	b.Background = AppendBackground(b.Background[:0], style)
	b.WorldLines = AppendOrbitRings(b.WorldLines[:0], now, style)
	b.WorldLines = AppendFloorGrid(b.WorldLines, style)

	// glow pulses gently with the style's own rhythm
	glowAlpha := style.GlowAlpha * (0.85 + 0.15*math.Sin(now*style.PulseSpeed*2*math.Pi))
	b.Glow = e.composer.Compose(b.Glow[:0], PassConfig{
		Indices: e.glowIdx,
		Tint:    style.Glow,
		Alpha:   glowAlpha,
		SizeMul: style.GlowSizeMul,
	}, frame, now, e.anim.RotationDeg, style)

	b.Core = e.composer.Compose(b.Core[:0], PassConfig{
		Indices:      e.coreIdx,
		Tint:         style.Primary,
		Alpha:        style.CoreAlpha,
		SizeMul:      1.0,
		DepthTest:    true,
		Fresnel:      true,
		Scan:         true,
		BackfaceFade: true,
	}, frame, now, e.anim.RotationDeg, style)

	b.Particles = e.particles.RenderData(b.Particles[:0])

	b.HUDLines = AppendHUDRing(b.HUDLines[:0], now, frame.RMS, style)
	b.HUDLines = AppendReticle(b.HUDLines, style)
	b.Vignette = e.vignette

	return b
}
