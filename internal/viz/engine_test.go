package viz

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, now *float64) *Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := NewManualClock(func() float64 { return *now })
	e, err := NewEngine(12345, clock, log)
	require.NoError(t, err)
	return e
}

func TestEngineRenderFrameSilent(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)

	b := e.RenderFrame()
	require.NotNil(t, b)

	assert.NotEmpty(t, b.Background)
	assert.NotEmpty(t, b.WorldLines)
	assert.NotEmpty(t, b.Glow)
	assert.NotEmpty(t, b.Core)
	assert.NotEmpty(t, b.HUDLines)
	assert.NotEmpty(t, b.Vignette)
	assert.Empty(t, b.Particles, "silence spawns nothing")

	assert.Zero(t, len(b.Glow)%PointStride)
	assert.Zero(t, len(b.Core)%PointStride)
	assert.Zero(t, len(b.WorldLines)%LineStride)
	assert.Zero(t, len(b.HUDLines)%OverlayStride)
}

func TestEngineBuffersReused(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)

	b1 := e.RenderFrame()
	core1 := &b1.Core[0]
	now += 1.0 / 60
	b2 := e.RenderFrame()
	assert.Equal(t, core1, &b2.Core[0], "core batch reuses its buffer")
}

func TestEngineRotationAdvancesWithAudio(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)
	e.SetSource(&stubSource{
		samples: sineSamples(440, 24000, 10),
		rate:    24000,
		elapsed: 1,
		playing: true,
	})

	e.RenderFrame()
	var prev float64
	for i := 0; i < 10; i++ {
		now += 1.0 / 60
		b := e.RenderFrame()
		assert.Greater(t, b.RotationDeg, prev)
		prev = b.RotationDeg
	}
}

func TestEngineParticlesSpawnOnLoudAudio(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)
	loud := make([]float64, 24000*5)
	for i := range loud {
		loud[i] = 0.8
	}
	e.SetSource(&stubSource{samples: loud, rate: 24000, elapsed: 1, playing: true})

	e.RenderFrame()
	for i := 0; i < 120; i++ {
		now += 1.0 / 60
		e.RenderFrame()
	}
	assert.NotEmpty(t, e.particles.P)
}

func TestEngineNotifyStatus(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)

	idle := e.RenderFrame().Style
	e.NotifyStatus(StatusListening)
	assert.Equal(t, StatusListening, e.Status())

	// mid-transition the style is neither endpoint
	now += StatusBlendSeconds / 2
	mid := e.RenderFrame().Style
	assert.NotEqual(t, idle.Primary, mid.Primary)
	assert.NotEqual(t, StyleFor(StatusListening).Primary, mid.Primary)

	now += StatusBlendSeconds
	done := e.RenderFrame().Style
	assert.Equal(t, StyleFor(StatusListening).Primary, done.Primary)

	// repeating the current status does not restart the blend
	e.NotifyStatus(StatusListening)
	assert.Equal(t, done, e.RenderFrame().Style)
}

func TestEngineFrameDTClamped(t *testing.T) {
	now := 0.0
	e := newTestEngine(t, &now)
	e.SetSource(&stubSource{
		samples: sineSamples(200, 24000, 100),
		rate:    24000,
		elapsed: 1,
		playing: true,
	})

	e.RenderFrame()
	before := e.anim.RotationDeg
	now += 30 // a long stall
	b := e.RenderFrame()
	assert.LessOrEqual(t, b.RotationDeg-before, RotationFrameCap+1e-9)
}
