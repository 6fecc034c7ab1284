package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkVertexChannels(t *testing.T, buf []float32, stride, colorOff int) {
	t.Helper()
	require.Zero(t, len(buf)%stride)
	for i := 0; i < len(buf); i += stride {
		for ch := colorOff; ch < stride; ch++ {
			v := float64(buf[i+ch])
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestOrbitRings(t *testing.T) {
	style := StyleFor(StatusIdle)
	buf := AppendOrbitRings(nil, 1.5, style)
	require.NotEmpty(t, buf)
	checkVertexChannels(t, buf, LineStride, 3)

	// every vertex sits on one of the three ring radii
	for i := 0; i < len(buf); i += LineStride {
		v := Vec3{float64(buf[i]), float64(buf[i+1]), float64(buf[i+2])}
		d := v.Length()
		onRing := false
		for _, rr := range ringRadii {
			if math.Abs(d-BaseRadius*rr) < 1e-6 {
				onRing = true
			}
		}
		assert.True(t, onRing, "vertex radius %v", d)
	}

	// dashed: gaps mean fewer segments than a full circle per ring
	full := 3 * RingSegments * 2 * LineStride
	assert.Less(t, len(buf), full)

	// rings spin over time
	later := AppendOrbitRings(nil, 2.5, style)
	assert.NotEqual(t, buf[:3], later[:3])
}

func TestFloorGrid(t *testing.T) {
	buf := AppendFloorGrid(nil, StyleFor(StatusIdle))
	require.NotEmpty(t, buf)
	checkVertexChannels(t, buf, LineStride, 3)

	for i := 0; i < len(buf); i += LineStride {
		assert.InDelta(t, -BaseRadius-0.25, float64(buf[i+1]), 1e-9, "grid is flat")
	}
}

func TestHUDRingSweepFollowsLoudness(t *testing.T) {
	style := StyleFor(StatusListening)
	quiet := AppendHUDRing(nil, 3, 0, style)
	loud := AppendHUDRing(nil, 3, 1, style)
	checkVertexChannels(t, quiet, OverlayStride, 2)
	checkVertexChannels(t, loud, OverlayStride, 2)

	// same vertex count; the arc stretches, it does not add segments
	assert.Equal(t, len(quiet), len(loud))
}

func TestReticle(t *testing.T) {
	buf := AppendReticle(nil, StyleFor(StatusIdle))
	require.NotEmpty(t, buf)
	checkVertexChannels(t, buf, OverlayStride, 2)

	// everything stays near the center
	for i := 0; i < len(buf); i += OverlayStride {
		d := math.Hypot(float64(buf[i]), float64(buf[i+1]))
		assert.LessOrEqual(t, d, 0.15)
	}
}

func TestVignette(t *testing.T) {
	buf := AppendVignette(nil)
	require.NotEmpty(t, buf)
	require.Zero(t, len(buf)%(OverlayStride*3), "triangle list")

	transparent, dark := 0, 0
	for i := 0; i < len(buf); i += OverlayStride {
		switch a := buf[i+5]; {
		case a == 0:
			transparent++
		case a > 0:
			dark++
		}
	}
	assert.Greater(t, transparent, 0)
	assert.Greater(t, dark, 0)
}

func TestBackground(t *testing.T) {
	buf := AppendBackground(nil, StyleFor(StatusIdle))
	require.Len(t, buf, 6*OverlayStride, "two fullscreen triangles")
	checkVertexChannels(t, buf, OverlayStride, 2)
}
