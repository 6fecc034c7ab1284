package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidStyle(t *testing.T, st StyleConfig) {
	t.Helper()
	for _, c := range []RGB{st.Primary, st.Glow, st.Accent} {
		for _, v := range []float64{c.R, c.G, c.B} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Greater(t, st.GlowAlpha, 0.0)
	assert.Greater(t, st.CoreAlpha, 0.0)
	assert.Greater(t, st.GlowSizeMul, 1.0)
	assert.Greater(t, st.ScanSpeed, 0.0)
}

func TestStyleForAllStatuses(t *testing.T) {
	statuses := []Status{StatusIdle, StatusListening, StatusProcessing, StatusPlayingAudio}
	for _, s := range statuses {
		t.Run(s.String(), func(t *testing.T) {
			assertValidStyle(t, StyleFor(s))
		})
	}

	// idle is the cool palette, listening the warm one
	assert.Greater(t, StyleFor(StatusIdle).Primary.B, StyleFor(StatusIdle).Primary.R)
	assert.Greater(t, StyleFor(StatusListening).Primary.R, StyleFor(StatusListening).Primary.B)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "playing", StatusPlayingAudio.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStyleBlendEndpoints(t *testing.T) {
	b := StyleBlend{From: StyleFor(StatusIdle), To: StyleFor(StatusIdle)}
	b.Retarget(StatusListening, 10, 0.6)

	require.Equal(t, StyleFor(StatusIdle), b.At(10))
	require.Equal(t, StyleFor(StatusListening), b.At(10.6))
	require.Equal(t, StyleFor(StatusListening), b.At(100))
}

func TestStyleBlendMidpointIsMixed(t *testing.T) {
	b := StyleBlend{From: StyleFor(StatusIdle), To: StyleFor(StatusIdle)}
	b.Retarget(StatusListening, 0, 1.0)

	mid := b.At(0.5)
	assertValidStyle(t, mid)

	from := StyleFor(StatusIdle).Primary.R
	to := StyleFor(StatusListening).Primary.R
	assert.Greater(t, mid.Primary.R, from)
	assert.Less(t, mid.Primary.R, to)
}

func TestStyleBlendRetargetMidFlight(t *testing.T) {
	b := StyleBlend{From: StyleFor(StatusIdle), To: StyleFor(StatusIdle)}
	b.Retarget(StatusListening, 0, 1.0)

	// interrupt halfway; the new blend starts from the current mix
	mid := b.At(0.5)
	b.Retarget(StatusProcessing, 0.5, 1.0)
	assert.Equal(t, mid, b.At(0.5), "no visual jump on retarget")
	assert.Equal(t, StyleFor(StatusProcessing), b.At(2.0))
}

func TestStyleBlendZeroDuration(t *testing.T) {
	b := StyleBlend{From: StyleFor(StatusIdle), To: StyleFor(StatusProcessing)}
	assert.Equal(t, StyleFor(StatusProcessing), b.At(0))
}
