package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereModelShape(t *testing.T) {
	m := NewSphereModel(1)
	require.Len(t, m.Points, (LatSteps+1)*LonSteps)

	for i := range m.Points {
		p := &m.Points[i]
		assert.InDelta(t, 1.0, p.Normal.Length(), 1e-12)
		assert.InDelta(t, BaseRadius, p.Position.Length(), 1e-12)
		assert.GreaterOrEqual(t, p.Sensitivity, 0.0)
		assert.Less(t, p.Sensitivity, 1.0)
		assert.GreaterOrEqual(t, p.BaseSize, PointBaseSize*0.9)
		assert.LessOrEqual(t, p.BaseSize, PointBaseSize*2.1)
	}

	// poles
	assert.InDelta(t, 1.0, m.Points[0].Normal.Y, 1e-12)
	assert.InDelta(t, -1.0, m.Points[len(m.Points)-1].Normal.Y, 1e-12)
}

func TestSphereModelDeterministic(t *testing.T) {
	a := NewSphereModel(42)
	b := NewSphereModel(42)
	c := NewSphereModel(43)

	require.Equal(t, len(a.Points), len(b.Points))
	for i := range a.Points {
		assert.Equal(t, a.Points[i], b.Points[i])
	}

	diff := false
	for i := range a.Points {
		if a.Points[i].Phase != c.Points[i].Phase {
			diff = true
			break
		}
	}
	assert.True(t, diff, "different seeds must produce different jitter")
}

func TestStridedIndices(t *testing.T) {
	m := NewSphereModel(7)

	tests := []struct {
		name                 string
		strideLat, strideLon int
	}{
		{"core", StrideLatCore, StrideLonCore},
		{"glow", StrideLatGlow, StrideLonGlow},
		{"full", 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx := m.StridedIndices(tc.strideLat, tc.strideLon)
			require.NotEmpty(t, idx)
			assert.LessOrEqual(t, len(idx), len(m.Points))
			seen := make(map[int]bool, len(idx))
			for _, k := range idx {
				require.GreaterOrEqual(t, k, 0)
				require.Less(t, k, len(m.Points))
				assert.False(t, seen[k], "index %d repeated", k)
				seen[k] = true
			}
		})
	}

	full := m.StridedIndices(1, 1)
	assert.Len(t, full, len(m.Points))
}

func TestAvgBaseSize(t *testing.T) {
	m := NewSphereModel(3)
	avg := m.AvgBaseSize()
	assert.Greater(t, avg, PointBaseSize*0.9)
	assert.Less(t, avg, PointBaseSize*2.1)
	assert.False(t, math.IsNaN(avg))

	empty := &SphereModel{}
	assert.Equal(t, float64(PointBaseSize), empty.AvgBaseSize())
}
