package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	samples []float64
	rate    int
	elapsed float64
	playing bool
}

func (s *stubSource) Samples() []float64      { return s.samples }
func (s *stubSource) SampleRate() int         { return s.rate }
func (s *stubSource) IsPlaying() bool         { return s.playing }
func (s *stubSource) ElapsedSeconds() float64 { return s.elapsed }
func (s *stubSource) DurationSeconds() float64 {
	if s.rate <= 0 {
		return 0
	}
	return float64(len(s.samples)) / float64(s.rate)
}

func sineSamples(freq float64, rate int, seconds float64) []float64 {
	n := int(float64(rate) * seconds)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}
	return out
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	require.NoError(t, err)
	return a
}

func TestAnalyzeZeroFrameCases(t *testing.T) {
	a := newTestAnalyzer(t)
	buf := sineSamples(440, 24000, 1.0)

	tests := []struct {
		name string
		src  AudioSource
	}{
		{"nil source", nil},
		{"not playing", &stubSource{samples: buf, rate: 24000, elapsed: 0.5}},
		{"negative elapsed", &stubSource{samples: buf, rate: 24000, elapsed: -0.1, playing: true}},
		{"past the end", &stubSource{samples: buf, rate: 24000, elapsed: 2.0, playing: true}},
		{"empty buffer", &stubSource{rate: 24000, elapsed: 0, playing: true}},
		{"bad rate", &stubSource{samples: buf, rate: 0, elapsed: 0.5, playing: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := a.Analyze(tc.src)
			assert.Zero(t, frame.RMS)
			assert.Nil(t, frame.Spectrum)
		})
	}
}

func TestAnalyzeSilence(t *testing.T) {
	a := newTestAnalyzer(t)
	src := &stubSource{samples: make([]float64, 24000), rate: 24000, elapsed: 0.5, playing: true}

	frame := a.Analyze(src)
	assert.Zero(t, frame.RMS)
	require.NotNil(t, frame.Spectrum)
	for _, m := range frame.Spectrum {
		assert.Zero(t, m)
	}
}

func TestAnalyzeRMSLevel(t *testing.T) {
	a := newTestAnalyzer(t)
	samples := make([]float64, 24000)
	for i := range samples {
		samples[i] = 0.5
	}
	src := &stubSource{samples: samples, rate: 24000, elapsed: 0.5, playing: true}

	frame := a.Analyze(src)
	assert.InDelta(t, 0.5, frame.RMS, 1e-9)
}

func TestAnalyzeSinePeakBin(t *testing.T) {
	a := newTestAnalyzer(t)
	const (
		rate = 24000
		freq = 440.0
	)
	src := &stubSource{
		samples: sineSamples(freq, rate, 1.0),
		rate:    rate,
		elapsed: 0.5,
		playing: true,
	}

	frame := a.Analyze(src)
	require.NotNil(t, frame.Spectrum)
	require.Len(t, frame.Spectrum, FFTSize/2+1)

	peakBin := 0
	for i, m := range frame.Spectrum {
		if m > frame.Spectrum[peakBin] {
			peakBin = i
		}
	}
	assert.InDelta(t, 1.0, frame.Spectrum[peakBin], 1e-6, "peak bin is normalized to 1")

	binWidth := float64(rate) / FFTSize
	assert.InDelta(t, freq, BinFrequency(peakBin, rate), binWidth,
		"peak must land within one bin of the tone")

	// sine RMS is 1/sqrt(2); the 20 ms window holds several full cycles
	assert.InDelta(t, 1.0/math.Sqrt2, frame.RMS, 0.05)
}

func TestAnalyzeBufferEdges(t *testing.T) {
	a := newTestAnalyzer(t)
	const rate = 24000
	samples := sineSamples(440, rate, 1.0)

	t.Run("start", func(t *testing.T) {
		src := &stubSource{samples: samples, rate: rate, elapsed: 0, playing: true}
		frame := a.Analyze(src)
		assert.False(t, math.IsNaN(frame.RMS))
		assert.NotNil(t, frame.Spectrum)
	})

	t.Run("end", func(t *testing.T) {
		src := &stubSource{samples: samples, rate: rate, elapsed: 1.0, playing: true}
		frame := a.Analyze(src)
		assert.False(t, math.IsNaN(frame.RMS))
	})

	t.Run("window below minimum skips spectrum", func(t *testing.T) {
		src := &stubSource{
			samples: []float64{0.5, 0.5, 0.5, 0.5},
			rate:    rate,
			elapsed: 0,
			playing: true,
		}
		frame := a.Analyze(src)
		assert.InDelta(t, 0.5, frame.RMS, 1e-9)
		assert.Nil(t, frame.Spectrum)
	})
}

func TestAnalyzeNonFiniteSamples(t *testing.T) {
	a := newTestAnalyzer(t)
	samples := make([]float64, 24000)
	samples[12000] = math.Inf(1)
	src := &stubSource{samples: samples, rate: 24000, elapsed: 0.5, playing: true}

	frame := a.Analyze(src)
	assert.Zero(t, frame.RMS)
	for _, m := range frame.Spectrum {
		assert.False(t, math.IsNaN(m))
		assert.GreaterOrEqual(t, m, 0.0)
		assert.LessOrEqual(t, m, 1.0)
	}
}

func TestAnalyzeReusesSpectrumBuffer(t *testing.T) {
	a := newTestAnalyzer(t)
	src := &stubSource{samples: sineSamples(440, 24000, 1.0), rate: 24000, elapsed: 0.5, playing: true}

	f1 := a.Analyze(src)
	require.NotNil(t, f1.Spectrum)
	f2 := a.Analyze(src)
	require.NotNil(t, f2.Spectrum)
	assert.Equal(t, &f1.Spectrum[0], &f2.Spectrum[0], "spectrum aliases one analyzer-owned buffer")
}

func TestBinFrequency(t *testing.T) {
	assert.Zero(t, BinFrequency(0, 24000))
	assert.InDelta(t, 12000, BinFrequency(FFTSize/2, 24000), 1e-9)
	assert.InDelta(t, float64(24000)/FFTSize, BinFrequency(1, 24000), 1e-9)
}
