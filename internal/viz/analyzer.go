package viz

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// PlaybackClock is the read-only view of an in-progress playback, provided by
// the audio collaborator. All four values are cheap reads.
type PlaybackClock interface {
	IsPlaying() bool
	ElapsedSeconds() float64
	SampleRate() int
	DurationSeconds() float64
}

// WaveformSource exposes the immutable mono sample buffer. The buffer is
// published once at load time and never mutated afterward.
type WaveformSource interface {
	Samples() []float64
}

// AudioSource is what the analyzer consumes each frame.
type AudioSource interface {
	PlaybackClock
	WaveformSource
}

// FeatureFrame is the per-frame audio feature vector. Spectrum is nil when
// there is no signal (not playing, playback finished, or the analysis window
// was too short); RMS is always defined. The spectrum slice aliases an
// analyzer-owned buffer and is valid until the next Analyze call.
type FeatureFrame struct {
	RMS      float64
	Spectrum []float64 // peak-normalized magnitudes, FFTSize/2+1 bins
}

// Analyzer computes a windowed RMS and a peak-normalized magnitude spectrum
// around the current playhead. All buffers are allocated once; Analyze does
// no per-call allocation and is cheap enough to run every frame.
type Analyzer struct {
	plan *algofft.Plan[complex128]

	in   []complex128
	out  []complex128
	re   []float64
	im   []float64
	mags []float64

	hann     []float64
	windowed []float64
}

func NewAnalyzer() (*Analyzer, error) {
	plan, err := algofft.NewPlan64(FFTSize)
	if err != nil {
		return nil, fmt.Errorf("analyzer fft plan: %w", err)
	}
	bins := FFTSize/2 + 1
	return &Analyzer{
		plan: plan,
		in:   make([]complex128, FFTSize),
		out:  make([]complex128, FFTSize),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
		mags: make([]float64, bins),
	}, nil
}

// Analyze computes the feature frame for the source's current playhead.
// It is total: every input yields a defined, finite result.
func (a *Analyzer) Analyze(src AudioSource) FeatureFrame {
	if src == nil || !src.IsPlaying() {
		return FeatureFrame{}
	}
	elapsed := src.ElapsedSeconds()
	if elapsed < 0 || elapsed > src.DurationSeconds() {
		// Playback finished (or not meaningfully started); the visual keeps
		// running on silence.
		return FeatureFrame{}
	}

	samples := src.Samples()
	sr := src.SampleRate()
	if len(samples) == 0 || sr <= 0 {
		return FeatureFrame{}
	}

	// Symmetric window centered on the playhead, clipped to buffer bounds.
	idx := int(elapsed * float64(sr))
	half := int(float64(sr)*AnalysisWindowS) / 2
	i0 := clamp(idx-half, 0, len(samples))
	i1 := clamp(idx+half, 0, len(samples))
	if i1 <= i0 {
		return FeatureFrame{}
	}
	window := samples[i0:i1]

	sumSq := 0.0
	for _, s := range window {
		sumSq += s * s
	}
	rms := math.Sqrt(sumSq / float64(len(window)))
	if math.IsNaN(rms) || math.IsInf(rms, 0) {
		rms = 0
	}

	if len(window) < MinWindowSamples {
		return FeatureFrame{RMS: rms}
	}

	return FeatureFrame{RMS: rms, Spectrum: a.spectrum(window)}
}

// spectrum computes the peak-normalized one-sided magnitude spectrum of the
// Hann-tapered window, zero-padded to FFTSize.
func (a *Analyzer) spectrum(window []float64) []float64 {
	n := len(window)
	if n > FFTSize {
		n = FFTSize
		window = window[:n]
	}
	a.ensureHann(n)

	copy(a.windowed, window)
	vecmath.MulBlockInPlace(a.windowed, a.hann)

	for i := 0; i < n; i++ {
		a.in[i] = complex(a.windowed[i], 0)
	}
	for i := n; i < FFTSize; i++ {
		a.in[i] = 0
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		// The plan size never changes after construction, so this cannot
		// happen in practice; degrade to no-spectrum rather than NaN.
		return nil
	}

	for i := range a.mags {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}
	vecmath.Magnitude(a.mags, a.re, a.im)

	peak := 0.0
	for _, m := range a.mags {
		if m > peak {
			peak = m
		}
	}
	inv := 1.0 / (peak + NormEpsilon)
	for i := range a.mags {
		a.mags[i] = clamp01(a.mags[i] * inv)
	}
	return a.mags
}

// ensureHann regenerates the taper only when the window length changes,
// which happens just at buffer edges.
func (a *Analyzer) ensureHann(n int) {
	if len(a.hann) == n {
		return
	}
	a.hann = make([]float64, n)
	a.windowed = make([]float64, n)
	if n == 1 {
		a.hann[0] = 1
		return
	}
	for i := range a.hann {
		a.hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
}

// BinFrequency returns the center frequency in Hz of a spectrum bin.
func BinFrequency(bin, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / FFTSize
}
