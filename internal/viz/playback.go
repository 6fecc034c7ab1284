package viz

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"
)

// Device output format. 0 bit depth selects oto.FormatFloat32LE.
const (
	deviceChannels = 2
	deviceBitDepth = 0
)

// audioDevice wraps the process-wide oto context. oto allows a single
// context per process, created at a fixed sample rate; tracks with other
// rates are resampled on the fly while streaming.
type audioDevice struct {
	ctx        *oto.Context
	ready      chan struct{}
	sampleRate int
}

var (
	device   *audioDevice
	deviceMu sync.Mutex
)

// openDevice initializes the shared output context on first use.
func openDevice(sampleRate int) (*audioDevice, error) {
	deviceMu.Lock()
	defer deviceMu.Unlock()
	if device != nil {
		return device, nil
	}
	ctx, ready, err := oto.NewContext(sampleRate, deviceChannels, deviceBitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	device = &audioDevice{ctx: ctx, ready: ready, sampleRate: sampleRate}
	return device, nil
}

// Track owns one decoded waveform and its playback state. The sample buffer
// is immutable after construction; startTime is written by Play/Stop and read
// by the analyzer, guarded by mu.
type Track struct {
	samples    []float64 // mono, [-1,1]
	sampleRate int

	mu        sync.Mutex
	startTime time.Time
	playing   bool
	player    oto.Player

	log *logrus.Entry
}

// LoadTrack decodes an audio file (wav or mp3 by extension) and downmixes it
// to mono. Decode failures surface here, at load time; they never reach the
// per-frame path.
func LoadTrack(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	samples := make([]float64, 0, streamer.Len())
	buf := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			samples = append(samples, (buf[i][0]+buf[i][1])*0.5)
		}
		if !ok {
			break
		}
	}

	t := NewTrackFromBuffer(samples, int(format.SampleRate))
	t.log.WithFields(logrus.Fields{
		"path":     path,
		"samples":  len(samples),
		"rate":     int(format.SampleRate),
		"duration": t.DurationSeconds(),
	}).Info("track loaded")
	return t, nil
}

// NewTrackFromBuffer wraps an already-decoded mono buffer.
func NewTrackFromBuffer(samples []float64, sampleRate int) *Track {
	if sampleRate <= 0 {
		sampleRate = 24000
	}
	return &Track{
		samples:    samples,
		sampleRate: sampleRate,
		log:        logrus.WithField("component", "track"),
	}
}

// SilentTrack returns an empty track. The engine stays constructible and
// runs the idle visual indefinitely when no audio could be loaded.
func SilentTrack() *Track {
	return NewTrackFromBuffer(nil, 24000)
}

func (t *Track) Samples() []float64 { return t.samples }
func (t *Track) SampleRate() int    { return t.sampleRate }

func (t *Track) DurationSeconds() float64 {
	return float64(len(t.samples)) / float64(t.sampleRate)
}

func (t *Track) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

func (t *Track) ElapsedSeconds() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return 0
	}
	return time.Since(t.startTime).Seconds()
}

// Play starts device output and publishes the playback clock. The clock is
// set even if the device fails, so the visualization still animates from the
// waveform. onDone, if non-nil, fires once when the device drains; elapsed
// time remains the authoritative finished signal.
func (t *Track) Play(onDone func()) {
	t.mu.Lock()
	if t.playing {
		t.mu.Unlock()
		return
	}
	t.playing = true
	t.startTime = time.Now()
	t.mu.Unlock()

	if len(t.samples) == 0 {
		t.log.Warn("playing empty track")
		if onDone != nil {
			onDone()
		}
		return
	}

	dev, err := openDevice(t.sampleRate)
	if err != nil {
		t.log.WithError(err).Error("device unavailable, visual-only playback")
		if onDone != nil {
			go func() {
				time.Sleep(time.Duration(t.DurationSeconds() * float64(time.Second)))
				onDone()
			}()
		}
		return
	}

	go func() {
		<-dev.ready
		reader := &trackReader{
			samples: t.samples,
			src:     t.sampleRate,
			dst:     dev.sampleRate,
		}
		player := dev.ctx.NewPlayer(reader)
		t.mu.Lock()
		t.player = player
		t.mu.Unlock()

		t.log.Info("playback started")
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
		t.mu.Lock()
		t.player = nil
		t.mu.Unlock()
		if onDone != nil {
			onDone()
		}
	}()
}

// Stop clears the playback clock; the next Analyze observes "not playing".
func (t *Track) Stop() {
	t.mu.Lock()
	player := t.player
	t.player = nil
	t.playing = false
	t.startTime = time.Time{}
	t.mu.Unlock()
	if player != nil {
		player.Close()
	}
	t.log.Info("playback stopped")
}

// trackReader streams the mono buffer as stereo float32 LE, linearly
// resampling when the track and device rates differ.
type trackReader struct {
	samples []float64
	src     int
	dst     int
	pos     int // output frame index
}

func (r *trackReader) Read(p []byte) (int, error) {
	const frameBytes = 8 // 2 channels * 4 bytes
	outFrames := len(p) / frameBytes
	if outFrames == 0 {
		return 0, nil
	}
	ratio := float64(r.src) / float64(r.dst)
	written := 0
	for i := 0; i < outFrames; i++ {
		srcPos := float64(r.pos) * ratio
		i0 := int(srcPos)
		if i0 >= len(r.samples) {
			if written == 0 {
				return 0, io.EOF
			}
			break
		}
		s := r.samples[i0]
		if i0+1 < len(r.samples) {
			frac := srcPos - float64(i0)
			s += (r.samples[i0+1] - s) * frac
		}
		putStereoF32(p, i, clampF(s, -1, 1))
		r.pos++
		written += frameBytes
	}
	return written, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
