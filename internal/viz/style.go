package viz

// Status is the externally reported application state. The dialogue/speech
// shell calls Engine.NotifyStatus to bias the visual style; the engine never
// blocks on it.
type Status int

const (
	StatusIdle Status = iota
	StatusListening
	StatusProcessing
	StatusPlayingAudio
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusListening:
		return "listening"
	case StatusProcessing:
		return "processing"
	case StatusPlayingAudio:
		return "playing"
	}
	return "unknown"
}

// RGB is a linear color with channels in [0,1].
type RGB struct {
	R, G, B float64
}

func (c RGB) Scale(k float64) RGB {
	return RGB{R: clamp01(c.R * k), G: clamp01(c.G * k), B: clamp01(c.B * k)}
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: lerpF(a.R, b.R, t),
		G: lerpF(a.G, b.G, t),
		B: lerpF(a.B, b.B, t),
	}
}

// Palette holds the fixed color anchors shared by every style.
var Palette = struct {
	EnergyBase   RGB // deep orange
	EnergyBright RGB // warm gold
	EnergyHot    RGB // bright orange-gold
	InfoBase     RGB // bright blue
	InfoBright   RGB // bright cyan
	InfoDim      RGB // darker blue
	Warning      RGB
	BgDark       RGB
}{
	EnergyBase:   RGB{1.0, 0.6, 0.2},
	EnergyBright: RGB{1.0, 0.9, 0.4},
	EnergyHot:    RGB{1.0, 0.8, 0.3},
	InfoBase:     RGB{0.3, 0.7, 1.0},
	InfoBright:   RGB{0.5, 0.9, 1.0},
	InfoDim:      RGB{0.2, 0.5, 0.8},
	Warning:      RGB{1.0, 0.5, 0.1},
	BgDark:       RGB{0.02, 0.03, 0.05},
}

// StyleConfig is the complete per-frame visual style. It is a plain value:
// the composer receives one each frame and keeps no style state of its own.
type StyleConfig struct {
	Primary RGB // point-cloud base tint
	Glow    RGB
	Accent  RGB // overlays (rings, HUD)

	GlowAlpha   float64
	CoreAlpha   float64
	RingAlpha   float64
	HUDAlpha    float64
	GlowSizeMul float64

	FresnelStrength float64
	ScanSpeed       float64
	PulseSpeed      float64
}

// StyleFor returns the fixed style for a status.
func StyleFor(s Status) StyleConfig {
	st := StyleConfig{
		GlowAlpha:       0.10,
		CoreAlpha:       0.80,
		RingAlpha:       0.28,
		HUDAlpha:        0.22,
		GlowSizeMul:     2.2,
		FresnelStrength: FresnelStrength,
		ScanSpeed:       ScanSpeed,
		PulseSpeed:      0.8,
	}
	switch s {
	case StatusListening:
		st.Primary = Palette.EnergyBase
		st.Glow = Palette.EnergyBright
		st.Accent = Palette.EnergyHot
		st.GlowAlpha = 0.12
		st.FresnelStrength *= 1.1
	case StatusProcessing:
		st.Primary = Palette.EnergyBright
		st.Glow = Palette.EnergyHot
		st.Accent = Palette.Warning
		st.ScanSpeed *= 2.0
		st.PulseSpeed *= 1.5
	case StatusPlayingAudio:
		st.Primary = Palette.EnergyHot
		st.Glow = Palette.EnergyBright
		st.Accent = Palette.InfoBright
	default: // StatusIdle
		st.Primary = Palette.InfoBase
		st.Glow = Palette.InfoBright
		st.Accent = Palette.EnergyBase
	}
	return st
}

// StyleBlend interpolates between two styles over a fixed duration.
// Progress is derived from the caller's clock, so repeated evaluation at the
// same instant yields the same style (no hidden cross-frame state).
type StyleBlend struct {
	From     StyleConfig
	To       StyleConfig
	Start    float64
	Duration float64
}

// Retarget begins a new transition toward the style of the given status,
// starting from whatever the blend currently shows.
func (b *StyleBlend) Retarget(s Status, now, duration float64) {
	b.From = b.At(now)
	b.To = StyleFor(s)
	b.Start = now
	b.Duration = duration
}

// At evaluates the blended style at time now.
func (b *StyleBlend) At(now float64) StyleConfig {
	if b.Duration <= 0 {
		return b.To
	}
	t := clamp01((now - b.Start) / b.Duration)
	if t >= 1 {
		return b.To
	}
	e := easeInOutCubic(t)
	out := b.To
	out.Primary = lerpRGB(b.From.Primary, b.To.Primary, e)
	out.Glow = lerpRGB(b.From.Glow, b.To.Glow, e)
	out.Accent = lerpRGB(b.From.Accent, b.To.Accent, e)
	out.GlowAlpha = lerpF(b.From.GlowAlpha, b.To.GlowAlpha, e)
	out.CoreAlpha = lerpF(b.From.CoreAlpha, b.To.CoreAlpha, e)
	out.RingAlpha = lerpF(b.From.RingAlpha, b.To.RingAlpha, e)
	out.HUDAlpha = lerpF(b.From.HUDAlpha, b.To.HUDAlpha, e)
	out.GlowSizeMul = lerpF(b.From.GlowSizeMul, b.To.GlowSizeMul, e)
	out.FresnelStrength = lerpF(b.From.FresnelStrength, b.To.FresnelStrength, e)
	out.ScanSpeed = lerpF(b.From.ScanSpeed, b.To.ScanSpeed, e)
	out.PulseSpeed = lerpF(b.From.PulseSpeed, b.To.PulseSpeed, e)
	return out
}
