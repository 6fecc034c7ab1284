package viz

import "math"

// Point batches are flat float32 buffers, 8 floats per point:
// [x, y, z, size, r, g, b, a]. The renderer consumes them as-is.
const PointStride = 8

// PassConfig parameterizes one compose pass over a density tier. The same
// Compose covers every look (wide dim glow, crisp core) instead of one
// method per pass.
type PassConfig struct {
	Indices      []int // density tier; nil means every point
	Tint         RGB
	Alpha        float64
	SizeMul      float64
	DepthTest    bool // render hint, forwarded with the batch
	Fresnel      bool
	Scan         bool
	BackfaceFade bool
}

/// AnimationState is the per-frame mutable state owned by the composer side:
// rotation angle and a smoothed FPS estimate.
type AnimationState struct {
	RotationDeg float64
	FPS         float64

	frames    int
	fpsWindow float64
}

// Update advances the rotation from loudness and refreshes the FPS estimate.
// The per-frame rotation delta is capped so an rms spike never causes a
// visible jump.
func (s *AnimationState) Update(dt float64, frame FeatureFrame) {
	if dt < 0 {
		dt = 0
	}
	speed := RotationBaseSpeed * RotationQuietMul
	if frame.RMS > RotationRMSFloor {
		speed = RotationBaseSpeed + clamp01(frame.RMS)*RotationAudioGain
	}
	delta := speed * dt
	if delta > RotationFrameCap {
		delta = RotationFrameCap
	}
	s.RotationDeg = math.Mod(s.RotationDeg+delta, 360)

	s.frames++
	s.fpsWindow += dt
	if s.fpsWindow >= FPSWindowSeconds {
		s.FPS = float64(s.frames) / s.fpsWindow
		s.frames = 0
		s.fpsWindow = 0
	}
}

// Composer maps the static model plus one feature frame into render-ready
// point batches. It holds no per-frame state of its own; everything varying
// arrives as arguments, so a frame is reproducible from its inputs.
type Composer struct {
	model   *SphereModel
	avgSize float64
}

func NewComposer(model *SphereModel) *Composer {
	return &Composer{model: model, avgSize: model.AvgBaseSize()}
}

// GlobalIntensity maps loudness to the frame-wide brightness level.
func GlobalIntensity(rms float64) float64 {
	return math.Min(1.0, IntensityBase+clamp01(rms)*IntensityRMSGain)
}

// Compose appends one pass of animated points to buf and returns it.
// Spectral terms degrade to zero when frame.Spectrum is nil; every color
// channel and alpha is clamped to [0,1] before it reaches the buffer.
func (c *Composer) Compose(buf []float32, pass PassConfig, frame FeatureFrame, now, rotationDeg float64, style StyleConfig) []float32 {
	pts := c.model.Points
	if len(pts) == 0 {
		return buf
	}

	slowTime := now * IdleWobbleSpeed
	yaw := rotationDeg * math.Pi / 180
	tilt := CameraTilt * math.Pi / 180
	global := GlobalIntensity(frame.RMS)
	size := float32(math.Max(1.0, c.avgSize*pass.SizeMul*0.75))

	scanCenter := math.Sin(now*style.ScanSpeed) * (BaseRadius * ScanBandRadius)
	scanHalf := math.Max(0.001, ScanBandWidth*BaseRadius*0.5)

	n := len(pass.Indices)
	if pass.Indices == nil {
		n = len(pts)
	}
	for k := 0; k < n; k++ {
		idx := k
		if pass.Indices != nil {
			idx = pass.Indices[k]
		}
		p := &pts[idx]

		bandValue := 0.0
		if frame.Spectrum != nil {
			band := int(((p.Normal.Y + 1.0) * 0.5) * LatSteps)
			band = clamp(band, 0, len(frame.Spectrum)-1)
			bandValue = frame.Spectrum[band]
		}

		displacement := math.Sin(p.Phase+slowTime)*IdleWobbleAmp +
			p.Sensitivity*bandValue*AudioDisplaceAmp
		pos := p.Position.Add(p.Normal.Scale(displacement))

		intensity := global * (SensitivityFloor + (1-SensitivityFloor)*p.Sensitivity)

		viewZ := 0.0
		if pass.Fresnel || pass.BackfaceFade {
			viewZ = rotateYX(p.Normal, yaw, tilt).Z
			if pass.Fresnel {
				rim := math.Max(0, 1.0-math.Abs(viewZ))
				intensity += style.FresnelStrength * math.Pow(rim, FresnelPower) * FresnelGain
			}
		}

		if pass.Scan {
			dy := math.Abs(p.Position.Y - scanCenter)
			if dy < scanHalf {
				t := 1.0 - dy/scanHalf
				intensity += ScanBoost * t * t
			}
		}

		// Positional shimmer, bounded well inside the clamp.
		shimmer := 1.0 + 0.05*math.Sin(now*8.0+p.Phase+pos.X*2.0)
		intensity *= shimmer

		alpha := pass.Alpha
		if pass.BackfaceFade {
			facing := math.Max(0, 0.5+0.5*(-viewZ))
			alpha *= 0.6 + 0.4*facing
		}

		// hot points drift from the base tint toward the glow tone
		col := lerpRGB(pass.Tint, style.Glow, clamp01(intensity)*0.6)

		buf = append(buf,
			float32(pos.X), float32(pos.Y), float32(pos.Z), size,
			float32(clamp01(col.R*intensity)),
			float32(clamp01(col.G*intensity)),
			float32(clamp01(col.B*intensity)),
			float32(clamp01(alpha)),
		)
	}
	return buf
}
