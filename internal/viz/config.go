package viz

// Sphere model (UV grid resolution and scale).
const (
	LatSteps      = 72
	LonSteps      = 144
	BaseRadius    = 3.0
	PointBaseSize = 3.0
)

// Density tiers: strided subsets of the full point grid.
// Glow is denser than core because its points are large and dim;
// core points are small and crisp, so fewer suffice.
const (
	StrideLatCore = 3
	StrideLonCore = 3
	StrideLatGlow = 2
	StrideLonGlow = 2
)

// Window defaults.
const (
	WindowWidth  = 900
	WindowHeight = 700
	CameraDist   = 10.0
	CameraTilt   = 20.0 // degrees, Rx applied after the Y spin
	FOVDegrees   = 45.0
)

// Audio analysis.
const (
	FFTSize          = 1024
	AnalysisWindowS  = 0.02 // 20 ms window centered on the playhead
	MinWindowSamples = 8    // below this the spectrum is skipped
	NormEpsilon      = 1e-9
)

// Per-point animation.
const (
	IdleWobbleAmp    = 0.004 // radial idle oscillation amplitude
	IdleWobbleSpeed  = 0.15  // rad/s multiplier on the shared clock
	AudioDisplaceAmp = 0.12  // sensitivity * band * amp
	// MaxDisplacement bounds |displacement| for all valid inputs:
	// IdleWobbleAmp + AudioDisplaceAmp with sensitivity, band in [0,1].
	MaxDisplacement = IdleWobbleAmp + AudioDisplaceAmp
)

// Global intensity and rotation.
const (
	IntensityBase     = 0.25
	IntensityRMSGain  = 7.0
	SensitivityFloor  = 0.7 // intensity = global * (floor + (1-floor)*sensitivity)
	RotationBaseSpeed = 1.2 // deg/s with no audio
	RotationQuietMul  = 0.3 // base speed multiplier below the rms threshold
	RotationAudioGain = 4.8 // deg/s added at rms = 1.0
	RotationRMSFloor  = 0.02
	// RotationFrameCap bounds the per-frame rotation delta so loudness
	// spikes never cause a visible jump.
	RotationFrameCap = 0.3 // degrees per frame
	FPSWindowSeconds = 0.5
)

// Scan band and rim lighting.
const (
	ScanSpeed       = 0.25
	ScanBandRadius  = 0.6  // band center sweeps sin(t*speed) * radius * this
	ScanBandWidth   = 0.18 // band total thickness as a fraction of the radius
	ScanBoost       = 0.22
	FresnelStrength = 0.7
	FresnelPower    = 1.5
	FresnelGain     = 0.6
)

// Particles.
const (
	MaxTrailParticles = 200
	TrailMaxPoints    = 8
	SpawnRMSThreshold = 0.03
	SpawnRateGain     = 90.0 // expected spawns/s at rms = 1.0
	SpawnRadiusJitter = 0.25
)

// Orbit rings.
const (
	RingSegments = 220
	RingDashLen  = 12
	RingGapLen   = 8
)

// Surround HUD.
const (
	HUDRingRadius  = 0.82
	HUDRingGap     = 0.02
	HUDSweepSpeed  = 0.6
	HUDSweepBase   = 0.60
	HUDSweepGain   = 2.0
	HUDSweepMax    = 0.35
	HUDTickStepDeg = 15
)
