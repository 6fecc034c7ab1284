package viz

import "math"

type ParticleKind uint8

const (
	KindQuickFlash ParticleKind = iota
	KindSlowFade
	KindMedium
	KindTrailing

	particleKindCount
)

// Velocity decay rates (1/s); drag factor is exp(-k*dt), precomputed once
// per update, not per particle. Slow fades keep their momentum longer.
const (
	dragDefault  = 2.45
	dragSlowFade = 1.2
)

// Magnetic field shape around the origin.
const (
	magneticRadialGain     = 0.3
	magneticTangentialGain = 0.8
	quickFlashJitter       = 0.02
)

type Particle struct {
	Pos Vec3
	Vel Vec3

	Life     float64
	MaxLife  float64
	Size     float64
	Age      float64
	Color    RGB
	Kind     ParticleKind
	Magnetic float64

	Trail []Vec3 // trailing kind only, bounded by TrailMaxPoints
	seq   uint64
}

// ParticleSystem is a bounded pool of spark particles orbiting the sphere.
// At capacity the earliest-spawned particle is evicted first.
type ParticleSystem struct {
	Max int
	P   []Particle

	rng     *Rand
	nextSeq uint64
	accum   float64 // fractional pending spawns
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxTrailParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.accum = 0
}

// Add inserts a particle, evicting the oldest one when the pool is full.
func (ps *ParticleSystem) Add(p Particle) {
	p.seq = ps.nextSeq
	ps.nextSeq++
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	oldest := 0
	for i := 1; i < len(ps.P); i++ {
		if ps.P[i].seq < ps.P[oldest].seq {
			oldest = i
		}
	}
	ps.P[oldest] = p
}

// Spawn creates one particle of the given kind at position with a base
// velocity. Kind-specific life, size, color, and velocity scaling follow the
// kind's character: quick flashes are fast and bright, slow fades drift.
func (ps *ParticleSystem) Spawn(pos, vel Vec3, kind ParticleKind) {
	r := ps.rng
	p := Particle{Pos: pos, Kind: kind}
	switch kind {
	case KindQuickFlash:
		p.Vel = vel.Scale(r.RangeF(1.2, 2.0))
		p.Life = r.RangeF(0.3, 0.8)
		p.MaxLife = 0.8
		p.Size = r.RangeF(1.0, 2.5)
		p.Color = RGB{1.0, 0.95, 0.4}
		p.Magnetic = 0.6
	case KindSlowFade:
		p.Vel = vel.Scale(r.RangeF(0.3, 0.7))
		p.Life = r.RangeF(2.0, 3.5)
		p.MaxLife = 3.5
		p.Size = r.RangeF(2.5, 4.5)
		p.Color = RGB{0.9, 0.7, 0.3}
		p.Magnetic = 1.4
	case KindTrailing:
		p.Vel = vel
		p.Life = r.RangeF(1.5, 2.5)
		p.MaxLife = 2.5
		p.Size = r.RangeF(1.8, 3.2)
		p.Color = RGB{0.8, 0.6, 0.9}
		p.Magnetic = 1.0
		p.Trail = make([]Vec3, 0, TrailMaxPoints)
		p.Trail = append(p.Trail, pos)
	default: // KindMedium
		p.Vel = vel
		p.Life = r.RangeF(1.0, 2.0)
		p.MaxLife = 2.0
		p.Size = r.RangeF(2.0, 3.5)
		p.Color = RGB{
			R: r.RangeF(0.7, 1.0),
			G: r.RangeF(0.6, 0.9),
			B: r.RangeF(0.2, 0.6),
		}
		p.Magnetic = 1.0
	}
	ps.Add(p)
}

// SpawnFromLoudness emits sparks stochastically: the expected spawn count is
// proportional to loudness above a quiet threshold. Spawn points sit just
// outside the sphere surface with an outward velocity.
func (ps *ParticleSystem) SpawnFromLoudness(rms, dt float64) {
	if rms < SpawnRMSThreshold || dt <= 0 {
		return
	}
	ps.accum += SpawnRateGain * clamp01(rms) * dt
	for ps.accum >= 1 {
		ps.accum--
		r := ps.rng
		theta := math.Acos(r.RangeF(-1, 1))
		phi := r.RangeF(0, 2*math.Pi)
		n := Vec3{
			X: math.Sin(theta) * math.Cos(phi),
			Y: math.Cos(theta),
			Z: math.Sin(theta) * math.Sin(phi),
		}
		pos := n.Scale(BaseRadius * (1.0 + r.RangeF(0, SpawnRadiusJitter)))
		vel := n.Scale(r.RangeF(0.4, 1.2))
		ps.Spawn(pos, vel, ParticleKind(r.Intn(int(particleKindCount))))
	}
}

// Update advances all particles by dt: life decay, velocity integration, the
// magnetic-style field (radial pull toward the origin plus a tangential
// swirl), per-kind drag, and trail bookkeeping. Expired particles are
// removed via swap-remove.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	decayDefault := math.Exp(-dragDefault * dt)
	decaySlow := math.Exp(-dragSlowFade * dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life -= dt
		if p.Life <= 0 {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		p.Age += dt

		if p.Kind == KindTrailing {
			p.Trail = append(p.Trail, p.Pos)
			if len(p.Trail) > TrailMaxPoints {
				copy(p.Trail, p.Trail[1:])
				p.Trail = p.Trail[:TrailMaxPoints]
			}
		}

		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		d := p.Pos.Length()
		if d > 0 {
			radial := magneticRadialGain * p.Magnetic / (1.0 + d*0.5)
			p.Vel = p.Vel.Add(p.Pos.Scale(-radial * dt))

			ts := magneticTangentialGain * p.Magnetic
			if p.Kind == KindQuickFlash {
				ts *= 1.5
			}
			p.Vel = p.Vel.Add(Vec3{
				X: p.Pos.Y * ts * dt,
				Y: -p.Pos.X * ts * dt,
				Z: p.Pos.Z * ts * 0.3 * dt,
			})
		}

		switch p.Kind {
		case KindQuickFlash:
			p.Vel.X += ps.rng.RangeF(-quickFlashJitter, quickFlashJitter)
			p.Vel.Y += ps.rng.RangeF(-quickFlashJitter, quickFlashJitter)
			p.Vel.Z += ps.rng.RangeF(-quickFlashJitter, quickFlashJitter)
			p.Vel = p.Vel.Scale(decayDefault)
		case KindSlowFade:
			p.Vel = p.Vel.Scale(decaySlow)
		default:
			p.Vel = p.Vel.Scale(decayDefault)
		}

		i++
	}
}

// RenderData appends the live particles as glow points, trail ghosts
// included. Alpha and size envelopes differ per kind; every channel is
// clamped before it enters the buffer.
func (ps *ParticleSystem) RenderData(buf []float32) []float32 {
	for i := range ps.P {
		p := &ps.P[i]
		lr := clamp01(p.Life / p.MaxLife)

		var alpha float64
		switch p.Kind {
		case KindQuickFlash:
			alpha = math.Min(1.0, lr*2.0) * 0.9
			if lr < 0.3 {
				alpha *= lr / 0.3
			}
		case KindSlowFade:
			alpha = lr * 0.7
		default:
			alpha = lr * 0.8
		}
		if alpha <= 0.01 {
			continue
		}

		var size float64
		switch p.Kind {
		case KindQuickFlash:
			size = p.Size * (0.8 + 0.4*math.Sin(lr*math.Pi))
		case KindSlowFade:
			size = p.Size * (0.6 + 0.4*lr)
		default:
			size = p.Size * (0.5 + 0.5*lr)
		}

		var mod float64
		switch p.Kind {
		case KindQuickFlash:
			mod = 1.0 + 0.2*math.Sin(p.Age*20)
		case KindSlowFade:
			mod = 1.0 + 0.1*math.Sin(p.Age*2)
		default:
			mod = 1.0 + 0.05*math.Sin(p.Age*8)
		}
		col := p.Color.Scale(mod)
		col.R = clamp01(col.R)
		col.G = clamp01(col.G)
		col.B = clamp01(col.B)

		if p.Kind == KindTrailing {
			for j, tp := range p.Trail {
				ta := alpha * (float64(j) / float64(len(p.Trail))) * 0.5
				buf = append(buf,
					float32(tp.X), float32(tp.Y), float32(tp.Z),
					float32(size*0.6),
					float32(col.R), float32(col.G), float32(col.B),
					float32(clamp01(ta)),
				)
			}
		}

		buf = append(buf,
			float32(p.Pos.X), float32(p.Pos.Y), float32(p.Pos.Z),
			float32(size),
			float32(col.R), float32(col.G), float32(col.B),
			float32(clamp01(alpha)),
		)
	}
	return buf
}
