package viz

import "math"

// LineStride is the layout of a world-space line vertex: [x, y, z, r, g, b, a].
// Vertices come in segment pairs.
const LineStride = 7

// OverlayStride is the layout of a screen-space overlay vertex:
// [x, y, r, g, b, a]. Coordinates are normalized, -1..1 on the shorter
// window axis; the renderer's ortho matrix corrects for aspect.
const OverlayStride = 6

// Orbit ring parameters, indexed together.
var (
	ringRadii  = [3]float64{1.04, 1.20, 1.38}
	ringTilts  = [3]float64{15, 25, 35} // degrees around X
	ringSpeeds = [3]float64{4, 6, 8}    // degrees/s spin around Y
	ringFades  = [3]float64{1.0, 0.75, 0.55}
)

func appendLine3(buf []float32, a, b Vec3, c RGB, alpha float64) []float32 {
	return append(buf,
		float32(a.X), float32(a.Y), float32(a.Z),
		float32(c.R), float32(c.G), float32(c.B), float32(alpha),
		float32(b.X), float32(b.Y), float32(b.Z),
		float32(c.R), float32(c.G), float32(c.B), float32(alpha),
	)
}

func appendLine2(buf []float32, x0, y0, x1, y1 float64, c RGB, alpha float64) []float32 {
	return append(buf,
		float32(x0), float32(y0),
		float32(c.R), float32(c.G), float32(c.B), float32(alpha),
		float32(x1), float32(y1),
		float32(c.R), float32(c.G), float32(c.B), float32(alpha),
	)
}

// AppendOrbitRings emits three dashed rings around the sphere as world-space
// line segments. Each ring has its own radius, tilt, and spin rate, so the
// set never lines up twice.
func AppendOrbitRings(buf []float32, now float64, style StyleConfig) []float32 {
	for ri := 0; ri < len(ringRadii); ri++ {
		radius := BaseRadius * ringRadii[ri]
		tilt := ringTilts[ri] * math.Pi / 180
		spin := now * ringSpeeds[ri] * math.Pi / 180
		alpha := style.RingAlpha * ringFades[ri]
		ct, st := math.Cos(tilt), math.Sin(tilt)

		ringPoint := func(seg int) Vec3 {
			a := spin + 2*math.Pi*float64(seg)/RingSegments
			x := math.Cos(a) * radius
			z := math.Sin(a) * radius
			// tilt the ring plane around X
			return Vec3{X: x, Y: -z * st, Z: z * ct}
		}

		period := RingDashLen + RingGapLen
		for seg := 0; seg < RingSegments; seg++ {
			if seg%period >= RingDashLen {
				continue
			}
			buf = appendLine3(buf, ringPoint(seg), ringPoint(seg+1), style.Accent, alpha)
		}
	}
	return buf
}

// AppendFloorGrid emits a square grid below the sphere whose lines fade with
// distance from the center.
func AppendFloorGrid(buf []float32, style StyleConfig) []float32 {
	const (
		extentMul = 2.5
		stepMul   = 0.4
	)
	y := -BaseRadius - 0.25
	extent := BaseRadius * extentMul
	step := BaseRadius * stepMul

	gridAlpha := func(offset float64) float64 {
		fade := 1.0 - math.Abs(offset)/extent
		return style.RingAlpha * 0.5 * clamp01(fade+0.15)
	}

	for v := -extent; v <= extent+1e-9; v += step {
		a := gridAlpha(v)
		buf = appendLine3(buf, Vec3{X: -extent, Y: y, Z: v}, Vec3{X: extent, Y: y, Z: v}, style.Glow, a)
		buf = appendLine3(buf, Vec3{X: v, Y: y, Z: -extent}, Vec3{X: v, Y: y, Z: extent}, style.Glow, a)
	}
	return buf
}

// AppendHUDRing emits the surround HUD: a double circle with tick marks
// every 15 degrees and a rotating sweep arc whose length follows loudness.
func AppendHUDRing(buf []float32, now, rms float64, style StyleConfig) []float32 {
	const circleSegs = 96
	outer := HUDRingRadius
	inner := HUDRingRadius - HUDRingGap

	circle := func(buf []float32, radius, alpha float64) []float32 {
		for i := 0; i < circleSegs; i++ {
			a0 := 2 * math.Pi * float64(i) / circleSegs
			a1 := 2 * math.Pi * float64(i+1) / circleSegs
			buf = appendLine2(buf,
				math.Cos(a0)*radius, math.Sin(a0)*radius,
				math.Cos(a1)*radius, math.Sin(a1)*radius,
				style.Primary, alpha)
		}
		return buf
	}
	buf = circle(buf, outer, style.HUDAlpha)
	buf = circle(buf, inner, style.HUDAlpha*0.6)

	for deg := 0; deg < 360; deg += HUDTickStepDeg {
		a := float64(deg) * math.Pi / 180
		major := deg%90 == 0
		tickLen := 0.02
		tickAlpha := style.HUDAlpha
		if major {
			tickLen = 0.04
			tickAlpha *= 1.5
		}
		buf = appendLine2(buf,
			math.Cos(a)*outer, math.Sin(a)*outer,
			math.Cos(a)*(outer+tickLen), math.Sin(a)*(outer+tickLen),
			style.Primary, clamp01(tickAlpha))
	}

	// sweep arc, loudness stretches it up to a cap
	sweepLen := HUDSweepBase + math.Min(HUDSweepMax, clamp01(rms)*HUDSweepGain)
	sweepStart := -now * HUDSweepSpeed
	const sweepSegs = 24
	for i := 0; i < sweepSegs; i++ {
		t0 := float64(i) / sweepSegs
		t1 := float64(i+1) / sweepSegs
		a0 := sweepStart + sweepLen*t0
		a1 := sweepStart + sweepLen*t1
		// brighter toward the leading edge
		alpha := style.HUDAlpha * (0.5 + 1.5*t1)
		buf = appendLine2(buf,
			math.Cos(a0)*outer, math.Sin(a0)*outer,
			math.Cos(a1)*outer, math.Sin(a1)*outer,
			style.Accent, clamp01(alpha))
	}
	return buf
}

// AppendReticle emits the small center reticle: a circle with four
// crosshair ticks just outside it.
func AppendReticle(buf []float32, style StyleConfig) []float32 {
	const (
		radius  = 0.08
		segs    = 32
		tickIn  = 0.10
		tickOut = 0.14
	)
	alpha := style.HUDAlpha * 0.8
	for i := 0; i < segs; i++ {
		a0 := 2 * math.Pi * float64(i) / segs
		a1 := 2 * math.Pi * float64(i+1) / segs
		buf = appendLine2(buf,
			math.Cos(a0)*radius, math.Sin(a0)*radius,
			math.Cos(a1)*radius, math.Sin(a1)*radius,
			style.Primary, alpha)
	}
	for i := 0; i < 4; i++ {
		a := float64(i) * math.Pi / 2
		buf = appendLine2(buf,
			math.Cos(a)*tickIn, math.Sin(a)*tickIn,
			math.Cos(a)*tickOut, math.Sin(a)*tickOut,
			style.Primary, alpha)
	}
	return buf
}

// AppendVignette emits a darkening frame as screen-space triangles: fully
// transparent on an inner square, dark toward the window edges. Vertices use
// OverlayStride and are drawn as a triangle list.
func AppendVignette(buf []float32) []float32 {
	const (
		innerExt = 0.75
		outerExt = 1.6
		darkness = 0.55
	)
	dark := RGB{0, 0, 0}

	vert := func(buf []float32, x, y, alpha float64) []float32 {
		return append(buf,
			float32(x), float32(y),
			float32(dark.R), float32(dark.G), float32(dark.B), float32(alpha))
	}

	// corners of the inner (transparent) and outer (dark) squares, CCW
	ix := [4]float64{-innerExt, innerExt, innerExt, -innerExt}
	iy := [4]float64{-innerExt, -innerExt, innerExt, innerExt}
	ox := [4]float64{-outerExt, outerExt, outerExt, -outerExt}
	oy := [4]float64{-outerExt, -outerExt, outerExt, outerExt}

	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		// two triangles per frame side
		buf = vert(buf, ix[i], iy[i], 0)
		buf = vert(buf, ox[i], oy[i], darkness)
		buf = vert(buf, ox[j], oy[j], darkness)

		buf = vert(buf, ix[i], iy[i], 0)
		buf = vert(buf, ox[j], oy[j], darkness)
		buf = vert(buf, ix[j], iy[j], 0)
	}
	return buf
}

// AppendBackground emits a fullscreen vertical gradient quad tinted by the
// current style. Drawn first, before any depth-tested geometry.
func AppendBackground(buf []float32, style StyleConfig) []float32 {
	top := Palette.BgDark
	bottom := Palette.BgDark.Scale(0.35)
	bottom.R += style.Glow.R * 0.02
	bottom.G += style.Glow.G * 0.02
	bottom.B += style.Glow.B * 0.02

	vert := func(buf []float32, x, y float64, c RGB) []float32 {
		return append(buf,
			float32(x), float32(y),
			float32(c.R), float32(c.G), float32(c.B), 1)
	}

	const ext = 2.0 // past the corners at any aspect ratio
	buf = vert(buf, -ext, ext, top)
	buf = vert(buf, ext, ext, top)
	buf = vert(buf, ext, -ext, bottom)

	buf = vert(buf, -ext, ext, top)
	buf = vert(buf, ext, -ext, bottom)
	buf = vert(buf, -ext, -ext, bottom)
	return buf
}
