package viz

import "math"

// Point is one static sample on the sphere surface.
type Point struct {
	Position    Vec3
	Normal      Vec3 // unit, outward
	Phase       float64
	Sensitivity float64
	BaseSize    float64
}

// SphereModel is the immutable point set the composer animates every frame.
// Geometry is a UV grid: (LatSteps+1) rings of LonSteps points, row-major.
type SphereModel struct {
	Points []Point
}

// NewSphereModel builds the model. Geometry is fully determined by the grid;
// phase, sensitivity and size are drawn from the seeded RNG, so two models
// built with the same seed are identical.
func NewSphereModel(seed uint64) *SphereModel {
	r := NewRand(seed)
	pts := make([]Point, 0, (LatSteps+1)*LonSteps)
	for i := 0; i <= LatSteps; i++ {
		theta := math.Pi * float64(i) / LatSteps
		st, ct := math.Sin(theta), math.Cos(theta)
		for j := 0; j < LonSteps; j++ {
			phi := 2 * math.Pi * float64(j) / LonSteps
			n := Vec3{
				X: st * math.Cos(phi),
				Y: ct,
				Z: st * math.Sin(phi),
			}
			pts = append(pts, Point{
				Position:    n.Scale(BaseRadius),
				Normal:      n,
				Phase:       r.Float64() * 2 * math.Pi,
				Sensitivity: r.Float64(),
				BaseSize:    PointBaseSize * (0.9 + r.Float64()*1.2),
			})
		}
	}
	return &SphereModel{Points: pts}
}

// StridedIndices selects every strideLat-th ring and every strideLon-th point
// within a ring. The result is computed once and reused every frame as a
// density tier.
func (m *SphereModel) StridedIndices(strideLat, strideLon int) []int {
	if strideLat < 1 {
		strideLat = 1
	}
	if strideLon < 1 {
		strideLon = 1
	}
	var idx []int
	for i := 0; i <= LatSteps; i += strideLat {
		base := i * LonSteps
		for j := 0; j < LonSteps; j += strideLon {
			k := base + j
			if k < len(m.Points) {
				idx = append(idx, k)
			}
		}
	}
	return idx
}

// AvgBaseSize returns the mean base point size, used as the uniform point
// size for a render pass.
func (m *SphereModel) AvgBaseSize() float64 {
	if len(m.Points) == 0 {
		return PointBaseSize
	}
	sum := 0.0
	for i := range m.Points {
		sum += m.Points[i].BaseSize
	}
	return sum / float64(len(m.Points))
}
