package viz

import "math"

// Mat4 is a column-major 4x4 matrix, the layout GL uniforms expect.
type Mat4 [16]float32

func MatIdentity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MatMul returns a * b (b applied first).
func MatMul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

func MatTranslate(x, y, z float64) Mat4 {
	m := MatIdentity()
	m[12] = float32(x)
	m[13] = float32(y)
	m[14] = float32(z)
	return m
}

func MatRotateX(deg float64) Mat4 {
	r := deg * math.Pi / 180
	c, s := float32(math.Cos(r)), float32(math.Sin(r))
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func MatRotateY(deg float64) Mat4 {
	r := deg * math.Pi / 180
	c, s := float32(math.Cos(r)), float32(math.Sin(r))
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// MatPerspective builds a standard right-handed perspective projection.
func MatPerspective(fovyDeg, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovyDeg*math.Pi/360)
	nf := 1.0 / (near - far)
	var m Mat4
	m[0] = float32(f / aspect)
	m[5] = float32(f)
	m[10] = float32((far + near) * nf)
	m[11] = -1
	m[14] = float32(2 * far * near * nf)
	return m
}
