package math3d

import "math"

// Mat4 is a 4x4 matrix indexed m[row][col].
//
// Points are row vectors multiplied on the left (v' = v × M), so the
// translation lives in the bottom row and the homogeneous weight of a
// transformed point comes from the last column:
//
// | Xx Xy Xz 0 |   X,Y,Z = basis vectors (rotation/scale)
// | Yx Yy Yz 0 |   T = translation
// | Zx Zy Zz 0 |
// | Tx Ty Tz 1 |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{v.X, v.Y, v.Z, 1},
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Perspective creates a perspective projection matrix.
// fov is the vertical field of view in radians.
// aspect is width/height.
// near and far are the depth planes; nothing is clipped against them.
//
// After the divide, depth maps near to 0 and far to 1 and the divisor
// is the camera-space z (m[2][3] = 1).
func Perspective(fov, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fov/2)
	q := far / (far - near)

	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, q, 1},
		{0, 0, -near * q, 0},
	}
}

// PointAt creates the matrix that places an object at pos facing target.
// The up vector is re-orthogonalized against the forward direction
// (Gram-Schmidt) before the right vector is derived.
func PointAt(pos, target, up Vec3) Mat4 {
	forward := target.Sub(pos).Normalize()
	newUp := up.Sub(forward.Scale(up.Dot(forward))).Normalize()
	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{pos.X, pos.Y, pos.Z, 1},
	}
}

// QuickInverse inverts a matrix made only of an orthonormal rotation and a
// translation, such as the result of PointAt. It is not a general inverse.
func (m Mat4) QuickInverse() Mat4 {
	var inv Mat4
	for r := range 3 {
		for c := range 3 {
			inv[r][c] = m[c][r]
		}
	}
	for c := range 3 {
		inv[3][c] = -(m[3][0]*inv[0][c] + m[3][1]*inv[1][c] + m[3][2]*inv[2][c])
	}
	inv[3][3] = 1
	return inv
}

// Mul multiplies two matrices: a * b. Under the row-vector convention the
// result applies a first, then b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3][0], m[3][1], m[3][2]}
}
