package math3d

// Vec4 is a homogeneous 3D point. Mesh vertices carry W = 1.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point returns the homogeneous point (x, y, z, 1).
func Point(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Sub returns the spatial difference a - b as a Vec3. W is ignored, so the
// result is a direction regardless of the operands' weights.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// MulMat returns the row vector v multiplied by m. W is taken from the
// matrix's last column; no perspective divide is performed.
func (v Vec4) MulMat(m Mat4) Vec4 {
	return Vec4{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// Transform multiplies v by m and performs the perspective divide.
// X, Y and Z are divided by the resulting W only when W != 0; a zero W
// leaves the coordinates undivided. The computed W is kept.
func (v Vec4) Transform(m Mat4) Vec4 {
	r := v.MulMat(m)
	if r.W != 0 {
		r.X /= r.W
		r.Y /= r.W
		r.Z /= r.W
	}
	return r
}
