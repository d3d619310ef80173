package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkVec4Transform(b *testing.B) {
	m := RotateY(0.5).Mul(Translate(V3(1, 2, 3))).Mul(Perspective(math.Pi/2, 4.0/3.0, 0.1, 1000))
	v := Point(1, 2, 3)

	for b.Loop() {
		_ = v.Transform(m)
	}
}

func BenchmarkQuickInverse(b *testing.B) {
	m := PointAt(V3(1, 2, 3), V3(0, 0, 10), Up())

	for b.Loop() {
		_ = m.QuickInverse()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkPerspective(b *testing.B) {
	for b.Loop() {
		_ = Perspective(math.Pi/2, 4.0/3.0, 0.1, 1000.0)
	}
}

func BenchmarkPointAt(b *testing.B) {
	eye := V3(0, 0, 0)
	target := V3(0, 0, 1)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = PointAt(eye, target, up)
	}
}
