package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/flatshade/pkg/math3d"
)

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(13, 7)
	fb.Clear(RGB(1, 2, 3))

	if n := countColor(fb, RGB(1, 2, 3)); n != 13*7 {
		t.Errorf("cleared %d pixels, want %d", n, 13*7)
	}
}

func TestFramebufferPixelBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorWhite)
	fb.SetPixel(4, 0, ColorWhite)
	fb.SetPixel(0, 4, ColorWhite)

	if n := countColor(fb, ColorWhite); n != 0 {
		t.Errorf("out-of-bounds writes landed: %d pixels", n)
	}
	if c := fb.GetPixel(10, 10); c != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v, want transparent", c)
	}
}

func TestFillTriangleCoverage(t *testing.T) {
	// Pixel centers with x+y <= 9 are inside: 1+2+...+10 = 55
	cw := [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)}
	ccw := [3]math3d.Vec2{cw[0], cw[2], cw[1]}

	for name, pts := range map[string][3]math3d.Vec2{"cw": cw, "ccw": ccw} {
		t.Run(name, func(t *testing.T) {
			fb := NewFramebuffer(20, 20)
			fb.FillTriangle(pts, ColorWhite)

			if n := countColor(fb, ColorWhite); n != 55 {
				t.Errorf("filled %d pixels, want 55", n)
			}
			if fb.GetPixel(0, 0) != ColorWhite || fb.GetPixel(9, 0) != ColorWhite {
				t.Error("expected corner pixels to be filled")
			}
			if fb.GetPixel(10, 0) == ColorWhite || fb.GetPixel(5, 5) == ColorWhite {
				t.Error("pixels outside the triangle were filled")
			}
		})
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  [3]math3d.Vec2
	}{
		{"zero area", [3]math3d.Vec2{math3d.V2(1, 1), math3d.V2(5, 5), math3d.V2(9, 9)}},
		{"point", [3]math3d.Vec2{math3d.V2(3, 3), math3d.V2(3, 3), math3d.V2(3, 3)}},
		{"nan", [3]math3d.Vec2{math3d.V2(math.NaN(), 0), math3d.V2(5, 5), math3d.V2(0, 9)}},
		{"inf", [3]math3d.Vec2{math3d.V2(math.Inf(1), 0), math3d.V2(5, 5), math3d.V2(0, 9)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.FillTriangle(tc.pts, ColorWhite)
			if n := countColor(fb, ColorWhite); n != 0 {
				t.Errorf("filled %d pixels, want 0", n)
			}
		})
	}
}

func TestFillTriangleClipsToScreen(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	// Covers the whole screen and far beyond
	fb.FillTriangle([3]math3d.Vec2{math3d.V2(-1e9, -1e9), math3d.V2(1e9, -1e9), math3d.V2(0, 1e9)}, ColorWhite)
	if n := countColor(fb, ColorWhite); n != 100 {
		t.Errorf("filled %d pixels, want 100", n)
	}

	// Entirely off screen
	fb.Clear(ColorBlack)
	fb.FillTriangle([3]math3d.Vec2{math3d.V2(-30, -30), math3d.V2(-20, -30), math3d.V2(-30, -20)}, ColorWhite)
	if n := countColor(fb, ColorWhite); n != 0 {
		t.Errorf("off-screen triangle filled %d pixels", n)
	}
}

func TestFillTriangleBeyondIntRange(t *testing.T) {
	tests := []struct {
		name string
		pts  [3]math3d.Vec2
		want int
	}{
		{"covers screen", [3]math3d.Vec2{math3d.V2(-1e30, -1e30), math3d.V2(1e30, -1e30), math3d.V2(0, 1e30)}, 100},
		{"right of screen", [3]math3d.Vec2{math3d.V2(2e19, 0), math3d.V2(3e19, 0), math3d.V2(2e19, 1e19)}, 0},
		{"below screen", [3]math3d.Vec2{math3d.V2(0, 2e19), math3d.V2(5, 2e19), math3d.V2(0, 3e19)}, 0},
		{"left of screen", [3]math3d.Vec2{math3d.V2(-3e19, 0), math3d.V2(-2e19, 0), math3d.V2(-3e19, 5)}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.FillTriangle(tc.pts, ColorWhite)
			if n := countColor(fb, ColorWhite); n != tc.want {
				t.Errorf("filled %d pixels, want %d", n, tc.want)
			}
		})
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 1, RGB(10, 20, 30))

	img := fb.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != RGB(10, 20, 30) {
		t.Errorf("pixel (2,1) = %v, want (10,20,30)", got)
	}
	if got := img.RGBAAt(0, 0); got != ColorBlack {
		t.Errorf("pixel (0,0) = %v, want black", got)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("png size = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}
