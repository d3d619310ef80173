package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// Framebuffer is an in-memory RGBA surface.
// For terminal output the height should be 2x the terminal rows, since each
// cell shows two pixels using half-block characters (▀).
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// FillTriangle fills the triangle spanned by pts with a solid color.
// A pixel is covered when its center lies inside or on an edge. Either
// winding is accepted; zero-area and non-finite triangles draw nothing.
func (fb *Framebuffer) FillTriangle(pts [3]math3d.Vec2, c color.RGBA) {
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			return
		}
	}

	area := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
	if area == 0 {
		return
	}
	if area < 0 {
		pts[1], pts[2] = pts[2], pts[1]
	}

	// Bounding box, clamped to the screen in float space. Projected points
	// can lie far outside the int range.
	fminX := math.Max(0, math.Floor(min3(pts[0].X, pts[1].X, pts[2].X)))
	fmaxX := math.Min(float64(fb.Width-1), math.Ceil(max3(pts[0].X, pts[1].X, pts[2].X)))
	fminY := math.Max(0, math.Floor(min3(pts[0].Y, pts[1].Y, pts[2].Y)))
	fmaxY := math.Min(float64(fb.Height-1), math.Ceil(max3(pts[0].Y, pts[1].Y, pts[2].Y)))
	if fminX > fmaxX || fminY > fmaxY {
		return
	}
	minX, maxX := int(fminX), int(fmaxX)
	minY, maxY := int(fminY), int(fmaxY)

	// Edge opposite each vertex
	a0, b0, c0 := edgeCoeffs(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
	a1, b1, c1 := edgeCoeffs(pts[2].X, pts[2].Y, pts[0].X, pts[0].Y)
	a2, b2, c2 := edgeCoeffs(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)

	startX := float64(minX) + 0.5
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5

		// Incremental stepping along the row
		w0 := edgeFunc(a0, b0, c0, startX, py)
		w1 := edgeFunc(a1, b1, c1, startX, py)
		w2 := edgeFunc(a2, b2, c2, startX, py)

		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
	}
}

// edgeCoeffs returns A, B, C for the edge function
// edge(x,y) = A*x + B*y + C, positive left of the edge (x0,y0)→(x1,y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	a = y0 - y1
	b = x1 - x0
	c = x0*y1 - x1*y0
	return
}

func edgeFunc(a, b, c, x, y float64) float64 {
	return a*x + b*y + c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		j := i * 4
		img.Pix[j+0] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = p.A
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
