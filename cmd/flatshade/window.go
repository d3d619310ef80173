package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// runWindow shows frames in a desktop window. It blocks until the window
// closes, the user quits or ctx is done.
func runWindow(ctx context.Context, v *viewer, fps int) error {
	g := &windowGame{ctx: ctx, v: v}
	ebiten.SetWindowTitle("flatshade - " + v.scene.Path())
	ebiten.SetWindowSize(v.fb.Width, v.fb.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(fps)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

type windowGame struct {
	ctx context.Context
	v   *viewer
	img *ebiten.Image
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.v.spinner.Reset()
	}

	g.v.step()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.v.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}

	g.img.WritePixels(fb.ToImage().Pix)
	screen.DrawImage(g.img, nil)
}

// Layout renders at the window's own size, one framebuffer pixel per
// screen pixel.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.v.resize(outsideWidth, outsideHeight)
	return g.v.fb.Width, g.v.fb.Height
}
