package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// runTerminal draws frames in the alternate screen until ctx is done or
// the user quits. Each cell holds two pixel rows.
func runTerminal(ctx context.Context, v *viewer, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.resize(width, height*2)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Input is read on its own goroutine and handed to the render loop
	sizes := make(chan uv.WindowSizeEvent, 1)
	resets := make(chan struct{}, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case sizes <- ev:
				case <-ctx.Done():
					return
				}
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					select {
					case resets <- struct{}{}:
					default:
					}
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-sizes:
			term.Erase()
			term.Resize(ev.Width, ev.Height)
			v.resize(ev.Width, ev.Height*2)

		case <-resets:
			v.spinner.Reset()

		case <-ticker.C:
			v.step()
			v.fb.Draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
