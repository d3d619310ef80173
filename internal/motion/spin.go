// Package motion animates the model rotation between frames.
package motion

import "github.com/charmbracelet/harmonica"

// Spring parameters for easing speed changes. Damping 1.0 is critically
// damped, so the speed never overshoots its target.
const (
	frequency = 4.0
	damping   = 1.0
)

// axis tracks one rotation angle whose angular speed is eased toward a
// target by a spring.
type axis struct {
	Angle  float64 // Radians
	Speed  float64 // Radians per second
	target float64

	spring harmonica.Spring
	accel  float64 // Spring velocity of Speed
}

func newAxis(fps int) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (a *axis) step(dt float64) {
	a.Speed, a.accel = a.spring.Update(a.Speed, a.accel, a.target)
	a.Angle += a.Speed * dt
}

// Spinner accumulates pitch and yaw for a model spinning at a set speed.
// With both targets at zero it stays at the identity rotation.
type Spinner struct {
	pitch, yaw axis
	fps        int
}

// NewSpinner creates a spinner stepped fps times per second.
func NewSpinner(fps int) *Spinner {
	if fps <= 0 {
		fps = 30
	}
	return &Spinner{
		pitch: newAxis(fps),
		yaw:   newAxis(fps),
		fps:   fps,
	}
}

// SetTarget sets the angular speeds, in radians per second, the spinner
// eases toward.
func (s *Spinner) SetTarget(pitch, yaw float64) {
	s.pitch.target = pitch
	s.yaw.target = yaw
}

// Step advances one frame.
func (s *Spinner) Step() {
	dt := 1 / float64(s.fps)
	s.pitch.step(dt)
	s.yaw.step(dt)
}

// Angles returns the current pitch and yaw in radians.
func (s *Spinner) Angles() (pitch, yaw float64) {
	return s.pitch.Angle, s.yaw.Angle
}

// Reset stops the spinner at the identity rotation. Targets are kept.
func (s *Spinner) Reset() {
	pt, yt := s.pitch.target, s.yaw.target
	s.pitch = newAxis(s.fps)
	s.yaw = newAxis(s.fps)
	s.SetTarget(pt, yt)
}
