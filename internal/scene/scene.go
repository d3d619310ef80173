// Package scene owns the mesh being rendered and keeps it in sync with its
// source file.
package scene

import (
	"errors"

	"go.uber.org/zap"

	"github.com/taigrr/flatshade/pkg/models"
)

// ErrNoSource is returned by Reload before any successful Load.
var ErrNoSource = errors.New("scene: no model loaded")

// Scene holds the current mesh. It is not safe for concurrent use; the
// render loop owns it.
type Scene struct {
	path string
	mesh *models.Mesh
	log  *zap.Logger
}

// New creates an empty scene. A nil logger discards output.
func New(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{log: log}
}

// Mesh returns the current mesh, nil before the first successful load.
func (s *Scene) Mesh() *models.Mesh {
	return s.mesh
}

// Path returns the source of the current mesh.
func (s *Scene) Path() string {
	return s.path
}

// Load parses the OBJ file at path and makes it the current mesh. On
// failure the scene is left unchanged.
func (s *Scene) Load(path string) error {
	mesh, err := models.LoadOBJ(path)
	if err != nil {
		return err
	}

	s.path = path
	s.mesh = mesh
	s.log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Any("bounds_min", mesh.BoundsMin),
		zap.Any("bounds_max", mesh.BoundsMax),
	)
	return nil
}

// Reload parses the current source again. The previous mesh is kept if
// the file no longer loads.
func (s *Scene) Reload() error {
	if s.path == "" {
		return ErrNoSource
	}
	return s.Load(s.path)
}

// ReloadIfChanged reloads when a change is pending on changes. It never
// blocks.
func (s *Scene) ReloadIfChanged(changes <-chan struct{}) (bool, error) {
	select {
	case <-changes:
	default:
		return false, nil
	}

	if err := s.Reload(); err != nil {
		s.log.Warn("reload failed, keeping previous mesh", zap.String("path", s.path), zap.Error(err))
		return false, err
	}
	return true, nil
}
