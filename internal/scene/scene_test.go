package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/flatshade/pkg/models"
)

const oneTriangle = "v 0 0 0\nv 0 1 0\nv 1 0 0\nf 1 2 3\n"

const twoTriangles = "v 0 0 0\nv 0 1 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\nf 2 4 3\n"

func writeModel(t *testing.T, path, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	writeModel(t, path, oneTriangle)

	s := New(nil)
	if s.Mesh() != nil {
		t.Fatal("new scene should have no mesh")
	}
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Mesh().TriangleCount() != 1 {
		t.Errorf("triangles = %d, want 1", s.Mesh().TriangleCount())
	}
	if s.Path() != path {
		t.Errorf("Path() = %s, want %s", s.Path(), path)
	}
}

func TestLoadFailureKeepsMesh(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.obj")
	writeModel(t, good, oneTriangle)

	s := New(nil)
	if err := s.Load(good); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := s.Mesh()

	err := s.Load(filepath.Join(dir, "missing.obj"))
	if !errors.Is(err, models.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
	if s.Mesh() != before || s.Path() != good {
		t.Error("failed load replaced the current mesh")
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.obj")
	writeModel(t, path, oneTriangle)

	s := New(nil)
	if err := s.Reload(); !errors.Is(err, ErrNoSource) {
		t.Errorf("Reload before Load = %v, want ErrNoSource", err)
	}
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	writeModel(t, path, twoTriangles)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Mesh().TriangleCount() != 2 {
		t.Errorf("triangles after reload = %d, want 2", s.Mesh().TriangleCount())
	}

	// A broken edit keeps the last good mesh
	writeModel(t, path, "v 0 0 0\nf 1 2 3\n")
	err := s.Reload()
	if !errors.Is(err, models.ErrFaceIndex) {
		t.Errorf("Reload of broken file = %v, want ErrFaceIndex", err)
	}
	if s.Mesh().TriangleCount() != 2 {
		t.Errorf("triangles after failed reload = %d, want 2", s.Mesh().TriangleCount())
	}
}

func TestReloadIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.obj")
	writeModel(t, path, oneTriangle)

	s := New(nil)
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changes := make(chan struct{}, 1)
	if ok, err := s.ReloadIfChanged(changes); ok || err != nil {
		t.Errorf("no pending change: got (%v, %v)", ok, err)
	}

	writeModel(t, path, twoTriangles)
	changes <- struct{}{}
	if ok, err := s.ReloadIfChanged(changes); !ok || err != nil {
		t.Errorf("pending change: got (%v, %v)", ok, err)
	}
	if s.Mesh().TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", s.Mesh().TriangleCount())
	}

	writeModel(t, path, "v 1 2\n")
	changes <- struct{}{}
	if ok, err := s.ReloadIfChanged(changes); ok || !errors.Is(err, models.ErrMalformed) {
		t.Errorf("broken change: got (%v, %v)", ok, err)
	}
	if s.Mesh().TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2 kept", s.Mesh().TriangleCount())
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.obj")
	writeModel(t, path, oneTriangle)

	w, err := NewWatcher(path)
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	// Siblings are ignored
	writeModel(t, filepath.Join(dir, "other.obj"), oneTriangle)
	select {
	case <-w.Changes():
		t.Fatal("change reported for a sibling file")
	case <-time.After(200 * time.Millisecond):
	}

	writeModel(t, path, twoTriangles)
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "m.obj")); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
