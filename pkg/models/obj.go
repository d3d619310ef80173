package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// maxLineSize bounds a single record.
const maxLineSize = 1 << 20

// Load failures. Errors returned by the loader wrap one of these.
var (
	ErrSourceUnavailable = errors.New("mesh source unavailable")
	ErrFaceIndex         = errors.New("face index out of range")
	ErrMalformed         = errors.New("malformed mesh record")
)

// LoadOBJ loads a mesh from a Wavefront-style text file. Only vertex (v)
// and face (f) records are read.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex and face records from r.
//
//	v <x> <y> <z>      vertex, appended to the vertex pool
//	f <i1> <i2> <i3>   face, 1-based indices into the vertices seen so far
//
// Any other record is ignored. Face indices may carry slash suffixes
// ("3/1/2"); only the position index is used. Faces with more than three
// indices are split into a triangle fan.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var verts []math3d.Vec4

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			verts = append(verts, v)

		case "f":
			idx, err := parseFace(fields[1:], len(verts))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.Triangles = append(mesh.Triangles, Triangle{
					P: [3]math3d.Vec4{verts[idx[0]], verts[idx[i]], verts[idx[i+1]]},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w: %w", lineNo+1, ErrMalformed, err)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(args []string) (math3d.Vec4, error) {
	if len(args) < 3 {
		return math3d.Vec4{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrMalformed, len(args))
	}

	var c [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return math3d.Vec4{}, fmt.Errorf("%w: vertex coordinate %q", ErrMalformed, args[i])
		}
		c[i] = f
	}
	return math3d.Point(c[0], c[1], c[2]), nil
}

// parseFace returns zero-based vertex indices, checked against the number
// of vertices defined so far.
func parseFace(args []string, vertCount int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: face needs 3 indices, got %d", ErrMalformed, len(args))
	}

	idx := make([]int, len(args))
	for i, a := range args {
		pos, _, _ := strings.Cut(a, "/")
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: face index %q", ErrMalformed, a)
		}
		if n < 1 || n > vertCount {
			return nil, fmt.Errorf("%w: %d (have %d vertices)", ErrFaceIndex, n, vertCount)
		}
		idx[i] = n - 1
	}
	return idx, nil
}
