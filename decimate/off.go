package decimate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const offMagic = "OFF"

// Static errors for the OFF format boundary. Callers map these to their
// own failure reporting (the CLI turns them into exit codes).
var (
	ErrBadMagic  = errors.New("decimate: missing OFF header")
	ErrBadCounts = errors.New("decimate: malformed counts line")
	ErrBadVertex = errors.New("decimate: malformed vertex line")
	ErrBadFace   = errors.New("decimate: malformed face line")
)

// ReadOFF parses an ASCII OFF mesh: the "OFF" magic line, a counts line
// (vertex, face, edge — the edge count is ignored), one coordinate triple
// per vertex, and one face record per face consisting of the arity (which
// must be 3) followed by 0-based vertex indices. Blank lines are skipped.
func ReadOFF(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line, ok := nextLine(sc)
	if !ok || !strings.HasPrefix(line, offMagic) {
		return nil, ErrBadMagic
	}

	line, ok = nextLine(sc)
	if !ok {
		return nil, ErrBadCounts
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadCounts, line)
	}
	nv, errV := strconv.Atoi(fields[0])
	nf, errF := strconv.Atoi(fields[1])
	_, errE := strconv.Atoi(fields[2])
	if errV != nil || errF != nil || errE != nil || nv < 0 || nf < 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadCounts, line)
	}

	positions := make([]mgl64.Vec3, nv)
	for i := 0; i < nv; i++ {
		line, ok = nextLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d vertices, got %d", ErrBadVertex, nv, i)
		}
		fields = strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrBadVertex, line)
		}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadVertex, line)
			}
			positions[i][j] = c
		}
	}

	triangles := make([][3]int, nf)
	for i := 0; i < nf; i++ {
		line, ok = nextLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d faces, got %d", ErrBadFace, nf, i)
		}
		fields = strings.Fields(line)
		if len(fields) != faceArity+1 {
			return nil, fmt.Errorf("%w: %q", ErrBadFace, line)
		}
		arity, err := strconv.Atoi(fields[0])
		if err != nil || arity != faceArity {
			return nil, fmt.Errorf("%w: %q", ErrBadFace, line)
		}
		for j := 0; j < faceArity; j++ {
			idx, err := strconv.Atoi(fields[j+1])
			if err != nil || idx < 0 || idx >= nv {
				return nil, fmt.Errorf("%w: %q", ErrBadFace, line)
			}
			triangles[i][j] = idx
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	mesh, err := NewMesh(positions, triangles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFace, err)
	}
	return mesh, nil
}

// LoadOFF reads an OFF mesh from path.
func LoadOFF(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOFF(f)
}

// WriteOFF writes m in OFF format, compacted: removed vertices and faces
// are dropped, surviving vertices get contiguous indices, and faces with
// fewer than three surviving vertices are skipped. The edge count field is
// written as 0. The mesh itself is left untouched.
func WriteOFF(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	live := make([]*Vertex, 0, len(m.vertices))
	index := make(map[*Vertex]int, len(m.vertices))
	for _, v := range m.vertices {
		if !v.removed {
			index[v] = len(live)
			live = append(live, v)
		}
	}

	faces := make([]*Face, 0, len(m.faces))
	for _, f := range m.faces {
		if !f.removed && len(f.Vertices) == faceArity {
			faces = append(faces, f)
		}
	}

	fmt.Fprintf(bw, "%s\n", offMagic)
	fmt.Fprintf(bw, "%d %d %d\n", len(live), len(faces), 0)

	for _, v := range live {
		fmt.Fprintf(bw, "%f %f %f\n", v.Position.X(), v.Position.Y(), v.Position.Z())
	}

	for _, f := range faces {
		fmt.Fprintf(bw, "%d %d %d %d\n", faceArity,
			index[f.Vertices[0]], index[f.Vertices[1]], index[f.Vertices[2]])
	}

	return bw.Flush()
}

// SaveOFF writes m to path in OFF format.
func SaveOFF(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOFF(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// nextLine returns the next non-blank, whitespace-trimmed line.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}
