package decimate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrVertexIndex is returned by NewMesh when a triangle references a
// vertex outside the coordinate list.
var ErrVertexIndex = errors.New("decimate: triangle references vertex out of range")

// NewMesh builds the connectivity graph from vertex coordinates and
// triangle vertex-index triples.
//
// Vertices receive identifiers 0..N-1 in input order. Each triangle
// becomes a face linked to its three vertices, and each of its three
// vertex pairs becomes an edge, canonicalized so that the endpoint with
// the smaller identifier comes first. Whether a pair is already connected
// is decided by scanning the smaller vertex's outgoing edges, which makes
// edge insertion O(deg(v)) per triangle side — acceptable for the one-time
// build.
func NewMesh(positions []mgl64.Vec3, triangles [][3]int) (*Mesh, error) {
	m := &Mesh{
		vertices: make([]*Vertex, len(positions)),
		faces:    make([]*Face, 0, len(triangles)),
		bounds:   newAABB(),
	}

	for i, p := range positions {
		m.vertices[i] = newVertex(i, p)
		m.bounds.Grow(p)
	}

	for fi, tri := range triangles {
		f := newFace(fi)
		for _, vi := range tri {
			if vi < 0 || vi >= len(m.vertices) {
				return nil, fmt.Errorf("%w: triangle %d, vertex %d", ErrVertexIndex, fi, vi)
			}
			v := m.vertices[vi]
			f.Vertices = append(f.Vertices, v)
			v.Faces[f.ID] = f
		}
		m.faces = append(m.faces, f)
	}

	eid := 0
	corners := make([]*Vertex, faceArity)
	for _, f := range m.faces {
		copy(corners, f.Vertices)
		sort.Slice(corners, func(i, j int) bool { return corners[i].ID < corners[j].ID })

		for _, pair := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			v1, v2 := corners[pair[0]], corners[pair[1]]

			e := findOutgoing(v1, v2)
			if e == nil {
				e = newEdge(eid, v1, v2)
				eid++
				v1.addOutgoing(e)
				v2.addIncoming(e)
				m.edges = append(m.edges, e)
			}
			e.Faces[f.ID] = f
			f.Edges[e.ID] = e
		}
	}

	return m, nil
}

// findOutgoing scans v1's outgoing edges for the one whose far endpoint is
// v2, or returns nil.
func findOutgoing(v1, v2 *Vertex) *Edge {
	for _, e := range v1.Outgoing {
		if e.V2 == v2 {
			return e
		}
	}
	return nil
}
