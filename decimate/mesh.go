// Package decimate implements mesh simplification by iterative edge
// collapse, driven by the Garland-Heckbert quadric error metric.
//
// The mesh is a connectivity graph of vertices, edges, and faces. Incidence
// sets are maps keyed by entity ID; the mesh owns all entities through its
// slices, and the sets hold non-owning references. Destructive operations
// mark entities removed and detach them from their peers instead of
// deallocating, so external references stay valid for the duration of a
// simplification pass.
package decimate

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// faceArity is the vertex count of every face in this system. Only
// triangle meshes are supported.
const faceArity = 3

// AABB is an axis-aligned bounding volume.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// newAABB returns an empty volume: minima at +MaxFloat64 and maxima at
// -MaxFloat64, so that the first Grow establishes real bounds.
func newAABB() AABB {
	return AABB{
		Min: mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// Grow extends the volume to contain p.
func (b *AABB) Grow(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Dim returns the extent of the volume along each axis.
func (b AABB) Dim() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Vertex is a mesh vertex: a position, the accumulated error quadric, and
// the incidence sets that tie it into the connectivity graph. Outgoing
// holds the edges where this vertex is the first endpoint, Incoming the
// edges where it is the second. Neighbors caches the far endpoints of all
// incident edges; the vertex itself is never a member.
type Vertex struct {
	ID       int
	Position mgl64.Vec3
	Q        Quadric

	Faces     map[int]*Face
	Outgoing  map[int]*Edge
	Incoming  map[int]*Edge
	Neighbors map[int]*Vertex

	removed bool
}

func newVertex(id int, pos mgl64.Vec3) *Vertex {
	return &Vertex{
		ID:        id,
		Position:  pos,
		Faces:     make(map[int]*Face),
		Outgoing:  make(map[int]*Edge),
		Incoming:  make(map[int]*Edge),
		Neighbors: make(map[int]*Vertex),
	}
}

// Removed reports whether the vertex has been removed from the graph.
func (v *Vertex) Removed() bool { return v.removed }

// HasFaces reports whether any face is incident to the vertex.
func (v *Vertex) HasFaces() bool { return len(v.Faces) > 0 }

// Degree returns the number of edges incident to the vertex.
func (v *Vertex) Degree() int { return len(v.Outgoing) + len(v.Incoming) }

func (v *Vertex) addOutgoing(e *Edge) {
	v.Outgoing[e.ID] = e
	v.Neighbors[e.V2.ID] = e.V2
}

func (v *Vertex) addIncoming(e *Edge) {
	v.Incoming[e.ID] = e
	v.Neighbors[e.V1.ID] = e.V1
}

func (v *Vertex) removeOutgoing(e *Edge) {
	delete(v.Outgoing, e.ID)
	delete(v.Neighbors, e.V2.ID)
}

func (v *Vertex) removeIncoming(e *Edge) {
	delete(v.Incoming, e.ID)
	delete(v.Neighbors, e.V1.ID)
}

// remove marks the vertex removed and empties its incidence sets. It does
// not detach the vertex from peers; callers are expected to have removed
// or rerouted the incident edges and faces first. Idempotent.
func (v *Vertex) remove() {
	if v.removed {
		return
	}
	v.Faces = make(map[int]*Face)
	v.Outgoing = make(map[int]*Edge)
	v.Incoming = make(map[int]*Edge)
	v.Neighbors = make(map[int]*Vertex)
	v.removed = true
}

// MinCostEdge returns the non-removed incident edge with the lowest
// contraction cost, or nil if the vertex has no live edges.
func (v *Vertex) MinCostEdge() *Edge {
	var best *Edge
	for _, e := range v.Outgoing {
		if !e.removed && (best == nil || e.Cost < best.Cost) {
			best = e
		}
	}
	for _, e := range v.Incoming {
		if !e.removed && (best == nil || e.Cost < best.Cost) {
			best = e
		}
	}
	return best
}

// Face is a triangle: an ordered vertex list plus the set of its bounding
// edges.
type Face struct {
	ID       int
	Vertices []*Vertex
	Edges    map[int]*Edge

	removed bool
}

func newFace(id int) *Face {
	return &Face{
		ID:       id,
		Vertices: make([]*Vertex, 0, faceArity),
		Edges:    make(map[int]*Edge),
	}
}

// Removed reports whether the face has been removed from the graph.
func (f *Face) Removed() bool { return f.removed }

// replaceVertex substitutes to for from in the face's ordered vertex list.
func (f *Face) replaceVertex(from, to *Vertex) {
	for i, v := range f.Vertices {
		if v == from {
			f.Vertices[i] = to
		}
	}
}

// remove detaches the face from every incident vertex and edge, empties
// its own lists, and marks it removed. Idempotent.
func (f *Face) remove() {
	if f.removed {
		return
	}
	for _, v := range f.Vertices {
		delete(v.Faces, f.ID)
	}
	f.Vertices = nil
	for _, e := range f.Edges {
		delete(e.Faces, f.ID)
	}
	f.Edges = make(map[int]*Edge)
	f.removed = true
}

// Placement is the proposed contraction target of an edge: the position
// the merged vertex would take and the quadric it would carry.
type Placement struct {
	Position mgl64.Vec3
	Q        Quadric
}

// Edge connects two vertices. Endpoints are canonicalized at insertion so
// that V1.ID < V2.ID; rerouting during a collapse may break that ordering,
// which is fine as long as incidence symmetry holds (the edge stays in
// V1.Outgoing and V2.Incoming). Interior edges have two incident faces,
// boundary edges one.
type Edge struct {
	ID     int
	V1, V2 *Vertex

	Cost      float64
	Placement Placement
	Faces     map[int]*Face

	removed bool
}

func newEdge(id int, v1, v2 *Vertex) *Edge {
	e := &Edge{
		ID:    id,
		V1:    v1,
		V2:    v2,
		Faces: make(map[int]*Face),
	}
	e.Placement.Position = midpoint(v1, v2)
	return e
}

// Removed reports whether the edge has been removed from the graph.
func (e *Edge) Removed() bool { return e.removed }

// setV1 reroutes the edge's first endpoint to v, keeping the far
// endpoint's neighbor cache and the placement position current.
func (e *Edge) setV1(v *Vertex) {
	if w := e.V2; w != nil {
		delete(w.Neighbors, e.V1.ID)
		w.Neighbors[v.ID] = v
	}
	e.V1 = v
	e.Placement.Position = midpoint(e.V1, e.V2)
}

// setV2 reroutes the edge's second endpoint to v, symmetric to setV1.
func (e *Edge) setV2(v *Vertex) {
	if w := e.V1; w != nil {
		delete(w.Neighbors, e.V2.ID)
		w.Neighbors[v.ID] = v
	}
	e.V2 = v
	e.Placement.Position = midpoint(e.V1, e.V2)
}

// remove detaches the edge from both endpoints and from every incident
// face, empties its face set, and marks it removed. Idempotent.
func (e *Edge) remove() {
	if e.removed {
		return
	}
	e.V1.removeOutgoing(e)
	e.V2.removeIncoming(e)
	for _, f := range e.Faces {
		delete(f.Edges, e.ID)
	}
	e.Faces = make(map[int]*Face)
	e.removed = true
}

func midpoint(v1, v2 *Vertex) mgl64.Vec3 {
	return v1.Position.Add(v2.Position).Mul(0.5)
}

// Mesh owns all vertices, edges, and faces of a triangle mesh. The slices
// retain removed entities until write-out; traversals skip them.
type Mesh struct {
	vertices []*Vertex
	edges    []*Edge
	faces    []*Face
	bounds   AABB
}

// Vertices returns the owning vertex slice, including removed entries.
func (m *Mesh) Vertices() []*Vertex { return m.vertices }

// Edges returns the owning edge slice, including removed entries.
func (m *Mesh) Edges() []*Edge { return m.edges }

// Faces returns the owning face slice, including removed entries.
func (m *Mesh) Faces() []*Face { return m.faces }

// Bounds returns the bounding volume accumulated while the mesh was built.
func (m *Mesh) Bounds() AABB { return m.bounds }

// VertexCount returns the number of non-removed vertices.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, v := range m.vertices {
		if !v.removed {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of non-removed edges.
func (m *Mesh) EdgeCount() int {
	n := 0
	for _, e := range m.edges {
		if !e.removed {
			n++
		}
	}
	return n
}

// FaceCount returns the number of non-removed faces.
func (m *Mesh) FaceCount() int {
	n := 0
	for _, f := range m.faces {
		if !f.removed {
			n++
		}
	}
	return n
}

// EulerCharacteristic returns V - E + F over the non-removed entities.
// Closed manifold meshes of genus 0 yield 2.
func (m *Mesh) EulerCharacteristic() int {
	return m.VertexCount() - m.EdgeCount() + m.FaceCount()
}

// Stats returns a one-line summary of the live entity counts.
func (m *Mesh) Stats() string {
	return fmt.Sprintf("V=%d, E=%d, F=%d, χ=%d",
		m.VertexCount(), m.EdgeCount(), m.FaceCount(), m.EulerCharacteristic())
}

// edgeList snapshots an incidence map into a slice so callers can mutate
// the map while iterating.
func edgeList(edges map[int]*Edge) []*Edge {
	list := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		list = append(list, e)
	}
	return list
}

// faceList snapshots an incidence map into a slice, like edgeList.
func faceList(faces map[int]*Face) []*Face {
	list := make([]*Face, 0, len(faces))
	for _, f := range faces {
		list = append(list, f)
	}
	return list
}
