package decimate

import "fmt"

// ValidationError describes a violated graph invariant.
type ValidationError struct {
	Type    string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", ve.Type, ve.Message)
}

// Validate checks the connectivity invariants of the mesh, restricted to
// non-removed entities:
//
//   - every edge connects two live vertices, appears in V1.Outgoing and
//     V2.Incoming, and each endpoint is cached as the other's neighbor
//   - at most one edge connects any unordered vertex pair
//   - every face has three live vertices, live edges, each of which
//     connects two of the face's vertices, and the incidence is symmetric
//   - removed entities advertise empty incidence sets
//
// Returns nil when all invariants hold.
func (m *Mesh) Validate() error {
	if err := m.validateEdges(); err != nil {
		return err
	}
	if err := m.validateFaces(); err != nil {
		return err
	}
	return m.validateRemoved()
}

func (m *Mesh) validateEdges() error {
	type pair struct{ a, b *Vertex }
	seen := make(map[pair]int, len(m.edges))

	for _, e := range m.edges {
		if e.removed {
			continue
		}
		v1, v2 := e.V1, e.V2
		if v1 == nil || v2 == nil {
			return ValidationError{"Edge", fmt.Sprintf("edge %d has a nil endpoint", e.ID)}
		}
		if v1.removed || v2.removed {
			return ValidationError{"Edge", fmt.Sprintf("edge %d references a removed vertex", e.ID)}
		}
		if v1.Outgoing[e.ID] != e {
			return ValidationError{"Edge", fmt.Sprintf("edge %d missing from vertex %d outgoing set", e.ID, v1.ID)}
		}
		if v2.Incoming[e.ID] != e {
			return ValidationError{"Edge", fmt.Sprintf("edge %d missing from vertex %d incoming set", e.ID, v2.ID)}
		}
		if v1.Neighbors[v2.ID] != v2 || v2.Neighbors[v1.ID] != v1 {
			return ValidationError{"Edge", fmt.Sprintf("edge %d endpoints are not mutual neighbors", e.ID)}
		}

		key := pair{v1, v2}
		if v2.ID < v1.ID {
			key = pair{v2, v1}
		}
		if other, dup := seen[key]; dup {
			return ValidationError{"Edge", fmt.Sprintf("edges %d and %d connect the same vertex pair", other, e.ID)}
		}
		seen[key] = e.ID
	}
	return nil
}

func (m *Mesh) validateFaces() error {
	for _, f := range m.faces {
		if f.removed {
			continue
		}
		if len(f.Vertices) != faceArity {
			return ValidationError{"Face", fmt.Sprintf("face %d has %d vertices", f.ID, len(f.Vertices))}
		}
		onFace := make(map[*Vertex]bool, faceArity)
		for _, v := range f.Vertices {
			if v.removed {
				return ValidationError{"Face", fmt.Sprintf("face %d references removed vertex %d", f.ID, v.ID)}
			}
			if v.Faces[f.ID] != f {
				return ValidationError{"Face", fmt.Sprintf("face %d missing from vertex %d face set", f.ID, v.ID)}
			}
			onFace[v] = true
		}
		for _, e := range f.Edges {
			if e.removed {
				return ValidationError{"Face", fmt.Sprintf("face %d references removed edge %d", f.ID, e.ID)}
			}
			if e.Faces[f.ID] != f {
				return ValidationError{"Face", fmt.Sprintf("face %d missing from edge %d face set", f.ID, e.ID)}
			}
			if !onFace[e.V1] || !onFace[e.V2] {
				return ValidationError{"Face", fmt.Sprintf("edge %d of face %d does not connect two of its vertices", e.ID, f.ID)}
			}
		}
	}
	return nil
}

func (m *Mesh) validateRemoved() error {
	for _, v := range m.vertices {
		if v.removed && (len(v.Faces) > 0 || v.Degree() > 0 || len(v.Neighbors) > 0) {
			return ValidationError{"Removed", fmt.Sprintf("removed vertex %d still has incidences", v.ID)}
		}
	}
	for _, e := range m.edges {
		if e.removed && len(e.Faces) > 0 {
			return ValidationError{"Removed", fmt.Sprintf("removed edge %d still has faces", e.ID)}
		}
	}
	for _, f := range m.faces {
		if f.removed && (len(f.Vertices) > 0 || len(f.Edges) > 0) {
			return ValidationError{"Removed", fmt.Sprintf("removed face %d still has incidences", f.ID)}
		}
	}
	return nil
}
