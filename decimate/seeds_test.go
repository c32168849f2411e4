package decimate

import "testing"

func TestSeedMeshes(t *testing.T) {
	tests := []struct {
		name    string
		mesh    func() *Mesh
		v, e, f int
		euler   int
	}{
		{"Triangle", TriangleMesh, 3, 3, 1, 1},
		{"Tetrahedron", TetrahedronMesh, 4, 6, 4, 2},
		{"Cube", CubeMesh, 8, 18, 12, 2},
		{"CubeWithIsolatedVertex", CubeWithIsolatedVertexMesh, 9, 18, 12, 3},
		{"Icosahedron", IcosahedronMesh, 12, 30, 20, 2},
		{"DisjointTetrahedra", DisjointTetrahedraMesh, 8, 12, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.mesh()

			if got := m.VertexCount(); got != tt.v {
				t.Errorf("vertex count = %d, want %d", got, tt.v)
			}
			if got := m.EdgeCount(); got != tt.e {
				t.Errorf("edge count = %d, want %d", got, tt.e)
			}
			if got := m.FaceCount(); got != tt.f {
				t.Errorf("face count = %d, want %d", got, tt.f)
			}
			if got := m.EulerCharacteristic(); got != tt.euler {
				t.Errorf("Euler characteristic = %d, want %d", got, tt.euler)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("invalid fixture: %v", err)
			}
		})
	}
}

func TestDisjointTetrahedraBlocks(t *testing.T) {
	m := DisjointTetrahedraMesh()

	// The first four vertices form one component, the last four the
	// other; the parallel driver's block split at T=2 relies on it.
	for _, v := range m.Vertices()[:4] {
		for id := range v.Neighbors {
			if id >= 4 {
				t.Errorf("vertex %d has a neighbor %d in the second component", v.ID, id)
			}
		}
	}
	if got := countComponents(m); got != 2 {
		t.Errorf("component count = %d, want 2", got)
	}
}
