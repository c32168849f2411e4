package decimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepared(m *Mesh) *Mesh {
	accumulateQuadrics(m)
	initEdgeCosts(m)
	return m
}

func TestCollapseTetrahedronEdge(t *testing.T) {
	m := prepared(TetrahedronMesh())
	e := findEdge(m, 0, 1)
	require.NotNil(t, e)

	v1, v2 := e.V1, e.V2
	wantPos := v1.Position.Add(v2.Position).Mul(0.5)
	wantQ := v1.Q.Add(v2.Q)

	require.True(t, collapseEdge(e))

	assert.True(t, v1.Removed())
	assert.False(t, v2.Removed())
	assert.Equal(t, wantPos, v2.Position)
	assert.Equal(t, wantQ, v2.Q)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, 3, m.EdgeCount())

	require.NoError(t, m.Validate())

	// Every surviving face resolves to live vertices, none of them v1.
	for _, f := range m.Faces() {
		if f.Removed() {
			continue
		}
		for _, fv := range f.Vertices {
			assert.False(t, fv.Removed())
			assert.NotSame(t, v1, fv)
		}
	}
}

func TestCollapseTriangle(t *testing.T) {
	m := prepared(TriangleMesh())
	e := findEdge(m, 0, 1)

	require.True(t, collapseEdge(e))

	assert.Equal(t, 2, m.VertexCount())
	assert.Equal(t, 0, m.FaceCount())
	assert.Equal(t, 1, m.EdgeCount())
	require.NoError(t, m.Validate())
}

func TestCollapseRefreshesStarCosts(t *testing.T) {
	m := prepared(IcosahedronMesh())
	e := findEdge(m, 0, 2)
	v2 := e.V2

	require.True(t, collapseEdge(e))

	for _, se := range v2.Outgoing {
		assert.Equal(t, se.V1.Q.Add(se.V2.Q), se.Placement.Q, "edge %d placement is stale", se.ID)
		assert.InDelta(t, se.Placement.Q.Error(se.Placement.Position), se.Cost, 1e-12)
	}
	for _, se := range v2.Incoming {
		assert.Equal(t, se.V1.Q.Add(se.V2.Q), se.Placement.Q, "edge %d placement is stale", se.ID)
		assert.InDelta(t, se.Placement.Q.Error(se.Placement.Position), se.Cost, 1e-12)
	}
}

func TestCollapseIcosahedronEdge(t *testing.T) {
	m := prepared(IcosahedronMesh())
	e := findEdge(m, 0, 2)

	require.True(t, collapseEdge(e))

	// One vertex, two faces, and three edges (the collapsed one plus two
	// duplicates) disappear; the Euler characteristic is preserved.
	assert.Equal(t, 11, m.VertexCount())
	assert.Equal(t, 18, m.FaceCount())
	assert.Equal(t, 27, m.EdgeCount())
	assert.Equal(t, 2, m.EulerCharacteristic())
	require.NoError(t, m.Validate())
}

func TestCollapseDeclinesFacelessEndpoint(t *testing.T) {
	m := prepared(TetrahedronMesh())
	e := findEdge(m, 0, 1)

	for _, f := range faceList(e.V1.Faces) {
		f.remove()
	}

	v, ec, fc := m.VertexCount(), m.EdgeCount(), m.FaceCount()
	assert.False(t, collapseEdge(e))
	assert.Equal(t, v, m.VertexCount())
	assert.Equal(t, ec, m.EdgeCount())
	assert.Equal(t, fc, m.FaceCount())
}

func TestCollapseDeclinesRemovedEdge(t *testing.T) {
	m := prepared(TetrahedronMesh())
	e := findEdge(m, 0, 1)
	e.remove()

	assert.False(t, collapseEdge(e))
}

func TestCollapseTwice(t *testing.T) {
	m := prepared(TetrahedronMesh())

	require.True(t, collapseEdge(findEdge(m, 0, 1)))
	require.NoError(t, m.Validate())

	// The surviving double triangle collapses down to a lone edge.
	second := m.Vertices()[1].MinCostEdge()
	require.NotNil(t, second)
	require.True(t, collapseEdge(second))

	assert.Equal(t, 2, m.VertexCount())
	assert.Equal(t, 0, m.FaceCount())
	assert.Equal(t, 1, m.EdgeCount())
	require.NoError(t, m.Validate())
}

func TestCollapseNilEndpointPanics(t *testing.T) {
	m := prepared(TriangleMesh())
	e := findEdge(m, 0, 1)
	e.V1 = nil

	assert.Panics(t, func() { collapseEdge(e) })
}
