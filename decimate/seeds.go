package decimate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Canonical meshes for tests, benchmarks, and experiments. All of them go
// through NewMesh, so the fixtures double as builder exercises.

// TriangleMesh returns a single triangle: 3 vertices, 1 face, 3 edges.
func TriangleMesh() *Mesh {
	return mustMesh(
		[]mgl64.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		},
		[][3]int{{0, 1, 2}},
	)
}

// TetrahedronMesh returns a regular tetrahedron: 4 vertices, 4 faces,
// 6 edges.
func TetrahedronMesh() *Mesh {
	a := 1.0 / math.Sqrt(3)
	return mustMesh(
		[]mgl64.Vec3{
			{a, a, a},
			{a, -a, -a},
			{-a, a, -a},
			{-a, -a, a},
		},
		[][3]int{
			{0, 1, 2},
			{0, 1, 3},
			{0, 2, 3},
			{1, 2, 3},
		},
	)
}

// CubeMesh returns a cube with each quad split into two triangles:
// 8 vertices, 12 faces, 18 edges.
func CubeMesh() *Mesh {
	return mustMesh(cubeCorners(mgl64.Vec3{}), cubeTriangles(0))
}

// CubeWithIsolatedVertexMesh returns CubeMesh plus a ninth vertex that no
// face references.
func CubeWithIsolatedVertexMesh() *Mesh {
	positions := append(cubeCorners(mgl64.Vec3{}), mgl64.Vec3{3, 0, 0})
	return mustMesh(positions, cubeTriangles(0))
}

// IcosahedronMesh returns a regular icosahedron: 12 vertices, 20 faces,
// 30 edges.
func IcosahedronMesh() *Mesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	return mustMesh(
		[]mgl64.Vec3{
			{0, 1, phi},
			{0, 1, -phi},
			{0, -1, phi},
			{0, -1, -phi},
			{1, phi, 0},
			{1, -phi, 0},
			{-1, phi, 0},
			{-1, -phi, 0},
			{phi, 0, 1},
			{phi, 0, -1},
			{-phi, 0, 1},
			{-phi, 0, -1},
		},
		[][3]int{
			{0, 2, 8}, {0, 8, 4}, {0, 4, 6}, {0, 6, 10}, {0, 10, 2},
			{3, 1, 9}, {3, 9, 5}, {3, 5, 7}, {3, 7, 11}, {3, 11, 1},
			{2, 10, 7}, {2, 7, 5}, {2, 5, 8},
			{8, 5, 9}, {8, 9, 4},
			{4, 9, 1}, {4, 1, 6},
			{6, 1, 11}, {6, 11, 10},
			{10, 11, 7},
		},
	)
}

// DisjointTetrahedraMesh returns two tetrahedra with no shared vertices:
// vertices 0..3 form the first component, 4..7 the second.
func DisjointTetrahedraMesh() *Mesh {
	a := 1.0 / math.Sqrt(3)
	corners := []mgl64.Vec3{
		{a, a, a},
		{a, -a, -a},
		{-a, a, -a},
		{-a, -a, a},
	}

	positions := make([]mgl64.Vec3, 0, 8)
	positions = append(positions, corners...)
	for _, c := range corners {
		positions = append(positions, c.Add(mgl64.Vec3{5, 0, 0}))
	}

	triangles := make([][3]int, 0, 8)
	for _, offset := range []int{0, 4} {
		triangles = append(triangles,
			[3]int{offset, offset + 1, offset + 2},
			[3]int{offset, offset + 1, offset + 3},
			[3]int{offset, offset + 2, offset + 3},
			[3]int{offset + 1, offset + 2, offset + 3},
		)
	}

	return mustMesh(positions, triangles)
}

func cubeCorners(center mgl64.Vec3) []mgl64.Vec3 {
	corners := []mgl64.Vec3{
		{1, 1, 1},
		{1, 1, -1},
		{1, -1, 1},
		{1, -1, -1},
		{-1, 1, 1},
		{-1, 1, -1},
		{-1, -1, 1},
		{-1, -1, -1},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	return corners
}

func cubeTriangles(offset int) [][3]int {
	quads := [][4]int{
		{0, 2, 3, 1},
		{4, 5, 7, 6},
		{0, 1, 5, 4},
		{2, 6, 7, 3},
		{0, 4, 6, 2},
		{1, 3, 7, 5},
	}
	triangles := make([][3]int, 0, 2*len(quads))
	for _, q := range quads {
		triangles = append(triangles,
			[3]int{q[0] + offset, q[1] + offset, q[2] + offset},
			[3]int{q[0] + offset, q[2] + offset, q[3] + offset},
		)
	}
	return triangles
}

func mustMesh(positions []mgl64.Vec3, triangles [][3]int) *Mesh {
	m, err := NewMesh(positions, triangles)
	if err != nil {
		panic(err)
	}
	return m
}
