package decimate

import (
	"fmt"
	"testing"
)

func BenchmarkNewMesh(b *testing.B) {
	benchmarks := []struct {
		name string
		mesh func() *Mesh
	}{
		{"Tetrahedron", TetrahedronMesh},
		{"Cube", CubeMesh},
		{"Icosahedron", IcosahedronMesh},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = bm.mesh()
			}
		})
	}
}

func BenchmarkAccumulateQuadrics(b *testing.B) {
	m := IcosahedronMesh()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		accumulateQuadrics(m)
	}
}

func BenchmarkEdgeCosts(b *testing.B) {
	m := IcosahedronMesh()
	accumulateQuadrics(m)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		initEdgeCosts(m)
	}
}

func BenchmarkCollapseEdge(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := prepared(IcosahedronMesh())
		e := findEdge(m, 0, 2)
		b.StartTimer()

		collapseEdge(e)
	}
}

func BenchmarkSimplify(b *testing.B) {
	for _, workers := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("Workers%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				m := IcosahedronMesh()
				b.StartTimer()

				if _, err := Simplify(m, 0.5, Options{Workers: workers, Seed: 1}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
