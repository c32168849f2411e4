// Package decimate reduces the triangle count of 3D polygonal meshes using
// the Quadric Error Metrics (QEM) criterion of Garland and Heckbert.
//
// Given a triangle mesh and a reduction fraction f in [0, 1), the simplifier
// iteratively contracts the edges whose contraction introduces the least
// accumulated quadric error, until roughly f of the original vertices have
// been removed.
//
// # Basic Usage
//
// Load an OFF mesh, simplify it, and save the result:
//
//	mesh, err := decimate.LoadOFF("bunny.off")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := decimate.Simplify(mesh, 0.5, decimate.Options{Workers: 4})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s after %d collapse(s)\n", mesh.Stats(), result.Collapsed)
//
//	if err := decimate.SaveOFF("bunny.simplified.off", mesh); err != nil {
//		log.Fatal(err)
//	}
//
// # Mesh Representation
//
// Meshes are connectivity graphs: vertices, edges, and faces that reference
// each other through incidence sets. Simplification mutates the graph in
// place; entities are marked removed rather than deallocated, and the mesh
// is compacted when it is written back out.
//
// # Parallel Simplification
//
// With Options.Workers > 1 the vertex array is partitioned into contiguous
// blocks, one per worker. Workers pick candidate vertices at random within
// their block and claim the candidate's one-ring in a shared
// active-neighborhood set before collapsing, so that two concurrent
// collapses never change the connectivity of overlapping regions of the
// graph. See Simplify for
// the details of the protocol.
//
// # Fixtures
//
// The package ships a handful of canonical meshes (TetrahedronMesh,
// IcosahedronMesh, ...) that are convenient for experiments and tests.
package decimate
