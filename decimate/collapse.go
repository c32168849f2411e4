package decimate

// collapseEdge contracts e = (v1, v2) into v2: v1 dies, v2 moves to the
// edge's placement and absorbs v1's quadric, and everything incident to v1
// is rerouted to v2. Returns whether the collapse happened.
//
// The operator is best-effort: if either endpoint has no faces left, or
// the edge is already removed, it declines without mutating the graph.
//
// Every connectivity mutation lands on the two endpoints, their incident
// edges and faces, or the far endpoints of those edges — all inside the
// claimed one-ring of Simplify's conflict protocol — which is what makes
// lock-free graph access safe. The final cost refresh additionally reads
// quadrics and rewrites costs on the rim of the ring; concurrent refreshes
// of a shared rim edge can interleave there, which only perturbs the
// heuristic edge ordering, never the connectivity.
func collapseEdge(e *Edge) bool {
	return collapseEdgeInto(e, e.V1)
}

// collapseEdgeInto is collapseEdge with an explicit dying endpoint. The
// parallel driver passes its claimed candidate here: rewiring walks the
// dying vertex's star, so the dying side must be the one whose one-ring
// the caller owns.
func collapseEdgeInto(e *Edge, dying *Vertex) bool {
	if e.V1 == nil || e.V2 == nil {
		panic("decimate: collapse on edge with nil endpoint")
	}
	v1, v2 := e.V1, e.V2
	if dying == v2 {
		v1, v2 = v2, v1
	} else if dying != v1 {
		panic("decimate: collapse target is not an endpoint")
	}
	if e.removed || !v1.HasFaces() || !v2.HasFaces() {
		return false
	}

	// The triangles sharing e vanish, then e itself.
	for _, f := range faceList(e.Faces) {
		f.remove()
	}
	e.remove()

	// v2 absorbs the contraction target.
	v2.Position = e.Placement.Position
	v2.Q = v1.Q.Add(v2.Q)

	// Map each current neighbor of v2 to the edge connecting them. Edges
	// of v1 whose far endpoint shows up here would become duplicates after
	// rerouting: each was the third side of one of the deleted triangles.
	neighborEdge := make(map[*Vertex]*Edge, len(v2.Incoming)+len(v2.Outgoing))
	for _, ie := range v2.Incoming {
		neighborEdge[ie.V1] = ie
	}
	for _, oe := range v2.Outgoing {
		neighborEdge[oe.V2] = oe
	}

	// Reroute v1's incoming edges to v2, dropping duplicates.
	var dups []*Edge
	for _, ie := range edgeList(v1.Incoming) {
		if ie.removed {
			continue
		}
		if _, ok := neighborEdge[ie.V1]; ok {
			dups = append(dups, ie)
			continue
		}
		ie.setV2(v2)
		v2.addIncoming(ie)
	}

	// Same for the outgoing edges.
	for _, oe := range edgeList(v1.Outgoing) {
		if oe.removed {
			continue
		}
		if _, ok := neighborEdge[oe.V2]; ok {
			dups = append(dups, oe)
			continue
		}
		oe.setV1(v2)
		v2.addOutgoing(oe)
	}

	// Removal is deferred until after the passes: it mutates v1's
	// incidence maps.
	for _, d := range dups {
		d.remove()
	}

	// Retarget v1's surviving faces. A face that lost a side to duplicate
	// removal gets the kept v2 edge between the same vertices back.
	for _, f := range faceList(v1.Faces) {
		if f.removed {
			continue
		}
		if len(f.Edges) < faceArity {
			for _, fv := range f.Vertices {
				if ne, ok := neighborEdge[fv]; ok && !ne.removed {
					f.Edges[ne.ID] = ne
					ne.Faces[f.ID] = f
				}
			}
		}
		f.replaceVertex(v1, v2)
		v2.Faces[f.ID] = f
	}

	v1.remove()

	// Refresh contraction costs across the enlarged star of v2.
	for _, oe := range v2.Outgoing {
		if !oe.removed {
			updateEdgeCost(oe)
		}
	}
	for _, ie := range v2.Incoming {
		if !ie.removed {
			updateEdgeCost(ie)
		}
	}

	return true
}
