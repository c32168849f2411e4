package decimate

import "github.com/go-gl/mathgl/mgl64"

// degenerateNormal is the squared-length threshold below which a triangle
// normal is considered unusable and the face contributes no quadric.
const degenerateNormal = 1e-12

// Quadric is a Garland-Heckbert error quadric: the symmetric 4x4 matrix
// accumulated from plane outer products, stored packed as
// a11 a12 a13 a14 a22 a23 a24 a33 a34 a44.
type Quadric [10]float64

// PlaneQuadric returns the fundamental quadric Kp of the plane with unit
// normal n and offset d: the outer product of (n.x, n.y, n.z, d) with
// itself.
func PlaneQuadric(n mgl64.Vec3, d float64) Quadric {
	a, b, c := n.X(), n.Y(), n.Z()
	return Quadric{
		a * a, a * b, a * c, a * d,
		b * b, b * c, b * d,
		c * c, c * d,
		d * d,
	}
}

// Add returns the component-wise sum of q and o.
func (q Quadric) Add(o Quadric) Quadric {
	for i := range o {
		q[i] += o[i]
	}
	return q
}

// Error evaluates v'Qv at p in homogeneous coordinates (p padded with 1).
func (q Quadric) Error(p mgl64.Vec3) float64 {
	x, y, z := p.X(), p.Y(), p.Z()
	return q[0]*x*x + 2*q[1]*x*y + 2*q[2]*x*z + 2*q[3]*x +
		q[4]*y*y + 2*q[5]*y*z + 2*q[6]*y +
		q[7]*z*z + 2*q[8]*z +
		q[9]
}

// facePlane derives the plane of triangle (v0, v1, v2): n is the
// normalized cross product of the edge vectors v0→v1 and v0→v2, and
// d = -n·v0. ok is false when the triangle is degenerate.
func facePlane(v0, v1, v2 mgl64.Vec3) (n mgl64.Vec3, d float64, ok bool) {
	n = v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Dot(n) < degenerateNormal {
		return mgl64.Vec3{}, 0, false
	}
	n = n.Normalize()
	return n, -n.Dot(v0), true
}

// faceQuadric returns Kp for f, or the zero quadric if f is degenerate.
func faceQuadric(f *Face) Quadric {
	n, d, ok := facePlane(f.Vertices[0].Position, f.Vertices[1].Position, f.Vertices[2].Position)
	if !ok {
		return Quadric{}
	}
	return PlaneQuadric(n, d)
}

// accumulateQuadrics computes every vertex quadric from a clean zero
// state: the sum of Kp over the faces incident to the vertex.
func accumulateQuadrics(m *Mesh) {
	for _, v := range m.vertices {
		v.Q = Quadric{}
	}
	for _, v := range m.vertices {
		for _, f := range v.Faces {
			v.Q = v.Q.Add(faceQuadric(f))
		}
	}
}

// updateEdgeCost refreshes e's placement and contraction cost. The
// placement sits at the midpoint of the endpoints — this system does not
// solve for the optimal position — and carries the summed endpoint
// quadrics; the cost is the placement's quadric error at that point.
func updateEdgeCost(e *Edge) {
	e.Placement.Position = midpoint(e.V1, e.V2)
	e.Placement.Q = e.V1.Q.Add(e.V2.Q)
	e.Cost = e.Placement.Q.Error(e.Placement.Position)
}

// initEdgeCosts computes the initial contraction cost of every edge.
func initEdgeCosts(m *Mesh) {
	for _, e := range m.edges {
		updateEdgeCost(e)
	}
}
