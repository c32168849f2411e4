package decimate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleOFF = `OFF
3 1 0
0 0 0
1 0 0
0 1 0
3 0 1 2
`

func TestReadOFF(t *testing.T) {
	m, err := ReadOFF(strings.NewReader(triangleOFF))
	require.NoError(t, err)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.NoError(t, m.Validate())
	assert.Equal(t, 1.0, m.Bounds().Dim().X())
}

func TestReadOFFSkipsBlankLines(t *testing.T) {
	padded := "OFF\n\n3 1 0\n\n0 0 0\n1 0 0\n\n0 1 0\n3 0 1 2\n\n"
	m, err := ReadOFF(strings.NewReader(padded))
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
}

func TestReadOFFErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Empty", "", ErrBadMagic},
		{"WrongMagic", "PLY\n3 1 0\n", ErrBadMagic},
		{"MissingCounts", "OFF\n", ErrBadCounts},
		{"ShortCounts", "OFF\n3 1\n", ErrBadCounts},
		{"TextCounts", "OFF\nthree one zero\n", ErrBadCounts},
		{"NegativeCounts", "OFF\n-1 0 0\n", ErrBadCounts},
		{"ShortVertex", "OFF\n1 0 0\n0 0\n", ErrBadVertex},
		{"TextVertex", "OFF\n1 0 0\nx y z\n", ErrBadVertex},
		{"TruncatedVertices", "OFF\n3 0 0\n0 0 0\n", ErrBadVertex},
		{"WrongArity", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n4 0 1 2 0\n", ErrBadFace},
		{"ShortFace", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1\n", ErrBadFace},
		{"IndexOutOfRange", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n", ErrBadFace},
		{"NegativeIndex", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 -1\n", ErrBadFace},
		{"TruncatedFaces", "OFF\n3 2 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n", ErrBadFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOFF(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteOFF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOFF(&buf, TriangleMesh()))

	want := "OFF\n" +
		"3 1 0\n" +
		"0.000000 0.000000 0.000000\n" +
		"1.000000 0.000000 0.000000\n" +
		"0.000000 1.000000 0.000000\n" +
		"3 0 1 2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteOFFCompacts(t *testing.T) {
	m := prepared(TetrahedronMesh())
	require.True(t, collapseEdge(findEdge(m, 0, 1)))

	var buf bytes.Buffer
	require.NoError(t, WriteOFF(&buf, m))

	reread, err := ReadOFF(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, reread.VertexCount())
	assert.Equal(t, 2, reread.FaceCount())
	assert.NoError(t, reread.Validate())
}

func TestWriteOFFLeavesMeshIntact(t *testing.T) {
	m := TetrahedronMesh()

	var buf bytes.Buffer
	require.NoError(t, WriteOFF(&buf, m))

	assert.NoError(t, m.Validate())
	assert.Equal(t, 4, m.VertexCount())
}

func TestOFFRoundTrip(t *testing.T) {
	original := IcosahedronMesh()

	var buf bytes.Buffer
	require.NoError(t, WriteOFF(&buf, original))

	reread, err := ReadOFF(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.VertexCount(), reread.VertexCount())
	assert.Equal(t, original.FaceCount(), reread.FaceCount())
	assert.Equal(t, original.EdgeCount(), reread.EdgeCount())
	assert.NoError(t, reread.Validate())

	// Vertex order is preserved, positions up to the %f precision.
	for i, v := range original.Vertices() {
		w := reread.Vertices()[i]
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, v.Position[axis], w.Position[axis], 1e-6)
		}
	}
}
