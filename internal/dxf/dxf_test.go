// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dxf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doc joins group-code/value pairs into an ASCII DXF stream.
func doc(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

const sampleDXF = `999
drawn by hand for the reader tests
0
SECTION
2
HEADER
9
$ACADVER
1
AC1027
9
$INSUNITS
70
4
9
$HANDSEED
5
20000
0
ENDSEC
0
SECTION
2
TABLES
0
TABLE
2
LTYPE
0
LTYPE
2
CONTINUOUS
0
ENDTAB
0
TABLE
2
LAYER
70
2
0
LAYER
2
0
62
7
6
CONTINUOUS
70
0
0
LAYER
2
Walls
62
-3
6
DASHED
70
4
0
ENDTAB
0
ENDSEC
0
SECTION
2
ENTITIES
0
LINE
5
1A
8
0
10
0.0
20
0.0
30
0.0
11
10.0
21
0.0
31
0.0
0
CIRCLE
5
1B
8
Walls
10
5.0
20
5.0
30
0.0
40
2.5
0
EOF
`

func TestRead_Sample(t *testing.T) {
	d, err := Read(strings.NewReader(sampleDXF))
	require.NoError(t, err)

	v, ok := d.HeaderVar("$ACADVER")
	require.True(t, ok)
	assert.Equal(t, "AC1027", v)
	assert.Equal(t, "AC1027", d.Version())

	units, ok := d.HeaderVar("$INSUNITS")
	require.True(t, ok)
	assert.Equal(t, 4, units)

	seed, ok := d.HeaderVar("$HANDSEED")
	require.True(t, ok)
	assert.Equal(t, "20000", seed)

	_, ok = d.HeaderVar("$EXTMIN")
	assert.False(t, ok)
	assert.False(t, d.HasHeaderVar("$EXTMIN"))

	layers := d.Layers()
	require.Len(t, layers, 2)
	assert.Equal(t, "0", layers[0].Name)
	assert.Equal(t, 7, layers[0].Color)
	assert.Equal(t, "CONTINUOUS", layers[0].Linetype)
	assert.True(t, layers[0].On())
	assert.False(t, layers[0].Locked())

	assert.Equal(t, "Walls", layers[1].Name)
	assert.Equal(t, -3, layers[1].Color)
	assert.False(t, layers[1].On())
	assert.True(t, layers[1].Locked())
	assert.True(t, layers[1].HasFlags)

	entities := d.Entities()
	require.Len(t, entities, 2)

	line := entities[0]
	assert.Equal(t, "LINE", line.Type)
	assert.Equal(t, "1A", line.Handle())
	layer, ok := line.Layer()
	require.True(t, ok)
	assert.Equal(t, "0", layer)

	start, ok := line.Point(10)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0, Z: 0}, start)
	end, ok := line.Point(11)
	require.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 0, Z: 0}, end)

	circle := entities[1]
	assert.Equal(t, "CIRCLE", circle.Type)
	radius, ok := circle.Float(40)
	require.True(t, ok)
	assert.Equal(t, 2.5, radius)
}

func TestRead_HeaderPointVariable(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "HEADER",
		"9", "$EXTMIN", "10", "-1.5", "20", "-2.5", "30", "0.0",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	v, ok := d.HeaderVar("$EXTMIN")
	require.True(t, ok)
	assert.Equal(t, Point{X: -1.5, Y: -2.5, Z: 0}, v)
}

func TestRead_HeaderVarWithoutValue(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "HEADER",
		"9", "$DWGCODEPAGE",
		"9", "$ACADVER", "1", "AC1015",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	assert.True(t, d.HasHeaderVar("$DWGCODEPAGE"))
	_, ok := d.HeaderVar("$DWGCODEPAGE")
	assert.False(t, ok)
}

func TestRead_ModelSpaceExcludesPaperspace(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "POINT", "5", "A1", "67", "1", "10", "0", "20", "0",
		"0", "POINT", "5", "A2", "10", "1", "20", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	require.Len(t, d.Entities(), 2)
	msp := d.ModelSpace()
	require.Len(t, msp, 1)
	assert.Equal(t, "A2", msp[0].Handle())
}

func TestRead_PolylineVertexChain(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "POLYLINE", "5", "B0", "8", "0", "70", "1",
		"10", "0.0", "20", "0.0", "30", "2.5",
		"0", "VERTEX", "5", "B1", "10", "0.0", "20", "0.0", "30", "0.0",
		"0", "VERTEX", "5", "B2", "10", "4.0", "20", "0.0", "30", "0.0",
		"0", "VERTEX", "5", "B3", "10", "4.0", "20", "3.0", "30", "1.0",
		"0", "SEQEND", "5", "B4",
		"0", "LINE", "5", "C1", "10", "0", "20", "0", "30", "0", "11", "1", "21", "1", "31", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	entities := d.Entities()
	require.Len(t, entities, 2)

	pl := entities[0]
	require.Equal(t, "POLYLINE", pl.Type)
	verts := pl.Vertices()
	require.Len(t, verts, 3)
	p, ok := verts[2].Point(10)
	require.True(t, ok)
	assert.Equal(t, Point{X: 4, Y: 3, Z: 1}, p)

	// The elevation placeholder stays on the POLYLINE itself, separate
	// from the vertex chain.
	require.Len(t, pl.Points2D(), 1)
	elev, ok := pl.Point(10)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0, Z: 2.5}, elev)

	flags, ok := pl.Int(70)
	require.True(t, ok)
	assert.Equal(t, 1, flags&1)

	assert.Equal(t, "LINE", entities[1].Type)
}

func TestEntity_Points2D(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LWPOLYLINE", "5", "D0", "90", "3", "70", "1",
		"10", "0.0", "20", "0.0",
		"10", "5.0", "20", "0.0",
		"10", "5.0", "20", "5.0",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	require.Len(t, d.Entities(), 1)
	pts := d.Entities()[0].Points2D()
	require.Len(t, pts, 3)
	assert.Equal(t, Point{X: 5, Y: 0}, pts[1])
}

func TestEntity_Attributes(t *testing.T) {
	// An ELLIPSE has no typed accessor path; its simple tags surface as
	// generic attributes with bookkeeping groups stripped.
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "ELLIPSE",
		"5", "E0",
		"8", "Walls",
		"100", "AcDbEllipse",
		"330", "1F",
		"10", "1.0", "20", "2.0", "30", "0.0",
		"11", "3.0", "21", "0.0", "31", "0.0",
		"40", "0.5",
		"62", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	attrs := d.Entities()[0].Attributes()
	byName := map[string]any{}
	for _, a := range attrs {
		byName[a.Name] = a.Value
	}

	assert.Equal(t, Point{X: 1, Y: 2, Z: 0}, byName["10"])
	assert.Equal(t, Point{X: 3, Y: 0, Z: 0}, byName["11"])
	assert.Equal(t, 0.5, byName["40"])
	assert.Equal(t, 1, byName["62"])

	// Handle, layer, subclass marker, and owner pointer stay out.
	assert.NotContains(t, byName, "5")
	assert.NotContains(t, byName, "8")
	assert.NotContains(t, byName, "100")
	assert.NotContains(t, byName, "330")
}

func TestEntity_AttributesRepeatedGroup(t *testing.T) {
	d, err := Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES",
		"0", "LEADER",
		"10", "0.0", "20", "0.0",
		"10", "1.0", "20", "1.0",
		"0", "ENDSEC",
		"0", "EOF",
	)))
	require.NoError(t, err)

	attrs := d.Entities()[0].Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "10", attrs[0].Name)
	assert.Equal(t, []any{Point{X: 0, Y: 0}, Point{X: 1, Y: 1}}, attrs[0].Value)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "truncated mid-tag",
			input: "0\nSECTION\n2\nHEADER\n9",
		},
		{
			name:  "non-numeric group code",
			input: "0\nSECTION\nbogus\nHEADER\n",
		},
		{
			name:  "unterminated section",
			input: doc("0", "SECTION", "2", "ENTITIES", "0", "LINE", "10", "0", "20", "0"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestRead_EmptyAndMissingEOF(t *testing.T) {
	d, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d.Entities())
	assert.Empty(t, d.Layers())

	// A stream ending cleanly without the EOF marker is tolerated.
	d, err = Read(strings.NewReader(doc(
		"0", "SECTION", "2", "ENTITIES", "0", "ENDSEC",
	)))
	require.NoError(t, err)
	assert.Empty(t, d.Entities())
}

func TestReadFile_MissingPath(t *testing.T) {
	_, err := ReadFile("does/not/exist.dxf")
	assert.Error(t, err)
}
