// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dxf

import (
	"strconv"
)

// Point is a coordinate in drawing units.
type Point struct {
	X, Y, Z float64
}

// Entity is a single drawable object from the ENTITIES section. Tags are
// kept in stream order; the accessors parse values on demand.
type Entity struct {
	Type     string
	tags     []Tag
	vertices []*Entity
}

// Handle returns the entity handle (group 5), or "" when absent.
func (e *Entity) Handle() string {
	s, _ := e.String(5)
	return s
}

// Layer returns the layer name (group 8) and whether it is present.
func (e *Entity) Layer() (string, bool) { return e.String(8) }

func (e *Entity) tag(code int) (Tag, bool) {
	for _, t := range e.tags {
		if t.Code == code {
			return t, true
		}
	}
	return Tag{}, false
}

// String returns the first value for code as a string.
func (e *Entity) String(code int) (string, bool) {
	t, ok := e.tag(code)
	return t.Value, ok
}

// Float parses the first value for code as a float64.
func (e *Entity) Float(code int) (float64, bool) {
	t, ok := e.tag(code)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(t.Value, 64)
	return f, err == nil
}

// Int parses the first value for code as an int.
func (e *Entity) Int(code int) (int, bool) {
	t, ok := e.tag(code)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(t.Value)
	return n, err == nil
}

// Point assembles the coordinate rooted at the base group: base holds X,
// base+10 holds Y, base+20 holds Z. Z defaults to zero; X and Y must both
// be present and parseable.
func (e *Entity) Point(base int) (Point, bool) {
	x, okX := e.Float(base)
	y, okY := e.Float(base + 10)
	if !okX || !okY {
		return Point{}, false
	}
	z, _ := e.Float(base + 20)
	return Point{X: x, Y: y, Z: z}, true
}

// Points2D collects the repeated inline point list of an LWPOLYLINE: each
// group 10 paired with the group 20 that follows it.
func (e *Entity) Points2D() []Point {
	var pts []Point
	for i := 0; i < len(e.tags); i++ {
		if e.tags[i].Code != 10 {
			continue
		}
		x, err := strconv.ParseFloat(e.tags[i].Value, 64)
		if err != nil {
			continue
		}
		for j := i + 1; j < len(e.tags); j++ {
			if e.tags[j].Code == 10 {
				break
			}
			if e.tags[j].Code == 20 {
				if y, err := strconv.ParseFloat(e.tags[j].Value, 64); err == nil {
					pts = append(pts, Point{X: x, Y: y})
				}
				break
			}
		}
	}
	return pts
}

// Vertices returns the VERTEX sub-entities attached to a legacy POLYLINE.
func (e *Entity) Vertices() []*Entity { return e.vertices }

// Attr is one generic entity attribute: the group code as its decimal
// string, and a typed value.
type Attr struct {
	Name  string
	Value any
}

// Attributes flattens the entity's simple tags for types without a typed
// accessor path. Structural and bookkeeping groups are excluded: the type
// marker, handle, layer, subclass and application-group markers, owner and
// reactor pointers, and extended data. Coordinate groups 10-18 fold with
// their Y/Z companions into a single Point; a group that repeats yields an
// ordered list.
func (e *Entity) Attributes() []Attr {
	values := map[int][]any{}
	var order []int
	add := func(code int, v any) {
		if _, ok := values[code]; !ok {
			order = append(order, code)
		}
		values[code] = append(values[code], v)
	}

	for i, t := range e.tags {
		switch {
		case attrExcluded(t.Code):
			continue
		case t.Code >= 20 && t.Code <= 38:
			// Y/Z companions, folded into their X group below.
			continue
		case t.Code >= 10 && t.Code <= 18:
			add(t.Code, e.pointAt(i))
		default:
			v, err := t.typed()
			if err != nil {
				v = t.Value
			}
			add(t.Code, v)
		}
	}

	out := make([]Attr, 0, len(order))
	for _, code := range order {
		vs := values[code]
		if len(vs) == 1 {
			out = append(out, Attr{Name: strconv.Itoa(code), Value: vs[0]})
		} else {
			out = append(out, Attr{Name: strconv.Itoa(code), Value: vs})
		}
	}
	return out
}

// pointAt assembles the coordinate whose X tag sits at index i, pairing it
// with the next Y/Z companions before another X of the same group.
func (e *Entity) pointAt(i int) Point {
	base := e.tags[i].Code
	p := Point{}
	p.X, _ = strconv.ParseFloat(e.tags[i].Value, 64)
	for j := i + 1; j < len(e.tags); j++ {
		c := e.tags[j].Code
		if c == base {
			break
		}
		switch c {
		case base + 10:
			p.Y, _ = strconv.ParseFloat(e.tags[j].Value, 64)
		case base + 20:
			p.Z, _ = strconv.ParseFloat(e.tags[j].Value, 64)
			return p
		}
	}
	return p
}

func attrExcluded(code int) bool {
	switch {
	case code == 0, code == 5, code == 8, code == 105:
		return true
	case code == 100, code == 102:
		return true
	case code >= 330 && code <= 369:
		return true
	case code >= 1000:
		return true
	}
	return false
}
