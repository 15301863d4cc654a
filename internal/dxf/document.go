// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dxf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Document is a parsed drawing: header variables, the layer table, and the
// ENTITIES section in document order.
type Document struct {
	header   map[string][]Tag
	layers   []Layer
	entities []*Entity
}

// Layer is one entry from the LAYER table.
type Layer struct {
	Name     string
	Color    int // negated while the layer is off
	Linetype string
	Flags    int

	// HasFlags reports whether the entry carried a group 70 state word;
	// very old files omit it.
	HasFlags bool
}

// On reports whether the layer is visible. DXF encodes "off" by negating
// the color value.
func (l Layer) On() bool { return l.Color >= 0 }

// Locked reports whether the layer is locked (state bit 4).
func (l Layer) Locked() bool { return l.Flags&4 != 0 }

// ReadFile opens and parses the drawing at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening drawing %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing drawing %s: %w", path, err)
	}
	return doc, nil
}

// Read parses an ASCII DXF stream. Unknown sections and tables are
// skipped; a malformed tag stream is a fatal parse error. A missing EOF
// marker is tolerated.
func Read(r io.Reader) (*Document, error) {
	s := newScanner(r)
	doc := &Document{header: map[string][]Tag{}}

	for {
		t, err := s.next()
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		if err != nil {
			return nil, err
		}
		if t.Code != 0 {
			continue
		}
		switch t.Value {
		case "EOF":
			return doc, nil
		case "SECTION":
			name, err := nextIn(s)
			if err != nil {
				return nil, err
			}
			if name.Code != 2 {
				return nil, fmt.Errorf("SECTION marker not followed by a name tag (got group %d)", name.Code)
			}
			switch name.Value {
			case "HEADER":
				err = doc.readHeader(s)
			case "TABLES":
				err = doc.readTables(s)
			case "ENTITIES":
				err = doc.readEntities(s)
			default:
				err = skipTo(s, "ENDSEC")
			}
			if err != nil {
				return nil, fmt.Errorf("reading %s section: %w", name.Value, err)
			}
		}
	}
}

// nextIn wraps scanner.next for use inside a section, where running out of
// input means the section is unterminated.
func nextIn(s *scanner) (Tag, error) {
	t, err := s.next()
	if errors.Is(err, io.EOF) {
		return Tag{}, errors.New("unexpected end of file")
	}
	return t, err
}

// skipTo discards tags up to and including the group 0 marker with the
// given value (ENDSEC or ENDTAB).
func skipTo(s *scanner, marker string) error {
	for {
		t, err := nextIn(s)
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == marker {
			return nil
		}
	}
}

func (d *Document) readHeader(s *scanner) error {
	var name string
	for {
		t, err := nextIn(s)
		if err != nil {
			return err
		}
		switch {
		case t.Code == 0 && t.Value == "ENDSEC":
			return nil
		case t.Code == 9:
			name = t.Value
			if _, ok := d.header[name]; !ok {
				d.header[name] = nil
			}
		case name != "":
			d.header[name] = append(d.header[name], t)
		}
	}
}

func (d *Document) readTables(s *scanner) error {
	for {
		t, err := nextIn(s)
		if err != nil {
			return err
		}
		if t.Code != 0 {
			continue
		}
		switch t.Value {
		case "ENDSEC":
			return nil
		case "TABLE":
			name, err := nextIn(s)
			if err != nil {
				return err
			}
			if name.Code != 2 {
				return fmt.Errorf("TABLE marker not followed by a name tag (got group %d)", name.Code)
			}
			if name.Value == "LAYER" {
				err = d.readLayerTable(s)
			} else {
				err = skipTo(s, "ENDTAB")
			}
			if err != nil {
				return fmt.Errorf("reading %s table: %w", name.Value, err)
			}
		}
	}
}

func (d *Document) readLayerTable(s *scanner) error {
	var cur *Layer
	for {
		t, err := nextIn(s)
		if err != nil {
			return err
		}
		if t.Code == 0 {
			switch t.Value {
			case "ENDTAB":
				return nil
			case "LAYER":
				// 7 (white) is the color when the entry omits group 62.
				d.layers = append(d.layers, Layer{Color: 7})
				cur = &d.layers[len(d.layers)-1]
			default:
				cur = nil
			}
			continue
		}
		if cur == nil {
			continue
		}
		switch t.Code {
		case 2:
			cur.Name = t.Value
		case 6:
			cur.Linetype = t.Value
		case 62:
			if c, err := strconv.Atoi(t.Value); err == nil {
				cur.Color = c
			}
		case 70:
			if f, err := strconv.Atoi(t.Value); err == nil {
				cur.Flags = f
				cur.HasFlags = true
			}
		}
	}
}

func (d *Document) readEntities(s *scanner) error {
	for {
		t, err := nextIn(s)
		if err != nil {
			return err
		}
		if t.Code != 0 {
			continue
		}
		if t.Value == "ENDSEC" {
			return nil
		}
		e, err := readEntity(s, t.Value)
		if err != nil {
			return err
		}
		if e.Type == "POLYLINE" {
			if err := readVertices(s, e); err != nil {
				return err
			}
		}
		d.entities = append(d.entities, e)
	}
}

// readEntity collects tags until the next group 0 marker, which is pushed
// back for the caller.
func readEntity(s *scanner, typ string) (*Entity, error) {
	e := &Entity{Type: typ}
	for {
		t, err := s.next()
		if errors.Is(err, io.EOF) {
			return e, nil
		}
		if err != nil {
			return nil, err
		}
		if t.Code == 0 {
			s.unread(t)
			return e, nil
		}
		e.tags = append(e.tags, t)
	}
}

// readVertices attaches the VERTEX chain following a legacy POLYLINE to its
// owner, consuming the closing SEQEND. A chain cut short by another entity
// type ends the polyline there.
func readVertices(s *scanner, owner *Entity) error {
	for {
		t, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if t.Code != 0 {
			continue
		}
		switch t.Value {
		case "VERTEX":
			v, err := readEntity(s, "VERTEX")
			if err != nil {
				return err
			}
			owner.vertices = append(owner.vertices, v)
		case "SEQEND":
			_, err := readEntity(s, "SEQEND")
			return err
		default:
			s.unread(t)
			return nil
		}
	}
}

// HeaderVar returns the value of the named header variable ("$ACADVER",
// "$INSUNITS", ...). Scalar variables yield a string, int, float64, or
// bool according to their group-code class; coordinate variables yield a
// Point. The second result is false when the variable is absent or
// carries no usable value.
func (d *Document) HeaderVar(name string) (any, bool) {
	tags, ok := d.header[name]
	if !ok || len(tags) == 0 {
		return nil, false
	}
	if tags[0].Code >= 10 && tags[0].Code <= 19 {
		p := Point{}
		for _, t := range tags {
			v, err := strconv.ParseFloat(t.Value, 64)
			if err != nil {
				continue
			}
			switch (t.Code / 10) % 10 {
			case 1:
				p.X = v
			case 2:
				p.Y = v
			case 3:
				p.Z = v
			}
		}
		return p, true
	}
	v, err := tags[0].typed()
	if err != nil {
		// Unparseable numeric value; hand back the raw text.
		return tags[0].Value, true
	}
	return v, true
}

// HasHeaderVar reports whether the header names the variable at all, even
// if it carries no value tags.
func (d *Document) HasHeaderVar(name string) bool {
	_, ok := d.header[name]
	return ok
}

// Version returns the raw $ACADVER value (e.g. "AC1027"), or "" when the
// header omits it.
func (d *Document) Version() string {
	v, ok := d.HeaderVar("$ACADVER")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Layers returns the layer table entries in definition order.
func (d *Document) Layers() []Layer { return d.layers }

// Entities returns every entity from the ENTITIES section.
func (d *Document) Entities() []*Entity { return d.entities }

// ModelSpace returns the entities that belong to modelspace. Entities with
// the paperspace flag set (group 67) are excluded.
func (d *Document) ModelSpace() []*Entity {
	out := make([]*Entity, 0, len(d.entities))
	for _, e := range d.entities {
		if v, ok := e.Int(67); ok && v != 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}
