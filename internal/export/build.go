// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export flattens a parsed DXF document into JSON output records:
// document metadata, the layer table, and per-entity geometry with a
// generic attribute fallback for unrecognized types.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/dxf2json/internal/dxf"
	"github.com/mesh-intelligence/dxf2json/pkg/types"
)

// headerAllowList names the header variables copied into the output.
var headerAllowList = []string{"$ACADVER", "$HANDSEED", "$DWGCODEPAGE", "$INSUNITS"}

// builder assembles the output record, counting warnings as it goes.
type builder struct {
	logger   *log.Logger
	warnings int
}

func (b *builder) warnf(format string, args ...any) {
	b.warnings++
	b.logger.Warnf(format, args...)
}

// Build flattens doc into the output record for the drawing at inputPath.
// Extraction is best-effort: a failed header variable or layer is logged
// and skipped, a failed entity field is annotated on its record, and the
// walk itself always completes. The second result is the number of
// warnings raised.
func Build(doc *dxf.Document, inputPath string, logger *log.Logger) (*types.Drawing, int) {
	b := &builder{logger: logger}
	d := &types.Drawing{
		Metadata: types.Metadata{
			Filename:   filepath.Base(inputPath),
			Version:    doc.Version(),
			HeaderVars: b.headerVars(doc),
		},
		Layers:   b.layers(doc),
		Entities: b.entities(doc),
	}
	return d, b.warnings
}

func (b *builder) headerVars(doc *dxf.Document) map[string]any {
	vars := make(map[string]any, len(headerAllowList))
	for _, name := range headerAllowList {
		v, ok := doc.HeaderVar(name)
		if !ok {
			if doc.HasHeaderVar(name) {
				b.warnf("header variable %s has no usable value", name)
			} else {
				b.warnf("header variable %s not present", name)
			}
			continue
		}
		vars[name] = Coerce(v)
	}
	return vars
}

func (b *builder) layers(doc *dxf.Document) []types.LayerRecord {
	src := doc.Layers()
	out := make([]types.LayerRecord, 0, len(src))
	for _, l := range src {
		if l.Name == "" {
			b.warnf("skipping unnamed layer table entry")
			continue
		}
		rec := types.LayerRecord{Name: l.Name, Color: l.Color, Linetype: l.Linetype}
		if l.HasFlags {
			on, locked := l.On(), l.Locked()
			rec.IsOn, rec.IsLocked = &on, &locked
		}
		out = append(out, rec)
	}
	return out
}

func (b *builder) entities(doc *dxf.Document) []types.EntityRecord {
	src := doc.ModelSpace()
	out := make([]types.EntityRecord, 0, len(src))
	for _, e := range src {
		out = append(out, b.entity(e))
	}
	return out
}

// entity dispatches on the type tag and extracts the variant fields. Every
// modelspace entity yields exactly one record; partial-field failures
// degrade to an "error" annotation on the record.
func (b *builder) entity(e *dxf.Entity) types.EntityRecord {
	rec := types.EntityRecord{"type": e.Type, "handle": e.Handle()}
	if layer, ok := e.Layer(); ok {
		rec["layer"] = layer
	}

	f := &fields{entity: e, rec: rec}
	switch e.Type {
	case "LINE":
		f.point("start_point", 10)
		f.point("end_point", 11)
	case "CIRCLE":
		f.point("center", 10)
		f.float("radius", 40)
	case "ARC":
		f.point("center", 10)
		f.float("radius", 40)
		f.float("start_angle", 50)
		f.float("end_angle", 51)
	case "TEXT":
		f.str("text", 1)
		f.point("position", 10)
		f.float("height", 40)
		f.floatDefault("rotation", 50, 0)
	case "POLYLINE", "LWPOLYLINE":
		rec["points"] = polylinePoints(e)
		closed := false
		if flags, ok := e.Int(70); ok {
			closed = flags&1 != 0
		}
		rec["closed"] = closed
	default:
		if attrs := genericAttributes(e); len(attrs) > 0 {
			rec["attributes"] = attrs
		}
	}

	if len(f.errs) > 0 {
		rec["error"] = strings.Join(f.errs, "; ")
		b.warnf("entity %s (%s): %s", e.Handle(), e.Type, rec["error"])
	}
	return rec
}

// fields applies checked extractions to a record: each accessor either
// stores its value or appends a diagnostic, never aborting the record as
// a whole.
type fields struct {
	entity *dxf.Entity
	rec    types.EntityRecord
	errs   []string
}

func (f *fields) point(key string, base int) {
	p, ok := f.entity.Point(base)
	if !ok {
		f.errs = append(f.errs, fmt.Sprintf("missing %s (group %d)", key, base))
		return
	}
	f.rec[key] = []float64{p.X, p.Y, p.Z}
}

func (f *fields) float(key string, code int) {
	v, ok := f.entity.Float(code)
	if !ok {
		f.errs = append(f.errs, fmt.Sprintf("missing %s (group %d)", key, code))
		return
	}
	f.rec[key] = v
}

// floatDefault stores def when the group is absent entirely; DXF omits
// groups whose value equals the default.
func (f *fields) floatDefault(key string, code int, def float64) {
	if _, present := f.entity.String(code); !present {
		f.rec[key] = def
		return
	}
	f.float(key, code)
}

func (f *fields) str(key string, code int) {
	v, ok := f.entity.String(code)
	if !ok {
		f.errs = append(f.errs, fmt.Sprintf("missing %s (group %d)", key, code))
		return
	}
	f.rec[key] = v
}

// polylinePoints extracts the ordered vertex list for the variant at
// hand. LWPOLYLINE carries its 2-D points inline; legacy POLYLINE chains
// 3-D VERTEX sub-entities, and the group 10/20/30 point on the POLYLINE
// itself is only the elevation placeholder, never geometry. A variant
// with no points yields an empty list, not a failed entity.
func polylinePoints(e *dxf.Entity) [][]float64 {
	pts := [][]float64{}
	if e.Type == "LWPOLYLINE" {
		for _, p := range e.Points2D() {
			pts = append(pts, []float64{p.X, p.Y})
		}
		return pts
	}
	for _, v := range e.Vertices() {
		p, ok := v.Point(10)
		if !ok {
			continue
		}
		pts = append(pts, []float64{p.X, p.Y, p.Z})
	}
	return pts
}

// genericAttributes is the fallback projection for entity types without a
// typed path: every simple attribute the entity exposes, keyed by group
// code, with values passed through Coerce. Nil when nothing is extractable.
func genericAttributes(e *dxf.Entity) map[string]any {
	attrs := e.Attributes()
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Name] = Coerce(a.Value)
	}
	return out
}
