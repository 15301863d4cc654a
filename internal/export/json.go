// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/dxf2json/internal/dxf"
	"github.com/mesh-intelligence/dxf2json/pkg/types"
)

// Coerce maps a value onto its JSON representation: scalars pass through,
// coordinates become [x, y, z] triples, sequences coerce element-wise, and
// anything else renders as its textual form. This is the serializer's
// single last-resort rule, so writing the document never fails on an
// unexpected value type.
func Coerce(v any) any {
	switch val := v.(type) {
	case nil, bool, string, int, int64, float64:
		return val
	case dxf.Point:
		return []float64{val.X, val.Y, val.Z}
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Coerce(item)
		}
		return out
	default:
		return fmt.Sprintf("%v", val)
	}
}

// WriteJSON writes the drawing as UTF-8 JSON with 2-space indentation.
// Map keys serialize sorted, so repeated conversions of the same input
// are byte-identical.
func WriteJSON(w io.Writer, d *types.Drawing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
