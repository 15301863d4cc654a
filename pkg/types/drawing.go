// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the JSON output records and shared configuration
// for the dxf2json converter.
package types

// Drawing is the root output record for one converted DXF file. It owns all
// nested structures; nothing below it refers back up.
type Drawing struct {
	// Metadata describes the source document itself.
	Metadata Metadata `json:"metadata"`

	// Layers lists the layer table entries in definition order.
	Layers []LayerRecord `json:"layers"`

	// Entities lists the modelspace entities in document order.
	Entities []EntityRecord `json:"entities"`
}

// Metadata holds document-level fields extracted from the DXF header.
type Metadata struct {
	// Filename is the basename of the input path.
	Filename string `json:"filename"`

	// Version is the raw DXF format version tag (e.g. "AC1027").
	Version string `json:"version"`

	// HeaderVars maps header variable names from the extraction allow-list
	// to their values. Variables absent from the source are omitted; an
	// empty source header yields an empty map, never null.
	HeaderVars map[string]any `json:"header_vars"`
}

// LayerRecord is one layer table entry.
type LayerRecord struct {
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Linetype string `json:"linetype"`

	// IsOn and IsLocked are present only when the source table entry
	// carries the state flags; pre-R12 files may not.
	IsOn     *bool `json:"is_on,omitempty"`
	IsLocked *bool `json:"is_locked,omitempty"`
}

// EntityRecord is one converted entity. Records are polymorphic over the
// entity type tag, so the variant fields live in a plain map; encoding/json
// sorts the keys, which keeps repeated conversions byte-identical.
//
// Common keys: "type", "handle", and "layer" when the entity carries one.
// Typed variants add their geometry fields (start_point, center, radius,
// points, ...); unrecognized types add a best-effort "attributes" map; an
// "error" key collects per-field extraction diagnostics.
type EntityRecord map[string]any

// Type returns the entity type tag, or "" if the record is malformed.
func (r EntityRecord) Type() string {
	s, _ := r["type"].(string)
	return s
}

// Handle returns the entity handle, or "" if the record is malformed.
func (r EntityRecord) Handle() string {
	s, _ := r["handle"].(string)
	return s
}
