// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"path/filepath"

	"github.com/mesh-intelligence/dxf2json/internal/dxf"
)

// Summary describes a drawing without converting it.
type Summary struct {
	Filename string         `json:"filename" yaml:"filename"`
	Version  string         `json:"version" yaml:"version"`
	Layers   int            `json:"layers" yaml:"layers"`
	Entities int            `json:"entities" yaml:"entities"`
	ByType   map[string]int `json:"by_type" yaml:"by_type"`
}

// Summarize tallies the layer table and modelspace contents of the drawing
// at path.
func Summarize(path string) (*Summary, error) {
	doc, err := dxf.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entities := doc.ModelSpace()
	s := &Summary{
		Filename: filepath.Base(path),
		Version:  doc.Version(),
		Layers:   len(doc.Layers()),
		Entities: len(entities),
		ByType:   map[string]int{},
	}
	for _, e := range entities {
		s.ByType[e.Type]++
	}
	return s, nil
}
