// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/dxf2json/internal/dxf"
	"github.com/mesh-intelligence/dxf2json/pkg/types"
)

// Outcome describes one completed conversion.
type Outcome struct {
	Drawing    *types.Drawing
	InputPath  string
	OutputPath string
	Warnings   int
}

// DefaultOutputPath derives the JSON output path from the input path by
// swapping the extension for .json.
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
}

// ConvertFile runs one conversion: parse the drawing at inputPath, flatten
// it, and write the JSON document to outputPath (derived from inputPath
// when empty). One status line goes to w. A document-level failure returns
// nil and the error; record-level problems surface only as warnings.
func ConvertFile(inputPath, outputPath string, logger *log.Logger, w io.Writer) (*Outcome, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}

	doc, err := dxf.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(inputPath), err)
		return nil, err
	}

	drawing, warnings := Build(doc, inputPath, logger)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, drawing); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(inputPath), err)
		return nil, fmt.Errorf("encoding %s: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(inputPath), err)
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	if warnings > 0 {
		fmt.Fprintf(w, "converted: %s -> %s (%d entities, %d warnings)\n",
			filepath.Base(inputPath), outputPath, len(drawing.Entities), warnings)
	} else {
		fmt.Fprintf(w, "converted: %s -> %s (%d entities)\n",
			filepath.Base(inputPath), outputPath, len(drawing.Entities))
	}

	return &Outcome{
		Drawing:    drawing,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Warnings:   warnings,
	}, nil
}
