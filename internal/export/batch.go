// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// BatchResult holds the outcome counts of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of drawings processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any drawings failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts each input in order, writing outputs to outDir (or
// next to each input when outDir is empty). Inputs whose output already
// exists are skipped unless force is set; one failed input does not stop
// the rest. Per-file status lines and a summary go to w.
func ConvertBatch(inputs []string, outDir string, force bool, logger *log.Logger, w io.Writer) (BatchResult, []Outcome) {
	var result BatchResult
	var outcomes []Outcome

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  creating %s (%v)\n", outDir, err)
			result.Failed = len(inputs)
			return result, nil
		}
	}

	for _, in := range inputs {
		outPath := DefaultOutputPath(in)
		if outDir != "" {
			base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			outPath = filepath.Join(outDir, base+".json")
		}

		if !force {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(w, "skipped: %s (already exists)\n", filepath.Base(in))
				result.Skipped++
				continue
			}
		}

		outcome, err := ConvertFile(in, outPath, logger, w)
		if err != nil {
			result.Failed++
			continue
		}
		result.Converted++
		outcomes = append(outcomes, *outcome)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, outcomes
}
