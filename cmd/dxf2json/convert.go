package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dxf2json/internal/catalog"
	"github.com/mesh-intelligence/dxf2json/internal/export"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.dxf] [output.json]",
	Short: "Convert a DXF drawing to JSON",
	Long: `Convert parses a DXF file and writes the flattened JSON document.
With no output path, the input's extension is swapped for .json.

Batch modes: --batch converts every .dxf file in a directory; --jobs runs
the conversions listed in a YAML job file. Per-entity problems are logged
as warnings and do not fail the run; an unreadable document does.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	batchDir, _ := cmd.Flags().GetString("batch")
	jobsPath, _ := cmd.Flags().GetString("jobs")
	outDir, _ := cmd.Flags().GetString("out-dir")
	force, _ := cmd.Flags().GetBool("force")
	if outDir == "" {
		outDir = cfg.Convert.OutDir
	}
	if !force {
		force = cfg.Convert.Force
	}

	switch {
	case jobsPath != "":
		jf, err := export.ReadJobFile(jobsPath)
		if err != nil {
			return err
		}
		if jf.OutDir != "" {
			outDir = jf.OutDir
		}
		return runBatch(cmd, jf.Inputs, outDir, force || jf.Force)
	case batchDir != "":
		inputs, err := listDrawings(batchDir)
		if err != nil {
			return err
		}
		return runBatch(cmd, inputs, outDir, force)
	case len(args) == 0:
		return fmt.Errorf("input path required: pass a .dxf file, --batch, or --jobs")
	}

	outputPath := ""
	if len(args) == 2 {
		outputPath = args[1]
	}
	outcome, err := export.ConvertFile(args[0], outputPath, logger, os.Stdout)
	if err != nil {
		return err
	}
	return recordOutcomes(cmd, []export.Outcome{*outcome})
}

func runBatch(cmd *cobra.Command, inputs []string, outDir string, force bool) error {
	result, outcomes := export.ConvertBatch(inputs, outDir, force, logger, os.Stdout)
	if err := recordOutcomes(cmd, outcomes); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d drawing(s) failed conversion", result.Failed)
	}
	return nil
}

// listDrawings returns the .dxf files directly under dir, sorted by name.
func listDrawings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading batch directory: %w", err)
	}
	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".dxf") {
			inputs = append(inputs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no .dxf files in %s", dir)
	}
	return inputs, nil
}

// recordOutcomes appends successful conversions to the catalog when it is
// enabled by flag or config. A catalog problem is logged, not fatal: the
// JSON output is already on disk.
func recordOutcomes(cmd *cobra.Command, outcomes []export.Outcome) error {
	cfg := loadConfig()
	enabled, _ := cmd.Flags().GetBool("catalog")
	if !enabled {
		enabled = cfg.Catalog.Enabled
	}
	if !enabled || len(outcomes) == 0 {
		return nil
	}

	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		logger.Warnf("catalog: %v", err)
		return nil
	}
	defer store.Close()

	for _, o := range outcomes {
		run := catalog.Run{
			Input:    o.InputPath,
			Output:   o.OutputPath,
			Version:  o.Drawing.Metadata.Version,
			Layers:   len(o.Drawing.Layers),
			Entities: len(o.Drawing.Entities),
			Warnings: o.Warnings,
		}
		if _, err := store.Record(context.Background(), run); err != nil {
			logger.Warnf("catalog: %v", err)
		}
	}
	return nil
}

func init() {
	convertCmd.Flags().String("batch", "", "convert every .dxf file in a directory")
	convertCmd.Flags().String("jobs", "", "YAML job file listing inputs to convert")
	convertCmd.Flags().String("out-dir", "", "directory for JSON output (default: next to each input)")
	convertCmd.Flags().Bool("force", false, "overwrite existing JSON outputs in batch mode")
	convertCmd.Flags().Bool("catalog", false, "record the conversion in the catalog database")

	rootCmd.AddCommand(convertCmd)
}
