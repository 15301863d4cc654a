package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dxf2json/internal/export"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.dxf>",
	Short: "Summarize a DXF drawing without converting it",
	Long: `Inspect parses a drawing and prints its format version, layer count,
and per-type entity counts for the modelspace.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	summary, err := export.Summarize(args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	version := summary.Version
	if version == "" {
		version = "(unknown)"
	}
	fmt.Printf("%s\n", summary.Filename)
	fmt.Printf("  version:  %s\n", version)
	fmt.Printf("  layers:   %d\n", summary.Layers)
	fmt.Printf("  entities: %d\n", summary.Entities)

	entityTypes := make([]string, 0, len(summary.ByType))
	for t := range summary.ByType {
		entityTypes = append(entityTypes, t)
	}
	sort.Strings(entityTypes)
	for _, t := range entityTypes {
		fmt.Printf("    %-12s %d\n", t, summary.ByType[t])
	}
	return nil
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(inspectCmd)
}
