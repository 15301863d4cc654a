// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dxf2json/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the conversion history",
	Long: `Catalog manages the local SQLite database of past conversions.
Runs are recorded by "convert --catalog" (or catalog.enabled in the
config file). Use subcommands to list runs, show one run, or export
the full history to YAML.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %8s  %8s\n",
		"ID", "When", "Input", "Entities", "Warnings")
	for _, r := range runs {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %8d  %8d\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), input, r.Entities, r.Warnings)
	}
	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded conversion as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <output.yaml>",
	Short: "Export the full conversion history to YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ExportYAML(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Exported to", args[0])
		return nil
	},
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = loadConfig().Catalog.Path
	}
	return catalog.Open(path)
}

func init() {
	catalogCmd.PersistentFlags().String("db", "", "catalog database file (default: catalog.path from config, or dxf2json.db)")

	catalogListCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	catalogListCmd.Flags().Bool("json", false, "output runs as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
