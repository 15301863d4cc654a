// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dxf2json CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dxf2json/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics (warnings about skipped fields, layers, and
// entities) to stderr; per-file conversion status goes to stdout.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
})

// rootCmd is the base command for the dxf2json CLI.
var rootCmd = &cobra.Command{
	Use:   "dxf2json",
	Short: "Convert DXF drawings to JSON",
	Long: `dxf2json reads an ASCII DXF drawing-exchange file and writes an
equivalent JSON document: header metadata, layer definitions, and the
modelspace entities (lines, circles, arcs, text, polylines, and a generic
attribute dump for everything else).

Conversion is tolerant: a malformed entity degrades to a partial record
with a diagnostic, never a failed run. Only an unreadable document aborts
with a non-zero exit.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dxf2json.yaml or ~/.config/dxf2json/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dxf2json")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dxf2json"))
		}
	}

	viper.SetEnvPrefix("DXF2JSON")
	viper.AutomaticEnv()

	viper.SetDefault("catalog.path", "dxf2json.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into the typed config. An
// unparseable config file is reported once and falls back to defaults.
func loadConfig() types.Config {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Warnf("config: %v", err)
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "dxf2json.db"
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
