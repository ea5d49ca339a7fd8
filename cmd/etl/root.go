package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/microplastics-etl/internal/config"
)

var (
	flagInput     string
	flagOutputDir string
	flagWeights   string
)

var rootCmd = &cobra.Command{
	Use:           "etl",
	Short:         "Ocean microplastics metrics pipeline",
	Long:          `etl reads a microplastics sampling table and writes regional contamination, temporal, completeness, diversity and composite risk indices plus visualization datasets as JSON documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&flagInput, "input", "", "source table, .csv, .tsv or .xlsx (overrides INPUT_PATH)")
	f.StringVar(&flagOutputDir, "output-dir", "", "document directory (overrides OUTPUT_DIR)")
	f.StringVar(&flagWeights, "weights", "", "YAML policy weights file (overrides WEIGHTS_FILE)")

	rootCmd.AddCommand(runCmd, serveCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithOverrides(config.Overrides{
		InputPath:   flagInput,
		OutputDir:   flagOutputDir,
		WeightsFile: flagWeights,
	})
}
