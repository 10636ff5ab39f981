// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refstrip CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/refstrip/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the input tree when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "refstrip",
	Short: "Extract text from a tree of PDFs, dropping references and acknowledgments",
	Long: `refstrip walks an input directory tree, extracts the text of every PDF,
cuts it at the first references, bibliography, or acknowledgments heading,
and writes it to a mirrored output tree. Each directory's text files go into
a converted_txt/ subdirectory of its counterpart under the output root.

Run without arguments, refstrip reads input/ and writes output/ next to the
bin/ directory holding the executable.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refstrip.yaml or ~/.config/refstrip/refstrip.yaml)")
	rootCmd.PersistentFlags().String("ledger", "", "SQLite file recording each document's outcome (empty disables)")

	rootCmd.Flags().String("input-dir", "", "root of the PDF tree (default: <project>/input)")
	rootCmd.Flags().String("output-dir", "", "root of the text tree (default: <project>/output)")
	rootCmd.Flags().String("marker", types.DefaultMarker, "subdirectory added at every level of the output tree")
	rootCmd.Flags().String("extension", types.DefaultExtension, "extension of the documents to convert, matched case-insensitively")
	rootCmd.Flags().String("backend", string(types.BackendNative), "extraction backend: native or pdftotext")
	rootCmd.Flags().Bool("filter-references", true, "cut each text at its references or acknowledgments heading")

	bindFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))
	bindFlag("input_dir", rootCmd.Flags().Lookup("input-dir"))
	bindFlag("output_dir", rootCmd.Flags().Lookup("output-dir"))
	bindFlag("marker", rootCmd.Flags().Lookup("marker"))
	bindFlag("extension", rootCmd.Flags().Lookup("extension"))
	bindFlag("backend", rootCmd.Flags().Lookup("backend"))
	bindFlag("filter_references", rootCmd.Flags().Lookup("filter-references"))
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refstrip")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refstrip"))
		}
	}

	viper.SetEnvPrefix("REFSTRIP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// projectDir returns the parent of the directory holding the executable.
func projectDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// conversionConfig assembles the run configuration from flags, config file,
// and environment, falling back to <project>/input and <project>/output.
func conversionConfig() (types.ConversionConfig, error) {
	cfg := types.ConversionConfig{
		InputDir:         viper.GetString("input_dir"),
		OutputDir:        viper.GetString("output_dir"),
		Marker:           viper.GetString("marker"),
		Extension:        viper.GetString("extension"),
		Backend:          types.ExtractionBackend(viper.GetString("backend")),
		FilterReferences: viper.GetBool("filter_references"),
		Ledger:           viper.GetString("ledger"),
	}

	if cfg.InputDir == "" || cfg.OutputDir == "" {
		dir, err := projectDir()
		if err != nil {
			return cfg, err
		}
		if cfg.InputDir == "" {
			cfg.InputDir = filepath.Join(dir, "input")
		}
		if cfg.OutputDir == "" {
			cfg.OutputDir = filepath.Join(dir, "output")
		}
	}
	return cfg.Defaults(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
