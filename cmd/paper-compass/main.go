// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-compass CLI.
// See docs/ARCHITECTURE.md § CLI Surface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-compass CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-compass",
	Short: "Browse and filter academic-paper metadata dumps",
	Long: `paper-compass loads per-venue conference dumps (cvpr, iclr, nips, ...)
into an in-memory catalog and answers filter queries over it: venue
selection, year ranges, and case-insensitive keyword search.

The catalog is read-only at runtime. Data refresh happens out-of-band by
replacing the dump files and reloading (restart, or POST /api/reload on
the serve surface).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-compass.yaml or ~/.config/paper-compass/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "root directory of per-venue dumps (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-compass")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-compass"))
		}
	}

	viper.SetEnvPrefix("PAPER_COMPASS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the full configuration from viper, applying defaults
// for anything the config file leaves out.
func loadConfig() types.CompassConfig {
	cfg := types.CompassConfig{
		Catalog: types.CatalogConfig{
			DataDir: viper.GetString("catalog.data_dir"),
		},
		History: types.HistoryConfig{
			DBPath:     viper.GetString("history.db_path"),
			MaxEntries: viper.GetInt("history.max_entries"),
		},
		Server: types.ServerConfig{
			Addr:     viper.GetString("server.addr"),
			LogLevel: viper.GetString("server.log_level"),
		},
	}
	if cfg.Catalog.DataDir == "" {
		cfg.Catalog.DataDir = "data"
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = filepath.Join("history", "compass.db")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "localhost:8385"
	}
	return cfg
}

// dataDir resolves the dump root: flag, then config, then "data".
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	return loadConfig().Catalog.DataDir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
