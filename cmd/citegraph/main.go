// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citegraph CLI, which builds
// and serves knowledge graphs over scholarly paper corpora.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citegraph/internal/secrets"
	"github.com/pdiddy/citegraph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the citegraph CLI.
var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Knowledge-graph assembly over scholarly paper corpora",
	Long: `citegraph infers typed, weighted relationships between papers
(citation, author, venue, content, temporal) and assembles a size-bounded
graph artifact suitable for visualization and querying.

Use "build" for a one-shot graph build from a corpus file or database, or
"serve" to expose the engine over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citegraph.yaml or ~/.config/citegraph/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citegraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citegraph"))
		}
	}

	viper.SetEnvPrefix("CITEGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the engine tunables from config defaults and
// any values set in the config file or environment.
func engineConfig() types.EngineConfig {
	cfg := types.DefaultEngineConfig()
	if viper.IsSet("engine.comparison_budget") {
		cfg.ComparisonBudget = viper.GetInt("engine.comparison_budget")
	}
	if viper.IsSet("engine.venue_keep_rate") {
		cfg.VenueKeepRate = viper.GetFloat64("engine.venue_keep_rate")
	}
	if viper.IsSet("engine.temporal_keep_rate") {
		cfg.TemporalKeepRate = viper.GetFloat64("engine.temporal_keep_rate")
	}
	if viper.IsSet("engine.temporal_edge_cap") {
		cfg.TemporalEdgeCap = viper.GetInt("engine.temporal_edge_cap")
	}
	if viper.IsSet("engine.content_overlap_min") {
		cfg.ContentOverlapMin = viper.GetInt("engine.content_overlap_min")
	}
	if viper.IsSet("engine.edge_budget") {
		cfg.EdgeBudget = viper.GetInt("engine.edge_budget")
	}
	if viper.IsSet("engine.cache_ttl") {
		cfg.CacheTTL = viper.GetDuration("engine.cache_ttl")
	}
	if viper.IsSet("engine.cache_max_entries") {
		cfg.CacheMaxEntries = viper.GetInt("engine.cache_max_entries")
	}
	return cfg
}

// graphStoreConfig assembles graph database settings; credentials fall
// back to the .secrets/ directory.
func graphStoreConfig() types.GraphStoreConfig {
	cfg := types.GraphStoreConfig{
		URI:            viper.GetString("graph_store.uri"),
		Database:       viper.GetString("graph_store.database"),
		Username:       viper.GetString("graph_store.username"),
		Password:       viper.GetString("graph_store.password"),
		MaxConnections: viper.GetInt("graph_store.max_connections"),
		Timeout:        viper.GetDuration("graph_store.timeout"),
	}
	if cfg.Username == "" {
		cfg.Username = loadedSecrets[secrets.KeyGraphStoreUsername]
	}
	if cfg.Password == "" {
		cfg.Password = loadedSecrets[secrets.KeyGraphStorePassword]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
