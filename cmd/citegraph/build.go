// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citegraph/internal/corpus"
	"github.com/pdiddy/citegraph/internal/engine"
	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/internal/logging"
	"github.com/pdiddy/citegraph/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a knowledge graph from a paper corpus",
	Long: `Build loads a paper corpus from a YAML/JSON file or a corpus SQLite
database, infers relationships, and writes the resulting graph artifact.
When a graph store is configured the build is also mirrored there.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("input", "", "corpus file (.yaml, .yml, or .json)")
	buildCmd.Flags().String("db", "", "corpus SQLite database")
	buildCmd.Flags().String("topic", "", "research topic the graph is built for")
	buildCmd.Flags().String("output", "", "write the artifact to this file (.json or .yaml)")
	buildCmd.Flags().Int64("seed", 0, "fixed random seed for reproducible subsampling")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	dbPath, _ := cmd.Flags().GetString("db")
	topic, _ := cmd.Flags().GetString("topic")
	output, _ := cmd.Flags().GetString("output")

	if topic == "" {
		return fmt.Errorf("a --topic is required")
	}

	papers, err := loadCorpus(cmd, input, dbPath)
	if err != nil {
		return err
	}

	log, err := logging.New("dev")
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	opts := []engine.Option{engine.WithLogger(log)}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		opts = append(opts, engine.WithSeed(seed))
	}

	storeCfg := graphStoreConfig()
	if storeCfg.URI != "" {
		store, err := graphstore.NewNeo4j(cmd.Context(), storeCfg)
		if err != nil {
			return fmt.Errorf("connecting to graph store: %w", err)
		}
		defer store.Close(cmd.Context())
		opts = append(opts, engine.WithStore(store), engine.WithPersistTimeout(storeCfg.Timeout))
	}

	eng := engine.New(engineConfig(), opts...)
	artifact, err := eng.BuildGraph(cmd.Context(), papers, topic)
	if err != nil {
		return err
	}
	eng.Close()

	if output != "" {
		if err := writeArtifact(artifact, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	}

	formatSummary(artifact, cmd.OutOrStdout())
	return nil
}

func loadCorpus(cmd *cobra.Command, input, dbPath string) ([]types.PaperRecord, error) {
	switch {
	case input != "" && dbPath != "":
		return nil, fmt.Errorf("--input and --db are mutually exclusive")
	case input != "":
		return corpus.LoadFile(input)
	case dbPath != "":
		db, err := corpus.OpenDB(dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Papers(cmd.Context())
	default:
		return nil, fmt.Errorf("either --input or --db is required")
	}
}

// writeArtifact marshals the artifact by output extension.
func writeArtifact(artifact types.GraphArtifact, path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(artifact)
	case ".json":
		data, err = json.MarshalIndent(artifact, "", "  ")
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshalling artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// formatSummary writes a human-readable build summary to w.
func formatSummary(artifact types.GraphArtifact, w io.Writer) {
	fmt.Fprintf(w, "Topic:       %s\n", artifact.Topic)
	fmt.Fprintf(w, "Fingerprint: %s\n", artifact.Fingerprint)
	fmt.Fprintf(w, "Nodes:       %d\n", len(artifact.Nodes))
	fmt.Fprintf(w, "Edges:       %d\n", len(artifact.Edges))

	byType := make(map[types.RelationType]int)
	for _, e := range artifact.Edges {
		byType[e.Type]++
	}
	order := []types.RelationType{
		types.RelationCitation, types.RelationAuthor,
		types.RelationContent, types.RelationVenue, types.RelationTemporal,
	}
	for _, typ := range order {
		if byType[typ] > 0 {
			fmt.Fprintf(w, "  %-9s %d\n", typ, byType[typ])
		}
	}
}
