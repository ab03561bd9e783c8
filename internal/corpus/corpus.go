// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads paper records produced by the acquisition
// pipeline, from YAML/JSON corpus files or from the pipeline's SQLite
// database.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citegraph/pkg/types"
)

// LoadFile reads a paper corpus from a .yaml, .yml, or .json file
// holding a list of PaperRecords.
func LoadFile(path string) ([]types.PaperRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var papers []types.PaperRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &papers); err != nil {
			return nil, fmt.Errorf("parsing corpus YAML %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &papers); err != nil {
			return nil, fmt.Errorf("parsing corpus JSON %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format %q", filepath.Ext(path))
	}
	return papers, nil
}
