// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// QueryFile is the on-disk representation of a filter query and its results.
// A search can be saved to a file and reloaded later without re-filtering.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores the query constraints in a serializable form.
type QueryParams struct {
	Venues          []string            `yaml:"venues,omitempty"`
	YearFrom        int                 `yaml:"year_from,omitempty"`
	YearTo          int                 `yaml:"year_to,omitempty"`
	Keyword         string              `yaml:"keyword,omitempty"`
	Mode            string              `yaml:"mode,omitempty"`
	Fields          []string            `yaml:"fields,omitempty"`
	IncludeRejected bool                `yaml:"include_rejected,omitempty"`
	KeyFields       map[string][]string `yaml:"key_fields,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its results to a YAML file.
func WriteQueryFile(path string, q Query, results []types.Paper) error {
	qf := QueryFile{
		Query: QueryParams{
			Venues:          q.Venues,
			YearFrom:        q.YearFrom,
			YearTo:          q.YearTo,
			Keyword:         q.Keyword,
			Mode:            string(q.Mode),
			Fields:          q.Fields,
			IncludeRejected: q.IncludeRejected,
			KeyFields:       q.KeyFields,
		},
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	return Query{
		Venues:          p.Venues,
		YearFrom:        p.YearFrom,
		YearTo:          p.YearTo,
		Keyword:         p.Keyword,
		Mode:            MatchMode(p.Mode),
		Fields:          p.Fields,
		IncludeRejected: p.IncludeRejected,
		KeyFields:       p.KeyFields,
	}
}
