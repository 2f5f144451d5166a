package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphkey/canon"
)

// Config is the optional YAML file given with --config. Command-line flags
// override it field by field.
//
//	search:
//	  max_nodes: 100000
//	  workers: 4
//	  timeout: 30s
//	catalog:
//	  path: ./classes.db
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// SearchConfig bounds each canonicalization.
type SearchConfig struct {
	MaxNodes        int           `yaml:"max_nodes"`
	Workers         int           `yaml:"workers"`
	Timeout         time.Duration `yaml:"timeout"`
	CheckInvariants bool          `yaml:"check_invariants"`
}

// CatalogConfig selects the dedup backend. An empty Path keeps classes in
// memory only.
type CatalogConfig struct {
	Path       string `yaml:"path"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// DefaultConfig is used when no --config is given.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{Workers: 1},
	}
}

// LoadConfig reads path over DefaultConfig. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	if cfg.Search.MaxNodes < 0 || cfg.Search.Workers < 0 || cfg.Search.Timeout < 0 {
		return cfg, errors.Errorf("%s: search limits must be non-negative", path)
	}
	return cfg, nil
}

// options turns the search limits into canon options. The returned cancel
// must be called when the run ends.
func (s SearchConfig) options(parent context.Context) ([]canon.Option, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := parent, context.CancelFunc(func() {})
	if s.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, s.Timeout)
	}
	return []canon.Option{
		canon.WithContext(ctx),
		canon.WithMaxNodes(s.MaxNodes),
		canon.WithParallelism(s.Workers),
		canon.WithInvariantChecks(s.CheckInvariants),
	}, cancel
}
