package state

import (
	"context"
	"fmt"
)

const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
	BackendS3     = "s3"
)

// Config selects and parameterizes a backend
type Config struct {
	Backend         string `yaml:"backend"`
	Dir             string `yaml:"dir"`  // dir and pebble backends
	Path            string `yaml:"path"` // sqlite database file
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"` // optional, falls back to the default credentials chain
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Open returns the backend selected by cfg
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Backend {
	case BackendDir, "":
		return NewDir(cfg.Dir)
	case BackendSQLite:
		return NewSQLite(ctx, cfg.Path)
	case BackendPebble:
		return NewPebble(cfg.Dir)
	case BackendS3:
		return NewS3(ctx, cfg)
	}
	return nil, fmt.Errorf("state.Open: unknown backend %q", cfg.Backend)
}
