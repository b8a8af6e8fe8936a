// Package mcp parses MCP command flags and serves the simulation over
// stdio.
package mcp

import (
	"context"
	"errors"
	"flag"

	"github.com/mgracey/rapport/internal/dice"
	"github.com/mgracey/rapport/internal/platform/config"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	mcpservice "github.com/mgracey/rapport/internal/services/mcp"
	"github.com/mgracey/rapport/internal/session"
	"github.com/mgracey/rapport/internal/storage"
	storesqlite "github.com/mgracey/rapport/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	RulesDir   string `env:"RAPPORT_RULES_DIR"  envDefault:"rules"`
	RosterPath string `env:"RAPPORT_ROSTER"     envDefault:"roster.json"`
	StorePath  string `env:"RAPPORT_STORE_PATH"`
	Snapshot   string `env:"RAPPORT_SNAPSHOT"   envDefault:"autosave"`
	Seed       int64  `env:"RAPPORT_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RulesDir, "rules", cfg.RulesDir, "directory holding the rule tables")
	fs.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "roster file path")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "sqlite store path (empty disables persistence)")
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "snapshot name to load on startup")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds a session from the configured rules and roster and serves
// it over MCP stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	set, err := rules.LoadDir(cfg.RulesDir)
	if err != nil {
		return err
	}
	characters, err := roster.LoadFile(cfg.RosterPath)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	var store storage.Store
	if cfg.StorePath != "" {
		sqliteStore, err := storesqlite.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	sess := session.New(set, characters, session.Options{Seed: seed, Store: store})
	if store != nil {
		if err := sess.LoadSnapshot(ctx, cfg.Snapshot); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	return mcpservice.NewServer(sess).Serve(ctx)
}
