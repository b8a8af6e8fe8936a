// Package sim parses sim command flags and runs simulation cycles.
package sim

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/mgracey/rapport/internal/dice"
	"github.com/mgracey/rapport/internal/platform/config"
	"github.com/mgracey/rapport/internal/roster"
	"github.com/mgracey/rapport/internal/rules"
	"github.com/mgracey/rapport/internal/session"
	"github.com/mgracey/rapport/internal/storage"
	storesqlite "github.com/mgracey/rapport/internal/storage/sqlite"
)

// Config holds sim command configuration.
type Config struct {
	RulesDir    string `env:"RAPPORT_RULES_DIR"   envDefault:"rules"`
	RosterPath  string `env:"RAPPORT_ROSTER"      envDefault:"roster.json"`
	StorePath   string `env:"RAPPORT_STORE_PATH"`
	Snapshot    string `env:"RAPPORT_SNAPSHOT"    envDefault:"autosave"`
	Seed        int64  `env:"RAPPORT_SEED"`
	Cycles      int    `env:"RAPPORT_CYCLES"      envDefault:"1"`
	Event       string `env:"RAPPORT_EVENT"`
	Domain      string `env:"RAPPORT_DOMAIN"      envDefault:"social"`
	Environment string `env:"RAPPORT_ENVIRONMENT"`
	Tone        string `env:"RAPPORT_TONE"`
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
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "snapshot name to load and save")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "number of event cycles to run")
	fs.StringVar(&cfg.Event, "event", cfg.Event, "event id to run (empty picks random available events)")
	fs.StringVar(&cfg.Domain, "domain", cfg.Domain, "interaction domain")
	fs.StringVar(&cfg.Environment, "environment", cfg.Environment, "environment tag")
	fs.StringVar(&cfg.Tone, "tone", cfg.Tone, "tone tag")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads rules and roster, replays any saved snapshot and executes the
// configured number of event cycles.
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

	sess := session.New(set, characters, session.Options{
		Seed:  seed,
		Store: store,
	})
	log.Printf("seed=%d roster=%d events=%v", seed, len(characters), sess.AvailableEvents())

	if store != nil {
		if err := sess.LoadSnapshot(ctx, cfg.Snapshot); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	for i := 0; i < cfg.Cycles; i++ {
		result, err := runOne(ctx, sess, cfg)
		if err != nil {
			log.Printf("cycle %d/%d skipped: %v", i+1, cfg.Cycles, err)
			continue
		}
		for _, line := range result.Outcome.Effects {
			log.Printf("cycle %d/%d: %s", i+1, cfg.Cycles, line)
		}
	}

	if store != nil {
		return sess.SaveSnapshot(ctx, cfg.Snapshot)
	}
	return nil
}

func runOne(ctx context.Context, sess *session.Session, cfg Config) (*session.CycleResult, error) {
	if cfg.Event != "" {
		return sess.RunEventCycle(ctx, cfg.Event, cfg.Domain, cfg.Environment, cfg.Tone)
	}
	return sess.InjectRandomEvent(ctx, cfg.Domain, cfg.Environment, cfg.Tone)
}
