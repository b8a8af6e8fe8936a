package sim

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RulesDir != "rules" {
		t.Fatalf("expected default rules dir, got %q", cfg.RulesDir)
	}
	if cfg.Cycles != 1 {
		t.Fatalf("expected 1 cycle, got %d", cfg.Cycles)
	}
	if cfg.Snapshot != "autosave" {
		t.Fatalf("expected autosave snapshot, got %q", cfg.Snapshot)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-cycles", "5", "-seed", "42", "-event", "tavern_night"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Cycles != 5 || cfg.Seed != 42 || cfg.Event != "tavern_night" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("RAPPORT_DOMAIN", "training")
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Domain != "training" {
		t.Fatalf("expected env domain, got %q", cfg.Domain)
	}
}
