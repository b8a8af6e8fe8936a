package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RulesDir != "rules" {
		t.Fatalf("expected default rules dir, got %q", cfg.RulesDir)
	}
	if cfg.StorePath != "" {
		t.Fatalf("expected persistence off by default, got %q", cfg.StorePath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-rules", "/srv/rules", "-store", "/srv/sim.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RulesDir != "/srv/rules" || cfg.StorePath != "/srv/sim.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("RAPPORT_SNAPSHOT", "campaign-7")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Snapshot != "campaign-7" {
		t.Fatalf("expected env snapshot, got %q", cfg.Snapshot)
	}
}
