package rules

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/mgracey/rapport/internal/errors"
)

func writeRule(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func writeMinimalRules(t *testing.T, dir string) {
	t.Helper()
	writeRule(t, dir, FileEvents, `{
  // social catalog
  "events": {
    "mess_hall_gathering": {"name": "Mess Hall Gathering", "category": "social"}
  }
}`)
	writeRule(t, dir, FileEventRules, `{
  "rules": {
    "mess_hall_gathering": {
      "requires": {"min_count": 2},
      "primary": {"kind": "pair"},
      "derived": [{"relation": "all_present"}]
    }
  }
}`)
	writeRule(t, dir, FileInteractions, `{
  "domains": {
    "social": {
      "friendly_chat": {"roll_type": "2d6", "stages": [{"name": "opening", "profile": "social_grace"}]}
    }
  }
}`)
	writeRule(t, dir, FileEnvironments, `{
  "environments": {
    "mess_hall": {"weight_deltas": {"friendly_chat": 0.5}, "modifiers": {"crowded": -1}}
  }
}`)
	writeRule(t, dir, FileTones, `{
  "tones": {
    "relaxed": {"weight_deltas": {"friendly_chat": 0.25}}
  }
}`)
	writeRule(t, dir, FileProfiles, `{
  "profiles": {
    "social_grace": {"skill": "negotiation", "attribute": "charisma", "attribute_link": 1}
  }
}`)
	writeRule(t, dir, FileOutcomes, `{
  "outcomes": {
    "friendly_chat": {
      "on_success": {"axis_delta": {"friendship": 2}, "descriptions": ["They hit it off."]}
    }
  }
}`)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeMinimalRules(t, dir)

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}

	if set.Events["mess_hall_gathering"].Category != "social" {
		t.Fatalf("unexpected event catalog: %+v", set.Events)
	}
	rule, ok := set.EventRules["mess_hall_gathering"]
	if !ok || rule.Primary.Kind != "pair" || rule.Requires.MinCount != 2 {
		t.Fatalf("unexpected event rule: %+v", rule)
	}
	if _, ok := set.Interactions["social"]["friendly_chat"]; !ok {
		t.Fatalf("missing interaction: %+v", set.Interactions)
	}
	if set.Environments["mess_hall"].WeightDeltas["friendly_chat"] != 0.5 {
		t.Fatalf("unexpected environment table: %+v", set.Environments)
	}
	if set.Profiles["social_grace"].Attribute != "charisma" {
		t.Fatalf("unexpected profile: %+v", set.Profiles)
	}
	if set.Outcomes["friendly_chat"].OnSuccess == nil {
		t.Fatalf("missing outcome tier: %+v", set.Outcomes)
	}
}

func TestLoadDirDefaultsForOptionalTables(t *testing.T) {
	dir := t.TempDir()
	writeMinimalRules(t, dir)

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}

	if len(set.Triggers) != 6 {
		t.Fatalf("expected 6 default trigger schemas, got %d", len(set.Triggers))
	}
	if _, ok := set.Triggers[TriggerTimeSkip]; !ok {
		t.Fatal("missing default TIME_SKIP schema")
	}
	if len(set.Axes) != 5 {
		t.Fatalf("expected 5 default axes, got %d", len(set.Axes))
	}
	if set.AgeBands != nil {
		t.Fatalf("expected no age bands, got %+v", set.AgeBands)
	}
}

func TestLoadDirMissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeMinimalRules(t, dir)
	if err := os.Remove(filepath.Join(dir, FileOutcomes)); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, err := LoadDir(dir)
	if !apperrors.IsCode(err, apperrors.CodeRulesFileMissing) {
		t.Fatalf("expected RULES_FILE_MISSING, got %v", err)
	}
}

func TestLoadDirMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeMinimalRules(t, dir)
	writeRule(t, dir, FileTones, "{broken")

	_, err := LoadDir(dir)
	if !apperrors.IsCode(err, apperrors.CodeRulesFileMalformed) {
		t.Fatalf("expected RULES_FILE_MALFORMED, got %v", err)
	}
}

func TestLoadDirExplicitTriggerAndAxisTables(t *testing.T) {
	dir := t.TempDir()
	writeMinimalRules(t, dir)
	writeRule(t, dir, FileTriggers, `{
  "triggers": {
    "TIME_SKIP": {"fields": {"days_skipped": "integer"}, "sources": ["calendar"]}
  }
}`)
	writeRule(t, dir, FileAxes, `{
  "axes": [
    {"name": "trust", "scope": "relationship", "min": -10, "max": 10}
  ]
}`)

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}
	if len(set.Triggers) != 1 {
		t.Fatalf("expected explicit trigger table, got %+v", set.Triggers)
	}
	if len(set.Axes) != 1 || set.Axes[0].Name != "trust" {
		t.Fatalf("expected explicit axis table, got %+v", set.Axes)
	}
}
