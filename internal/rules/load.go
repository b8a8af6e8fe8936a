package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mgracey/rapport/internal/axis"
	apperrors "github.com/mgracey/rapport/internal/errors"
	"github.com/mgracey/rapport/internal/platform/config"
)

// Rule file names within a rules directory.
const (
	FileEvents       = "events.json"
	FileEventRules   = "event_rules.json"
	FileAgeBands     = "age_bands.json"
	FileInteractions = "interactions.json"
	FileEnvironments = "environments.json"
	FileTones        = "tones.json"
	FileProfiles     = "profiles.json"
	FileOutcomes     = "outcomes.json"
	FileTriggers     = "triggers.json"
	FileAxes         = "axes.json"
)

type eventsFile struct {
	Events map[string]Event `json:"events"`
}

type eventRulesFile struct {
	Rules map[string]EventRule `json:"rules"`
}

type ageBandsFile struct {
	Bands []AgeBand `json:"bands"`
}

type interactionsFile struct {
	Domains map[string]map[string]Interaction `json:"domains"`
}

type environmentsFile struct {
	Environments map[string]ModifierTable `json:"environments"`
}

type tonesFile struct {
	Tones map[string]ModifierTable `json:"tones"`
}

type profilesFile struct {
	Profiles map[string]ResolutionProfile `json:"profiles"`
}

type outcomesFile struct {
	Outcomes map[string]OutcomeTable `json:"outcomes"`
}

type triggersFile struct {
	Triggers map[string]TriggerSchema `json:"triggers"`
}

type axesFile struct {
	Axes []axis.Definition `json:"axes"`
}

// LoadDir loads every rule table from dir. Required files that are missing
// or malformed fail the whole load; no partially-loaded set is returned.
// The axis-definition and trigger-schema tables fall back to their
// documented defaults when their files are absent, and the age-band table
// to an empty list.
func LoadDir(dir string) (*Set, error) {
	set := &Set{}

	var events eventsFile
	if err := loadRequired(dir, FileEvents, &events); err != nil {
		return nil, err
	}
	set.Events = events.Events

	var eventRules eventRulesFile
	if err := loadRequired(dir, FileEventRules, &eventRules); err != nil {
		return nil, err
	}
	set.EventRules = eventRules.Rules

	var bands ageBandsFile
	if err := loadOptional(dir, FileAgeBands, &bands); err != nil {
		return nil, err
	}
	set.AgeBands = bands.Bands

	var interactions interactionsFile
	if err := loadRequired(dir, FileInteractions, &interactions); err != nil {
		return nil, err
	}
	set.Interactions = interactions.Domains

	var environments environmentsFile
	if err := loadRequired(dir, FileEnvironments, &environments); err != nil {
		return nil, err
	}
	set.Environments = environments.Environments

	var tones tonesFile
	if err := loadRequired(dir, FileTones, &tones); err != nil {
		return nil, err
	}
	set.Tones = tones.Tones

	var profiles profilesFile
	if err := loadRequired(dir, FileProfiles, &profiles); err != nil {
		return nil, err
	}
	set.Profiles = profiles.Profiles

	var outcomes outcomesFile
	if err := loadRequired(dir, FileOutcomes, &outcomes); err != nil {
		return nil, err
	}
	set.Outcomes = outcomes.Outcomes

	var triggers triggersFile
	found, err := loadIfPresent(dir, FileTriggers, &triggers)
	if err != nil {
		return nil, err
	}
	if found {
		set.Triggers = triggers.Triggers
	} else {
		set.Triggers = DefaultTriggerSchemas()
	}

	var axes axesFile
	found, err = loadIfPresent(dir, FileAxes, &axes)
	if err != nil {
		return nil, err
	}
	if found {
		set.Axes = axes.Axes
	} else {
		set.Axes = axis.DefaultDefinitions()
	}

	return set, nil
}

func loadRequired(dir, name string, target any) error {
	path := filepath.Join(dir, name)
	if err := config.LoadJSONC(path, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.Wrap(apperrors.CodeRulesFileMissing,
				fmt.Sprintf("required rule file %s is missing", name), err)
		}
		return apperrors.Wrap(apperrors.CodeRulesFileMalformed,
			fmt.Sprintf("rule file %s is malformed", name), err)
	}
	return nil
}

// loadOptional tolerates a missing file and leaves target zero-valued.
func loadOptional(dir, name string, target any) error {
	_, err := loadIfPresent(dir, name, target)
	return err
}

func loadIfPresent(dir, name string, target any) (bool, error) {
	path := filepath.Join(dir, name)
	if err := config.LoadJSONC(path, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.CodeRulesFileMalformed,
			fmt.Sprintf("rule file %s is malformed", name), err)
	}
	return true, nil
}
