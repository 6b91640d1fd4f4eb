// Package runconfig loads evolutionary run hyperparameters from an INI
// file: a struct tagged with `ini:"..."`, loaded via a section MapTo,
// then clamped and validated.
package runconfig

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"acovea/internal/evo"
	"acovea/internal/runner"
)

// Raw mirrors the [ga] section of a run config file before clamping.
type Raw struct {
	PopSize            int     `ini:"pop_size"`
	NumPopulations     int     `ini:"num_populations"`
	Generations        int     `ini:"generations"`
	EliteCount         int     `ini:"elite_count"`
	TruncationFraction float64 `ini:"truncation_fraction"`
	MutationRate       float64 `ini:"mutation_rate"`
	CrossoverRate      float64 `ini:"crossover_rate"`
	MigrantCount       int     `ini:"migrant_count"`
	MigrationInterval  int     `ini:"migration_interval"`
	Mode               string  `ini:"mode"`
	Seed               int64   `ini:"seed"`
	SigmaScaling       bool    `ini:"sigma_scaling"`
}

// Load reads an INI file's [ga] section into clamped Hyperparameters plus
// the sigma-scaling flag, which evo.New takes separately.
func Load(path string) (evo.Hyperparameters, bool, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return evo.Hyperparameters{}, false, fmt.Errorf("loading run config %q: %w", path, err)
	}

	var raw Raw
	if err := cfg.Section("ga").MapTo(&raw); err != nil {
		return evo.Hyperparameters{}, false, fmt.Errorf("mapping [ga] section: %w", err)
	}

	mode, err := parseMode(raw.Mode)
	if err != nil {
		return evo.Hyperparameters{}, false, err
	}

	hyper := evo.Hyperparameters{
		PopulationSize:     raw.PopSize,
		NumPopulations:     raw.NumPopulations,
		Generations:        raw.Generations,
		EliteCount:         raw.EliteCount,
		TruncationFraction: raw.TruncationFraction,
		MutationRate:       raw.MutationRate,
		CrossoverRate:      raw.CrossoverRate,
		MigrantCount:       raw.MigrantCount,
		MigrationInterval:  raw.MigrationInterval,
		Mode:               mode,
		Seed:               raw.Seed,
	}.Clamp()

	return hyper, raw.SigmaScaling, nil
}

func parseMode(s string) (runner.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "speed":
		return runner.ModeSpeed, nil
	case "size":
		return runner.ModeSize, nil
	case "retval":
		return runner.ModeRetval, nil
	default:
		return 0, fmt.Errorf("unknown fitness mode %q", s)
	}
}
