package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/footmark/pkg/config"
)

const envVarPrefix = "FOOTMARK_"

// envSetting binds one FOOTMARK_* variable to a config field.
type envSetting struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, name, raw string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envSetting{
	{
		suffix: "FLAVOR", field: "flavor",
		description: "Reference parser flavor: commonmark or gfm",
		apply: func(cfg *config.Config, _, raw string) error {
			cfg.Flavor = config.Flavor(raw)
			return nil
		},
	},
	{
		suffix: "FORMAT", field: "format",
		description: "Output format: text, json or yaml",
		apply: func(cfg *config.Config, _, raw string) error {
			cfg.Format = config.OutputFormat(raw)
			return nil
		},
	},
	{
		suffix: "IGNORE", field: "ignore",
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, _, raw string) error {
			cfg.Ignore = splitList(raw)
			return nil
		},
	},
	{
		suffix: "INLINE_NOTES", field: "inline_notes",
		description: "Enable ^[...] inline notes: true or false",
		apply: func(cfg *config.Config, name, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, raw)
			}
			cfg.InlineNotes = v
			return nil
		},
	},
	{
		suffix: "JOBS", field: "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, name, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %q", name, raw)
			}
			cfg.Jobs = v
			return nil
		},
	},
}

// LoadFromEnv overlays the FOOTMARK_* variables that are set and non-empty
// onto cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, s := range envMappings {
		name := envVarPrefix + s.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := s.apply(cfg, name, raw); err != nil {
			return err
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnvVarName returns the variable that overrides a config field, or ""
// when the field has none.
func GetEnvVarName(field string) string {
	i := slices.IndexFunc(envMappings, func(s envSetting) bool { return s.field == field })
	if i < 0 {
		return ""
	}
	return envVarPrefix + envMappings[i].suffix
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envMappings))
	for i, s := range envMappings {
		vars[i] = EnvVar{Name: envVarPrefix + s.suffix, Description: s.description}
	}
	slices.SortFunc(vars, func(a, b EnvVar) int { return strings.Compare(a.Name, b.Name) })
	return vars
}
