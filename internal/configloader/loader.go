// Package configloader resolves the footmark configuration.
// It discovers config files in XDG locations and the project tree, merges them
// in precedence order, applies FOOTMARK_* environment overrides and CLI flags,
// then validates the result.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule names in config files. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load builds the effective configuration. Later sources override earlier
// ones: defaults, the system file, the user file, the project file, the
// --config file, FOOTMARK_* variables and finally CLI flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, f := range opts.files(paths) {
		fileCfg, err := loadConfigFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", f.level, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, f.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}
	result.Warnings = append(result.Warnings, canonicalizeRules(cfg, registry)...)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

type configFile struct {
	level string
	path  string
}

// files lists the config files to read, lowest precedence first.
func (opts LoadOptions) files(paths *ConfigPaths) []configFile {
	candidates := []struct {
		configFile
		skip bool
	}{
		{configFile{"system", paths.System}, opts.IgnoreSystemConfig},
		{configFile{"user", paths.User}, opts.IgnoreUserConfig},
		{configFile{"project", paths.Project}, opts.IgnoreProjectConfig},
		{configFile{"explicit", paths.Explicit}, false},
	}

	var files []configFile
	for _, c := range candidates {
		if !c.skip && c.path != "" {
			files = append(files, c.configFile)
		}
	}
	return files
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

// canonicalizeRules rewrites rule names to IDs so "unused-definition" and
// "FN003" address the same rule. Keys are visited in sorted order; when two
// keys name one rule the later key wins and a warning is returned.
func canonicalizeRules(cfg *config.Config, registry *lint.Registry) []string {
	cfg.EnableRules = canonicalRuleList(cfg.EnableRules, registry)
	cfg.DisableRules = canonicalRuleList(cfg.DisableRules, registry)
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	byID := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := make(map[string]string, len(cfg.Rules))

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		id, _, found := registry.Resolve(key)
		if !found {
			id = key
		}
		if prev, dup := keyFor[id]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using last value", prev, key, id))
		}
		keyFor[id] = key
		byID[id] = cfg.Rules[key]
	}

	cfg.Rules = byID
	return warnings
}

// canonicalRuleList maps --enable/--disable entries to IDs, leaving unknown
// entries for validation to reject.
func canonicalRuleList(keys []string, registry *lint.Registry) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = key
		if id, _, found := registry.Resolve(key); found {
			out[i] = id
		}
	}
	return out
}
