package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/footmark/pkg/config"
	_ "github.com/yaklabco/footmark/pkg/lint/rules" // Register rules
)

// isolated returns options that only look at dir and the given CLI config.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("Flavor = %q, want %q", result.Config.Flavor, config.FlavorGFM)
	}
	if result.Config.InlineNotes {
		t.Error("InlineNotes should default to false")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, ".footmark.yml", `
inline_notes: true
flavor: commonmark
rules:
  unused-definition:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.InlineNotes {
		t.Error("InlineNotes should be loaded from the project file")
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("Flavor = %q, want commonmark", result.Config.Flavor)
	}
	if result.Config.RuleEnabled("FN003", true) {
		t.Error("FN003 should be disabled via its name")
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("LoadedFrom = %v, want [%s]", result.LoadedFrom, configPath)
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, root, ".footmark.yaml", "flavor: commonmark\n")

	sub := filepath.Join(root, "docs", "notes")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("Flavor = %q, want commonmark from the repository root", result.Config.Flavor)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".footmark.yml", "flavor: commonmark\n")
	explicit := writeConfig(t, t.TempDir(), "custom.yaml", "flavor: gfm\nignore:\n  - vendor/**\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("Flavor = %q, want gfm from the explicit file", result.Config.Flavor)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "vendor/**" {
		t.Errorf("Ignore = %v", result.Config.Ignore)
	}
	if result.Paths.Explicit != explicit {
		t.Errorf("Paths.Explicit = %q", result.Paths.Explicit)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("LoadedFrom = %v, want project then explicit", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "load explicit config") {
		t.Errorf("error = %v, want explicit config failure", err)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".footmark.yml", "flavor: commonmark\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Flavor:       config.FlavorGFM,
		InlineNotes:  true,
		Jobs:         4,
		Format:       config.FormatJSON,
		DisableRules: []string{"forward-reference"},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorGFM || !cfg.InlineNotes || cfg.Jobs != 4 || cfg.Format != config.FormatJSON {
		t.Errorf("CLI values not applied: %+v", cfg)
	}
	if len(cfg.DisableRules) != 1 || cfg.DisableRules[0] != "FN001" {
		t.Errorf("DisableRules = %v, want [FN001]", cfg.DisableRules)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad flavor", "flavor: markdown-it\n", "invalid flavor"},
		{"bad severity", "rules:\n  FN001:\n    severity: fatal\n", "invalid severity"},
		{"bad glob", "ignore:\n  - \"[\"\n", "invalid glob pattern"},
		{"bad yaml", "flavor: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".footmark.yml", tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("Load() should fail")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error %T should wrap *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".footmark.yml", "rules:\n  MD001:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown rule "MD001"`) {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestLoad_UnknownCLIRuleFails(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{EnableRules: []string{"no-such-rule"}}

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), `unknown rule "no-such-rule"`) {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".footmark.yml", `
rules:
  forward-reference:
    severity: error
  fn004:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := result.Config.Rules
	if _, ok := rules["FN001"]; !ok {
		t.Errorf("forward-reference should normalize to FN001, got %v", rules)
	}
	if _, ok := rules["FN004"]; !ok {
		t.Errorf("fn004 should normalize to FN004, got %v", rules)
	}
	if got := result.Config.RuleSeverity("FN001", config.SeverityWarning); got != config.SeverityError {
		t.Errorf("RuleSeverity(FN001) = %q, want error", got)
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".footmark.yml", `
rules:
  FN002:
    enabled: false
  undefined-reference:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate rule configuration") && strings.Contains(w, "FN002") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
	if len(result.Config.Rules) != 1 {
		t.Errorf("Rules = %v, want a single FN002 entry", result.Config.Rules)
	}
	// Keys are applied in sorted order, so the rule name beats the ID.
	if enabled := result.Config.Rules["FN002"].Enabled; enabled == nil || !*enabled {
		t.Errorf("FN002 enabled = %v, want true", enabled)
	}
}
