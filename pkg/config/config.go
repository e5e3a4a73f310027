// Package config defines core configuration types for footmark.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a footnote diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
}

// OutputFormat specifies how commands print their results.
type OutputFormat string

const (
	// FormatText is styled human output: a tree for parse, diagnostics for check.
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	// FormatYAML is accepted by parse only.
	FormatYAML OutputFormat = "yaml"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "undefined-reference"
	RuleFormatID       RuleFormat = "id"       // "FN002"
	RuleFormatCombined RuleFormat = "combined" // "FN002/undefined-reference"
)

// IsValid reports whether f is a known rule format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Flavor selects the dialect of the goldmark reference parse used by check.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid reports whether f is a known flavor.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Config is the root configuration structure for footmark.
type Config struct {
	// InlineNotes enables the ^[...] inline note syntax.
	InlineNotes bool `yaml:"inline_notes"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"-"`

	// Write makes fmt replace files in place.
	Write bool `yaml:"-"`

	// Check makes fmt report files that would change instead of printing them.
	Check bool `yaml:"-"`

	// Diff makes fmt print a unified diff of the changes.
	Diff bool `yaml:"-"`

	// Backup keeps a sidecar copy of every file fmt rewrites.
	Backup bool `yaml:"-"`

	// Jobs specifies the number of parallel workers. Zero means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		InlineNotes: false,
		Flavor:      FlavorGFM,
		Rules:       make(map[string]RuleConfig),
		Format:      FormatText,
		RuleFormat:  RuleFormatName,
		Color:       "auto",
		Jobs:        0,
	}
}

// RuleEnabled reports whether the rule is enabled, given its default.
// CLI lists win over the rules map.
func (c *Config) RuleEnabled(id string, def bool) bool {
	for _, disabled := range c.DisableRules {
		if disabled == id {
			return false
		}
	}
	for _, enabled := range c.EnableRules {
		if enabled == id {
			return true
		}
	}
	if rc, ok := c.Rules[id]; ok && rc.Enabled != nil {
		return *rc.Enabled
	}
	return def
}

// RuleSeverity returns the configured severity for a rule, or def.
func (c *Config) RuleSeverity(id string, def Severity) Severity {
	if rc, ok := c.Rules[id]; ok && rc.Severity != nil {
		return Severity(*rc.Severity)
	}
	return def
}
