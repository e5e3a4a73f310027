package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/footmark/internal/ui/pretty"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/lint/rules"
)

type rulesFlags struct {
	format   string
	defaults bool
}

// ruleInfo represents a rule in JSON and YAML output.
type ruleInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Severity    string `json:"severity" yaml:"severity"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available check rules",
		Long: `List all check rules with their IDs, names, descriptions, severity and
whether they are enabled. Severity and enablement reflect the loaded
configuration unless --defaults is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.defaults, "defaults", false, "show built-in defaults instead of the loaded configuration")

	return cmd
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid format %q: must be text, json or yaml", flags.format)}
	}

	infos := rules.RuleInfos(lint.DefaultRegistry)

	color := "auto"
	if !flags.defaults {
		cfg, _, err := loadConfig(cmd, &config.Config{})
		if err != nil {
			return err
		}
		for i := range infos {
			infos[i].Enabled = cfg.RuleEnabled(infos[i].ID, infos[i].Enabled)
			infos[i].Severity = cfg.RuleSeverity(infos[i].ID, infos[i].Severity)
		}
		color = cfg.Color
	} else if cmd.Flags().Changed(flagColor) {
		color, _ = cmd.Flags().GetString(flagColor) //nolint:errcheck // flag is registered on the root
	}

	out := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return outputRulesJSON(out, infos)
	case config.FormatYAML:
		return outputRulesYAML(out, infos)
	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
		if _, err := io.WriteString(out, styles.FormatRulesTable(infos)); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
		return nil
	}
}

func toRuleInfos(infos []config.RuleInfo) []ruleInfo {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
		})
	}
	return out
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, infos []config.RuleInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toRuleInfos(infos)); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// outputRulesYAML outputs rules as a YAML sequence.
func outputRulesYAML(out io.Writer, infos []config.RuleInfo) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(toRuleInfos(infos)); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
