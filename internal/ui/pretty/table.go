package pretty

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/footmark/pkg/config"
)

const (
	ruleColumnSeverity = 2
	ruleColumnEnabled  = 3
)

// FormatRulesTable renders rule metadata as a bordered table.
func (s *Styles) FormatRulesTable(rules []config.RuleInfo) string {
	if len(rules) == 0 {
		return ""
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.TableBorder).
		Headers("ID", "NAME", "SEVERITY", "ENABLED", "DESCRIPTION")

	for _, rule := range rules {
		enabled := "no"
		if rule.Enabled {
			enabled = "yes"
		}
		tbl.Row(rule.ID, rule.Name, string(rule.Severity), enabled, rule.Description)
	}

	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return s.TableHeader.Inherit(cell)
		}
		if row < 0 || row >= len(rules) {
			return cell
		}

		rule := rules[row]
		switch col {
		case ruleColumnSeverity:
			return s.severityStyle(rule.Severity).UnsetBold().Inherit(cell)
		case ruleColumnEnabled:
			if !rule.Enabled {
				return s.Dim.Inherit(cell)
			}
		}
		return cell
	})

	return tbl.String() + "\n"
}

func (s *Styles) severityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Message
	}
}
