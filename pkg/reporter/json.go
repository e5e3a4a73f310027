package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/runner"
)

// outputVersion is the schema version of structured output.
const outputVersion = "1.0.0"

// Output is the top-level structure of JSON and YAML reports.
type Output struct {
	Version string       `json:"version" yaml:"version"`
	Files   []FileReport `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// FileReport represents a single file's results.
type FileReport struct {
	Path        string             `json:"path" yaml:"path"`
	Diagnostics []DiagnosticReport `json:"diagnostics" yaml:"diagnostics"`
	Changed     bool               `json:"changed,omitempty" yaml:"changed,omitempty"`
	Written     bool               `json:"written,omitempty" yaml:"written,omitempty"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// DiagnosticReport represents a single diagnostic.
type DiagnosticReport struct {
	RuleID      string `json:"ruleId" yaml:"ruleId"`
	RuleName    string `json:"ruleName" yaml:"ruleName"`
	Rule        string `json:"rule" yaml:"rule"`
	Severity    string `json:"severity" yaml:"severity"`
	Message     string `json:"message" yaml:"message"`
	StartLine   int    `json:"startLine" yaml:"startLine"`
	StartColumn int    `json:"startColumn" yaml:"startColumn"`
	EndLine     int    `json:"endLine" yaml:"endLine"`
	EndColumn   int    `json:"endColumn" yaml:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesChecked    int            `json:"filesChecked" yaml:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues" yaml:"filesWithIssues"`
	FilesChanged    int            `json:"filesChanged" yaml:"filesChanged"`
	FilesWritten    int            `json:"filesWritten" yaml:"filesWritten"`
	FilesErrored    int            `json:"filesErrored" yaml:"filesErrored"`
	TotalIssues     int            `json:"totalIssues" yaml:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity" yaml:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.count(r.opts), nil
}

// count is the Reporter return value for output.
func (o *Output) count(opts Options) int {
	if opts.Formatting {
		return o.Summary.FilesChanged
	}
	return o.Summary.TotalIssues
}

func buildOutput(result *runner.Result, opts Options) *Output {
	output := &Output{
		Version: outputVersion,
		Files:   make([]FileReport, 0),
		Summary: Summary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]FileReport, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileReport := FileReport{
			Path:        opts.displayPath(file.Path),
			Diagnostics: make([]DiagnosticReport, 0),
		}

		if file.Error != nil {
			fileReport.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileReport.Changed = file.Result.Modified
			fileReport.Written = file.Result.Written

			if file.Result.FileResult != nil {
				for _, diag := range file.Result.Diagnostics {
					fileReport.Diagnostics = append(fileReport.Diagnostics, DiagnosticReport{
						RuleID:      diag.RuleID,
						RuleName:    diag.RuleName,
						Rule:        config.FormatRuleID(opts.RuleFormat, diag.RuleID, diag.RuleName),
						Severity:    string(diag.Severity),
						Message:     diag.Message,
						StartLine:   diag.StartLine,
						StartColumn: diag.StartColumn,
						EndLine:     diag.EndLine,
						EndColumn:   diag.EndColumn,
						Suggestion:  diag.Suggestion,
					})
					output.Summary.TotalIssues++

					severity := diag.Severity
					if severity == "" {
						severity = config.SeverityWarning
					}
					output.Summary.BySeverity[string(severity)]++
				}
			}
		}

		if len(fileReport.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileReport.Changed {
			output.Summary.FilesChanged++
		}
		if fileReport.Written {
			output.Summary.FilesWritten++
		}

		output.Files = append(output.Files, fileReport)
		output.Summary.FilesChecked++
	}

	return output
}
