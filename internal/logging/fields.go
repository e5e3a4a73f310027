// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldDuration   = "duration"
	FieldReason     = "reason"
	FieldStatus     = "status"

	// Processing fields.
	FieldInlineNotes = "inline_notes"
	FieldFlavor      = "flavor"
	FieldFormat      = "format"
	FieldJobs        = "jobs"
	FieldWrite       = "write"

	// Document fields.
	FieldFootnotes   = "footnotes"
	FieldNodes       = "nodes"
	FieldDiagnostics = "diagnostics"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWithIssues = "files_with_issues"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule     = "rule"
	FieldSeverity = "severity"
)
