package cli

import (
	"errors"

	"github.com/yaklabco/footmark/internal/configloader"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/runner"
)

// Exit codes for footmark.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates check found errors, or fmt --check found files
	// that need formatting.
	ExitIssues = 1

	// ExitWarnings indicates check found warnings in strict mode.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrIssuesFound is returned when check reports failing diagnostics.
	ErrIssuesFound = errors.New("footnote issues found")

	// ErrFormatNeeded is returned by fmt --check when a file would change.
	ErrFormatNeeded = errors.New("files need formatting")

	// ErrNoInput is returned when standard input is an interactive terminal.
	ErrNoInput = errors.New("no input: pass a file or pipe content on stdin")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.Is(err, ErrFilesFailed), errors.Is(err, lint.ErrFileNotFound), errors.Is(err, lint.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitIssues
	}
}

// IsReported reports whether err only signals an exit code for a result
// that was already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrFormatNeeded)
}

// ExitCodeFromResult determines the check exit code based on result and
// strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity[config.SeverityError]
	warnings := result.Stats.DiagnosticsBySeverity[config.SeverityWarning]

	if errs > 0 {
		return ExitIssues
	}

	if strict && warnings > 0 {
		return ExitWarnings
	}

	return ExitSuccess
}
