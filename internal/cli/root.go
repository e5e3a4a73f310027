// Package cli provides the Cobra command structure for footmark.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/footmark/internal/configloader"
	"github.com/yaklabco/footmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by the subcommands.
const (
	flagConfig   = "config"
	flagNoConfig = "no-config"
	flagColor    = "color"
)

// NewRootCommand creates the root footmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var logLevel string
	var color string

	rootCmd := &cobra.Command{
		Use:   "footmark",
		Short: "Parse, format and check Markdown footnotes",
		Long: `footmark understands Markdown footnote syntax: reference calls ([^id]),
block definitions ([^id]: text, with indented continuation paragraphs) and
optional inline notes (^[text]).

It prints the footnote tree of a document, re-serializes documents into
canonical footnote Markdown, and reports footnote problems such as calls
without a definition or definitions nobody references.` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logLevel
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().Bool(flagNoConfig, false, "ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter(color).ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the FOOTMARK_* overrides for the root help text.
func environmentHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-22s %s\n", v.Name, v.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
