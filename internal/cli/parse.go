package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/footmark/internal/logging"
	"github.com/yaklabco/footmark/internal/ui/pretty"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/fsutil"
	"github.com/yaklabco/footmark/pkg/mdast"
)

type parseFlags struct {
	format    string
	positions bool
}

func newParseCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the footnote tree of a document",
		Long: `Parse a Markdown document and print the resulting tree.

Without a file, or with "-", the document is read from standard input.

Examples:
  footmark parse notes.md                  # Styled tree
  footmark parse --inline-notes notes.md   # Also recognize ^[inline notes]
  footmark parse --format json notes.md    # Tree as JSON
  cat notes.md | footmark parse --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, cfg, flags)
		},
	}

	addInlineNotesFlag(cmd, cfg)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.positions, "positions", true, "include source positions in json and yaml output")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	path := stdinName
	var content []byte
	if len(args) == 0 || isStdin(args) {
		content, err = readStdin(cmd)
	} else {
		path = args[0]
		content, _, err = fsutil.ReadFile(ctx, path)
	}
	if err != nil {
		return err
	}

	start := time.Now()
	snapshot, err := newProcessor(cfg).Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldFootnotes, len(snapshot.Footnotes),
		logging.FieldNodes, countNodes(snapshot.Root),
		logging.FieldDuration, time.Since(start),
	)

	return writeTree(cmd.OutOrStdout(), snapshot.Root, cfg.Format, cfg.Color, flags.positions)
}

func writeTree(out io.Writer, root *mdast.Node, format config.OutputFormat, color string, positions bool) error {
	switch format {
	case config.FormatJSON, config.FormatYAML:
		exported := mdast.Export(root)
		if !positions {
			stripPositions(exported)
		}
		if format == config.FormatJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(exported); err != nil {
				return fmt.Errorf("encode JSON: %w", err)
			}
			return nil
		}
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(exported); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return nil
	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
		if _, err := io.WriteString(out, styles.FormatTree(root)); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		return nil
	}
}

func stripPositions(node *mdast.ExportedNode) {
	if node == nil {
		return
	}
	node.Position = nil
	for _, child := range node.Children {
		stripPositions(child)
	}
}

func countNodes(root *mdast.Node) int {
	count := 0
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	mdast.Walk(root, func(*mdast.Node) error {
		count++
		return nil
	})
	return count
}
