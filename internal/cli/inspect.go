package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing resolved context.
func (c *CLI) inspectCommand() *cobra.Command {
	var optionsPath string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [score.json]",
		Short: "Browse the resolved clef/key/meter context per layer",
		Long: `Browse the resolved clef/key/meter context per layer.

The inspect command processes the score and opens an interactive browser:
pick a measure to see the clef, key signature, and meter state each layer
carries at that point, as resolved by context propagation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveOptions(cmd, optionsPath, &opts); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&optionsPath, "options", "", "TOML options file")
	cmd.Flags().BoolVar(&opts.SkipCancellation, "skip-cancellation", opts.SkipCancellation, "skip key signature cancellation naturals")

	return cmd
}

// runInspect processes the score and starts the interactive browser.
func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options) error {
	d, err := pkgio.NewFetcher(nil, nil).Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	if err := pipeline.Process(ctx, d, &opts); err != nil {
		return fmt.Errorf("process score: %w", err)
	}
	prog.done("Processed %d measures", len(d.Measures()))

	if len(d.Measures()) == 0 {
		printWarning("Score has no measures")
		return nil
	}

	p := tea.NewProgram(NewInspectModel(d))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}
