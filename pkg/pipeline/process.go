package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandoherreradelasheras/verovio/pkg/observability"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
	"github.com/fernandoherreradelasheras/verovio/pkg/score/pass"
)

// Process runs the pass sequence over the document, rebuilding all derived
// state from the authored content. The passes are CPU-bound and run to
// completion once started; the context is only checked before they begin.
func Process(ctx context.Context, d *score.Doc, opts *Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnPassStart(ctx, "process", len(d.Measures()))

	err := pass.NewRunner(opts.Logger).Process(d, &opts.Options)
	hooks.OnPassDone(ctx, "process", time.Since(start), err)
	return err
}
