package pass

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

// Runner executes the processing passes in their fixed order.
//
// The Runner is stateless except for the logger; every pass carries its
// walk state itself and owns nothing across documents. Multiple goroutines
// can safely share one Runner for different documents.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Process runs the full pass sequence over the document, rebuilding all
// derived state from the authored content. Running it a second time on an
// unchanged document yields identical derived state.
func (r *Runner) Process(d *score.Doc, opts *Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	score.Walk(d, ResetData{})

	artic := &ConvertMarkupArtic{}
	score.Walk(d, artic)
	if artic.Converted > 0 {
		r.Logger.Debug("converted articulation markup", "artics", artic.Converted)
	}

	if d.IsMensural() {
		if err := CastOffMensural(d, opts); err != nil {
			return fmt.Errorf("cast off: %w", err)
		}
		r.Logger.Debug("cast off mensural content", "measures", len(d.Measures()))
	}

	score.Walk(d, UnsetCurrentScoreDef{})
	SetCurrentScoreDef(d, opts)

	score.Walk(d, &InitProcessingLists{})
	PrepareRepeats(d)
	score.Walk(d, NewInitOnsets())

	score.Walk(d, &CalcAlignment{})
	FinalizeAlignment(d, opts)

	r.Logger.Info("processed document",
		"measures", len(d.Measures()),
		"duration", time.Since(start))
	return nil
}
