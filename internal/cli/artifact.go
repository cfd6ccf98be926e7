package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
	"github.com/fernandoherreradelasheras/verovio/pkg/score/pass"
)

// artifactLabels maps artifact formats to display names.
var artifactLabels = map[string]string{
	pipeline.FormatLayout:  "Layout",
	pipeline.FormatTimemap: "Timemap",
	pipeline.FormatMIDI:    "MIDI",
}

// artifactFlags holds the flags shared by the artifact commands.
type artifactFlags struct {
	optionsPath string
	output      string
	cacheDir    string
	noCache     bool
	refresh     bool
}

// register wires the shared flags onto cmd.
func (f *artifactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.optionsPath, "options", "", "TOML options file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "cache directory (default: ~/.cache/verovio)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// layoutCommand creates the layout command for exporting engraved geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags artifactFlags
	opts := pipeline.Options{}
	opts.Unit = pass.DefaultUnit
	opts.SpacingLinear = pass.DefaultSpacingLinear
	opts.SpacingNonLinear = pass.DefaultSpacingNonLinear
	opts.CastOffUnit = pass.DefaultCastOffUnit

	cmd := &cobra.Command{
		Use:   "layout [score.json]",
		Short: "Process a score and export the engraved layout",
		Long: `Process a score and export the engraved layout.

The layout command runs the full pass sequence (context propagation,
horizontal alignment, duration-based spacing, measure widths) and writes
the resulting geometry as a layout.json file. The input may be a local
file or an http(s) URL.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveOptions(cmd, flags.optionsPath, &opts); err != nil {
				return err
			}
			return c.runArtifact(cmd.Context(), pipeline.FormatLayout, args[0], opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&opts.Unit, "unit", opts.Unit, "base drawing unit in logical pixels")
	cmd.Flags().Float64Var(&opts.SpacingLinear, "spacing-linear", opts.SpacingLinear, "linear factor of duration-based spacing")
	cmd.Flags().Float64Var(&opts.SpacingNonLinear, "spacing-non-linear", opts.SpacingNonLinear, "exponent of duration-based spacing")
	cmd.Flags().BoolVar(&opts.SkipCancellation, "skip-cancellation", opts.SkipCancellation, "skip key signature cancellation naturals")
	cmd.Flags().Float64Var(&opts.CastOffUnit, "cast-off-unit", opts.CastOffUnit, "measure length in quarter notes for mensural cast-off")

	return cmd
}

// timemapCommand creates the timemap command for exporting playback times.
func (c *CLI) timemapCommand() *cobra.Command {
	var flags artifactFlags
	opts := pipeline.Options{}
	opts.Tempo = pass.DefaultTempo
	opts.PPQ = pass.DefaultPPQ
	opts.CastOffUnit = pass.DefaultCastOffUnit

	cmd := &cobra.Command{
		Use:   "timemap [score.json]",
		Short: "Export the playback timemap for a score",
		Long: `Export the playback timemap for a score.

The timemap command processes the score and writes a timemap.json file
mapping score time (quarter-note tstamps) to real time in milliseconds,
with the note on/off events at each entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveOptions(cmd, flags.optionsPath, &opts); err != nil {
				return err
			}
			return c.runArtifact(cmd.Context(), pipeline.FormatTimemap, args[0], opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&opts.Tempo, "tempo", opts.Tempo, "playback tempo in quarter notes per minute")
	cmd.Flags().IntVar(&opts.PPQ, "ppq", opts.PPQ, "pulses per quarter note")
	cmd.Flags().Float64Var(&opts.CastOffUnit, "cast-off-unit", opts.CastOffUnit, "measure length in quarter notes for mensural cast-off")

	return cmd
}

// midiCommand creates the midi command for rendering standard MIDI files.
func (c *CLI) midiCommand() *cobra.Command {
	var flags artifactFlags
	opts := pipeline.Options{}
	opts.Tempo = pass.DefaultTempo
	opts.PPQ = pass.DefaultPPQ
	opts.CastOffUnit = pass.DefaultCastOffUnit

	cmd := &cobra.Command{
		Use:   "midi [score.json]",
		Short: "Render a score to a standard MIDI file",
		Long: `Render a score to a standard MIDI file.

The midi command processes the score and writes a format 1 SMF with one
track per staff, honoring the resolved key signatures and tempo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveOptions(cmd, flags.optionsPath, &opts); err != nil {
				return err
			}
			return c.runArtifact(cmd.Context(), pipeline.FormatMIDI, args[0], opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&opts.Tempo, "tempo", opts.Tempo, "playback tempo in quarter notes per minute")
	cmd.Flags().IntVar(&opts.PPQ, "ppq", opts.PPQ, "pulses per quarter note")
	cmd.Flags().Float64Var(&opts.CastOffUnit, "cast-off-unit", opts.CastOffUnit, "measure length in quarter notes for mensural cast-off")

	return cmd
}

// runArtifact loads the score, derives one artifact through the runner, and
// writes the output file.
func (c *CLI) runArtifact(ctx context.Context, format, input string, opts pipeline.Options, flags artifactFlags) error {
	runner, err := c.newRunner(flags.cacheDir, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	d, err := pkgio.NewFetcher(runner.Cache, runner.Keyer).Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}

	opts.Formats = []string{format}
	opts.Refresh = flags.refresh

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s...", format))
	spinner.Start()

	result, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError(artifactLabels[format] + " failed")
		return fmt.Errorf("derive %s: %w", format, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultOutput(input, format)
	}
	if err := os.WriteFile(outputPath, result.Artifacts[format], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("%s complete", artifactLabels[format])
	printFile(outputPath)
	printStats(len(d.Measures()), result.CacheInfo.Hit(format))
	if format == pipeline.FormatLayout {
		printNewline()
		printNextStep("Inspect", "verovio inspect "+input)
	}

	return nil
}

// defaultOutput derives the output path from the input reference. Remote
// URLs keep only the final path element so output lands in the working
// directory.
func defaultOutput(input, format string) string {
	name := input
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		name = path.Base(u.Path)
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "score"
	}
	switch format {
	case pipeline.FormatTimemap:
		return base + ".timemap.json"
	case pipeline.FormatMIDI:
		return base + ".mid"
	default:
		return base + ".layout.json"
	}
}
