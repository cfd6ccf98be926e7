package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

// optionsFile mirrors the processing options for TOML decoding.
//
// Example file:
//
//	unit = 12.0
//	spacing_linear = 0.3
//	tempo = 90.0
type optionsFile struct {
	Unit             float64 `toml:"unit"`
	SpacingLinear    float64 `toml:"spacing_linear"`
	SpacingNonLinear float64 `toml:"spacing_non_linear"`
	SkipCancellation bool    `toml:"skip_cancellation"`
	Tempo            float64 `toml:"tempo"`
	PPQ              int     `toml:"ppq"`
	CastOffUnit      float64 `toml:"cast_off_unit"`
}

// loadOptionsFile reads and decodes a TOML options file.
func loadOptionsFile(path string) (*optionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file %s: %w", path, err)
	}
	var f optionsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return &f, nil
}

// applyOptionsFile copies file values into opts for every option whose flag
// was not set on the command line, so explicit flags win over the file.
// Options absent from the file decode to zero and pick up defaults during
// validation.
func applyOptionsFile(cmd *cobra.Command, f *optionsFile, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if !changed("unit") {
		opts.Unit = f.Unit
	}
	if !changed("spacing-linear") {
		opts.SpacingLinear = f.SpacingLinear
	}
	if !changed("spacing-non-linear") {
		opts.SpacingNonLinear = f.SpacingNonLinear
	}
	if !changed("skip-cancellation") {
		opts.SkipCancellation = f.SkipCancellation
	}
	if !changed("tempo") {
		opts.Tempo = f.Tempo
	}
	if !changed("ppq") {
		opts.PPQ = f.PPQ
	}
	if !changed("cast-off-unit") {
		opts.CastOffUnit = f.CastOffUnit
	}
}

// resolveOptions merges a TOML options file (if given) into opts.
func resolveOptions(cmd *cobra.Command, optionsPath string, opts *pipeline.Options) error {
	if optionsPath == "" {
		return nil
	}
	f, err := loadOptionsFile(optionsPath)
	if err != nil {
		return err
	}
	applyOptionsFile(cmd, f, opts)
	return nil
}
