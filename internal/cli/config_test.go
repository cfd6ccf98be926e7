package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "options.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write options file: %v", err)
	}
	return path
}

func TestLoadOptionsFile(t *testing.T) {
	path := writeOptionsFile(t, `
unit = 12.0
spacing_linear = 0.3
tempo = 90.0
ppq = 960
skip_cancellation = true
`)

	f, err := loadOptionsFile(path)
	if err != nil {
		t.Fatalf("loadOptionsFile() error: %v", err)
	}

	if f.Unit != 12.0 {
		t.Errorf("Unit = %v, want 12.0", f.Unit)
	}
	if f.SpacingLinear != 0.3 {
		t.Errorf("SpacingLinear = %v, want 0.3", f.SpacingLinear)
	}
	if f.Tempo != 90.0 {
		t.Errorf("Tempo = %v, want 90.0", f.Tempo)
	}
	if f.PPQ != 960 {
		t.Errorf("PPQ = %v, want 960", f.PPQ)
	}
	if !f.SkipCancellation {
		t.Error("SkipCancellation = false, want true")
	}
}

func TestLoadOptionsFileMissing(t *testing.T) {
	_, err := loadOptionsFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("loadOptionsFile() should fail for a missing file")
	}
}

func TestLoadOptionsFileInvalid(t *testing.T) {
	path := writeOptionsFile(t, "unit = [broken")

	_, err := loadOptionsFile(path)
	if err == nil {
		t.Fatal("loadOptionsFile() should fail for invalid TOML")
	}
}

func TestApplyOptionsFileFlagsWin(t *testing.T) {
	opts := pipeline.Options{}
	cmd := &cobra.Command{}
	cmd.Flags().Float64Var(&opts.Unit, "unit", 0, "")
	cmd.Flags().Float64Var(&opts.Tempo, "tempo", 0, "")
	if err := cmd.Flags().Set("unit", "18"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	f := &optionsFile{Unit: 12, Tempo: 90}
	applyOptionsFile(cmd, f, &opts)

	if opts.Unit != 18 {
		t.Errorf("Unit = %v, want the explicit flag value 18 to win", opts.Unit)
	}
	if opts.Tempo != 90 {
		t.Errorf("Tempo = %v, want the file value 90 applied", opts.Tempo)
	}
}

func TestResolveOptionsNoFile(t *testing.T) {
	opts := pipeline.Options{}
	opts.Unit = 7

	if err := resolveOptions(&cobra.Command{}, "", &opts); err != nil {
		t.Fatalf("resolveOptions() error: %v", err)
	}
	if opts.Unit != 7 {
		t.Errorf("Unit = %v, want untouched without an options file", opts.Unit)
	}
}

func TestResolveOptionsFromFile(t *testing.T) {
	path := writeOptionsFile(t, "unit = 11.0\ncast_off_unit = 4.0\n")
	opts := pipeline.Options{}

	if err := resolveOptions(&cobra.Command{}, path, &opts); err != nil {
		t.Fatalf("resolveOptions() error: %v", err)
	}
	if opts.Unit != 11 {
		t.Errorf("Unit = %v, want 11 from the file", opts.Unit)
	}
	if opts.CastOffUnit != 4 {
		t.Errorf("CastOffUnit = %v, want 4 from the file", opts.CastOffUnit)
	}
}
