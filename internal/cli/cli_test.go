package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func testScorePath(t *testing.T) string {
	t.Helper()

	d := score.NewDoc()
	d.SetID("cli-test")

	sd := score.NewScoreDef()
	def := score.NewStaffDef(1)
	def.SetClef(score.NewClef(score.ClefG, 2))
	def.SetMeterSig(score.NewMeterSig(4, 4))
	if err := sd.AddStaffDef(def); err != nil {
		t.Fatalf("AddStaffDef() error: %v", err)
	}
	d.SetScoreDef(sd)

	sys := score.NewSystem()
	if err := d.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem() error: %v", err)
	}
	m := score.NewMeasure(1)
	if err := sys.AddMeasure(m); err != nil {
		t.Fatalf("AddMeasure() error: %v", err)
	}
	st := score.NewStaff(1)
	if err := m.AddStaff(st); err != nil {
		t.Fatalf("AddStaff() error: %v", err)
	}
	l := score.NewLayer(1)
	if err := st.AddLayer(l); err != nil {
		t.Fatalf("AddLayer() error: %v", err)
	}
	for i := 0; i < 4; i++ {
		if !l.Append(score.NewNote(score.PitchC, 4, score.DurQuarter)) {
			t.Fatal("Append() rejected note")
		}
	}

	path := filepath.Join(t.TempDir(), "score.json")
	if err := pkgio.ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "verovio" {
		t.Errorf("root.Use = %q, want %q", root.Use, "verovio")
	}

	want := []string{"layout", "timemap", "midi", "inspect", "tree", "cache", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}

func TestLayoutCommandWritesOutput(t *testing.T) {
	input := testScorePath(t)
	output := filepath.Join(t.TempDir(), "out.layout.json")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "-o", output, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout command error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !json.Valid(data) {
		t.Error("layout output is not valid JSON")
	}
}

func TestMIDICommandWritesOutput(t *testing.T) {
	input := testScorePath(t)
	output := filepath.Join(t.TempDir(), "out.mid")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"midi", input, "-o", output, "--no-cache", "--tempo", "90"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("midi command error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "MThd" {
		t.Error("midi output should start with an SMF header")
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"score.json", pipeline.FormatLayout, "score.layout.json"},
		{"dir/piece.json", pipeline.FormatMIDI, "dir/piece.mid"},
		{"https://example.com/scores/mass.json", pipeline.FormatTimemap, "mass.timemap.json"},
		{"https://example.com/", pipeline.FormatLayout, "score.layout.json"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.input, tt.format); got != tt.want {
			t.Errorf("defaultOutput(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestNewServeCache(t *testing.T) {
	if _, err := newServeCache("memory", "", "", ""); err != nil {
		t.Errorf("memory backend error: %v", err)
	}
	if _, err := newServeCache("null", "", "", ""); err != nil {
		t.Errorf("null backend error: %v", err)
	}
	if _, err := newServeCache("file", t.TempDir(), "", ""); err != nil {
		t.Errorf("file backend error: %v", err)
	}
	if _, err := newServeCache("bogus", "", "", ""); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
