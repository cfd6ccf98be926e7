package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
	"github.com/fernandoherreradelasheras/verovio/pkg/score/pass"
)

// RenderArtifact derives one artifact from a processed document. The
// document must carry derived state; run [Process] first.
func RenderArtifact(d *score.Doc, format string, opts *Options) ([]byte, error) {
	switch format {
	case FormatLayout:
		return renderLayout(d)
	case FormatTimemap:
		return renderTimemap(d, opts)
	case FormatMIDI:
		return renderMIDI(d, opts)
	}
	return nil, ValidateFormat(format)
}

// RenderArtifacts derives all requested artifacts from a processed document.
func RenderArtifacts(d *score.Doc, opts *Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderArtifact(d, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderLayout serializes the computed layout: measure positions and
// widths, alignment slots, element positions and times.
func renderLayout(d *score.Doc) ([]byte, error) {
	var buf bytes.Buffer
	if err := io.WriteLayoutJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTimemap serializes the score-time to real-time mapping as JSON.
func renderTimemap(d *score.Doc, opts *Options) ([]byte, error) {
	tm := pass.GenerateTimemap(d, &opts.Options)
	return json.MarshalIndent(tm, "", "  ")
}

// renderMIDI renders the document as a standard MIDI file.
func renderMIDI(d *score.Doc, opts *Options) ([]byte, error) {
	seq := pass.GenerateMIDI(d, &opts.Options)
	var buf bytes.Buffer
	if err := seq.WriteSMF(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
