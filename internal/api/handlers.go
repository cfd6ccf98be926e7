package api

import (
	"net/http"
	"strconv"

	"github.com/fernandoherreradelasheras/verovio/pkg/buildinfo"
	apperrors "github.com/fernandoherreradelasheras/verovio/pkg/errors"
	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion reports the build information.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleArtifact decodes the score from the request body, applies options
// from the query string, and serves one artifact format.
func (s *Server) handleArtifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := pkgio.ReadJSON(http.MaxBytesReader(w, r.Body, maxScoreBytes))
		if err != nil {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidScore, err, "decode score"))
			return
		}
		opts, err := optionsFromQuery(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		var data []byte
		var hit bool
		switch format {
		case pipeline.FormatLayout:
			data, hit, err = s.runner.LayoutWithCacheInfo(r.Context(), d, opts)
		case pipeline.FormatTimemap:
			data, hit, err = s.runner.TimemapWithCacheInfo(r.Context(), d, opts)
		case pipeline.FormatMIDI:
			data, hit, err = s.runner.MIDIWithCacheInfo(r.Context(), d, opts)
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentTypeFor(format))
		w.Header().Set("X-Cache", cacheStatus(hit))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// contentTypeFor returns the response media type for an artifact format.
func contentTypeFor(format string) string {
	if format == pipeline.FormatMIDI {
		return "audio/midi"
	}
	return "application/json"
}

// optionsFromQuery builds pipeline options from the request query string.
// Absent parameters keep their zero value and pick up defaults during
// validation. Ranges are checked on a copy so the returned options stay
// unvalidated and the runner can still inject its logger.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"unit", &opts.Unit},
		{"spacing_linear", &opts.SpacingLinear},
		{"spacing_non_linear", &opts.SpacingNonLinear},
		{"tempo", &opts.Tempo},
		{"cast_off_unit", &opts.CastOffUnit},
	}
	for _, p := range floats {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidOptions, "query parameter %s: %v", p.name, err)
		}
		*p.dst = v
	}

	if raw := q.Get("ppq"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidOptions, "query parameter ppq: %v", err)
		}
		opts.PPQ = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"skip_cancellation", &opts.SkipCancellation},
		{"refresh", &opts.Refresh},
	}
	for _, p := range bools {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidOptions, "query parameter %s: %v", p.name, err)
		}
		*p.dst = v
	}

	check := opts
	if err := check.ValidateAndSetDefaults(); err != nil {
		return opts, apperrors.Wrap(apperrors.ErrCodeInvalidOptions, err, "invalid options")
	}
	return opts, nil
}
