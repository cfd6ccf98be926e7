package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fernandoherreradelasheras/verovio/pkg/buildinfo"
	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
	pkgio "github.com/fernandoherreradelasheras/verovio/pkg/io"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
	"github.com/fernandoherreradelasheras/verovio/pkg/score"
)

func testScoreJSON(t *testing.T) []byte {
	t.Helper()

	d := score.NewDoc()
	d.SetID("api-test")

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

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	return buf.Bytes()
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
	t.Cleanup(func() { runner.Close() })

	srv := httptest.NewServer(New(runner, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postScore(t *testing.T, srv *httptest.Server, path string, body []byte) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error: %v", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, data
}

func decodeErrorCode(t *testing.T, data []byte) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "ok") {
		t.Errorf("body = %q, want it to report ok", data)
	}
}

func TestVersion(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatalf("GET /version error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var info buildinfo.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", info.Version, buildinfo.Version)
	}
}

func TestLayoutMissThenHit(t *testing.T) {
	srv := testServer(t)
	body := testScoreJSON(t)

	resp, first := postScore(t, srv, "/v1/layout", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first status = %d, want %d: %s", resp.StatusCode, http.StatusOK, first)
	}
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !json.Valid(first) {
		t.Fatal("layout response is not valid JSON")
	}
	if !strings.Contains(string(first), `"systems"`) {
		t.Error("layout response missing systems")
	}

	resp, second := postScore(t, srv, "/v1/layout", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached layout differs from the first response")
	}

	// Different layout options key a different artifact.
	resp, _ = postScore(t, srv, "/v1/layout?unit=18", body)
	if got := resp.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache after option change = %q, want MISS", got)
	}
}

func TestMIDIResponse(t *testing.T) {
	srv := testServer(t)

	resp, data := postScore(t, srv, "/v1/midi", testScoreJSON(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, data)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/midi" {
		t.Errorf("Content-Type = %q, want audio/midi", ct)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Errorf("body starts with %q, want MThd header", data[:min(len(data), 4)])
	}
}

func TestTimemapResponse(t *testing.T) {
	srv := testServer(t)

	resp, data := postScore(t, srv, "/v1/timemap?tempo=90", testScoreJSON(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusOK, data)
	}
	if !json.Valid(data) {
		t.Fatal("timemap response is not valid JSON")
	}
}

func TestBadScoreBody(t *testing.T) {
	srv := testServer(t)

	resp, data := postScore(t, srv, "/v1/layout", []byte("not a score"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, data); code != "INVALID_SCORE" {
		t.Errorf("error code = %q, want INVALID_SCORE", code)
	}
}

func TestBadQueryOption(t *testing.T) {
	srv := testServer(t)
	body := testScoreJSON(t)

	tests := []struct {
		name string
		path string
	}{
		{"malformed float", "/v1/layout?tempo=fast"},
		{"negative tempo", "/v1/midi?tempo=-1"},
		{"malformed bool", "/v1/layout?refresh=yep"},
		{"malformed ppq", "/v1/midi?ppq=4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := postScore(t, srv, tt.path, body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, http.StatusBadRequest, data)
			}
			if code := decodeErrorCode(t, data); code != "INVALID_OPTIONS" {
				t.Errorf("error code = %q, want INVALID_OPTIONS", code)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/v1/nope")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
