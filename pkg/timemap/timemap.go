// Package timemap maps score time to performed time. The timemap
// generation pass emits one entry per distinct onset or offset instant;
// consumers drive playback cursors and highlighting from it.
package timemap

import (
	"encoding/json"
	"sort"
)

// Entry links one score-time instant to real time. QStamp is the score
// time in quarter-note units from the start, TStamp the performed time in
// milliseconds. On and Off list the identifiers of the elements starting
// and ending at the instant; Measure is set on entries that open a measure.
type Entry struct {
	QStamp  float64  `json:"qstamp"`
	TStamp  float64  `json:"tstamp"`
	Measure string   `json:"measure,omitempty"`
	On      []string `json:"on,omitempty"`
	Off     []string `json:"off,omitempty"`
}

// Timemap is the ordered list of entries.
type Timemap struct {
	entries map[float64]*Entry
}

// New creates an empty timemap.
func New() *Timemap {
	return &Timemap{entries: make(map[float64]*Entry)}
}

// At returns the entry for the given score time, creating it when needed.
// tstamp is only applied on creation.
func (tm *Timemap) At(qstamp, tstamp float64) *Entry {
	if e, ok := tm.entries[qstamp]; ok {
		return e
	}
	e := &Entry{QStamp: qstamp, TStamp: tstamp}
	tm.entries[qstamp] = e
	return e
}

// AddOn records an element starting at the instant.
func (tm *Timemap) AddOn(qstamp, tstamp float64, id string) {
	e := tm.At(qstamp, tstamp)
	e.On = append(e.On, id)
}

// AddOff records an element ending at the instant.
func (tm *Timemap) AddOff(qstamp, tstamp float64, id string) {
	e := tm.At(qstamp, tstamp)
	e.Off = append(e.Off, id)
}

// MarkMeasure records a measure opening at the instant.
func (tm *Timemap) MarkMeasure(qstamp, tstamp float64, id string) {
	tm.At(qstamp, tstamp).Measure = id
}

// Len returns the number of entries.
func (tm *Timemap) Len() int { return len(tm.entries) }

// Entries returns the entries ordered by score time.
func (tm *Timemap) Entries() []*Entry {
	out := make([]*Entry, 0, len(tm.entries))
	for _, e := range tm.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QStamp < out[j].QStamp })
	return out
}

// MarshalJSON renders the timemap as a flat JSON array of entries.
func (tm *Timemap) MarshalJSON() ([]byte, error) {
	return json.Marshal(tm.Entries())
}
