package timemap

import (
	"encoding/json"
	"testing"
)

func TestTimemap_Entries(t *testing.T) {
	tm := New()
	tm.AddOn(1, 500, "n2")
	tm.AddOn(0, 0, "n1")
	tm.AddOff(1, 500, "n1")
	tm.MarkMeasure(0, 0, "m1")

	entries := tm.Entries()
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].QStamp != 0 || entries[1].QStamp != 1 {
		t.Errorf("entries out of order: %v %v", entries[0].QStamp, entries[1].QStamp)
	}
	if entries[0].Measure != "m1" {
		t.Errorf("Measure = %q, want m1", entries[0].Measure)
	}
	if len(entries[1].On) != 1 || entries[1].On[0] != "n2" {
		t.Errorf("On = %v, want [n2]", entries[1].On)
	}
	if len(entries[1].Off) != 1 || entries[1].Off[0] != "n1" {
		t.Errorf("Off = %v, want [n1]", entries[1].Off)
	}
}

func TestTimemap_AtReusesEntry(t *testing.T) {
	tm := New()
	a := tm.At(2, 1000)
	b := tm.At(2, 9999)

	if a != b {
		t.Error("At created a second entry for the same instant")
	}
	if a.TStamp != 1000 {
		t.Errorf("TStamp = %v, want the creation value 1000", a.TStamp)
	}
}

func TestTimemap_MarshalJSON(t *testing.T) {
	tm := New()
	tm.AddOn(0, 0, "n1")
	tm.AddOff(4, 2000, "n1")

	data, err := json.Marshal(tm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0]["qstamp"].(float64) != 0 {
		t.Errorf("first qstamp = %v, want 0", got[0]["qstamp"])
	}
	if got[1]["tstamp"].(float64) != 2000 {
		t.Errorf("second tstamp = %v, want 2000", got[1]["tstamp"])
	}
	if _, ok := got[0]["off"]; ok {
		t.Error("empty off list serialized, want omitted")
	}
}
