package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"inferoute/pkg/dispatch"
	"inferoute/pkg/schedule"
)

func TestJournal_RecordsAdmitsAndRejects(t *testing.T) {
	j := New()
	start := time.Unix(100, 0)
	j.OnRunStart(start, 3)
	j.OnAdmit(start, "/a", dispatch.Request{ID: "r1", TokenCost: 10}, dispatch.Header{})
	j.OnReject(start, "/a", dispatch.Request{ID: "r2", TokenCost: 15}, &dispatch.RequestLimitError{Route: "/a"})
	j.OnAdmit(start.Add(2*time.Second), "/a", dispatch.Request{ID: "r2", TokenCost: 15}, dispatch.Header{})

	fulfilled := j.Fulfilled("/a")
	if len(fulfilled) != 2 {
		t.Fatalf("expected 2 fulfilled, got %d", len(fulfilled))
	}
	if fulfilled[0].ElapsedSec != 0 || fulfilled[1].ElapsedSec != 2 {
		t.Fatalf("unexpected elapsed times: %+v", fulfilled)
	}
	if fulfilled[1].Status != StatusFulfilled {
		t.Fatalf("unexpected status %q", fulfilled[1].Status)
	}
	if errored := j.Errored("/a"); len(errored) != 1 || errored[0].RequestID != "r2" {
		t.Fatalf("unexpected errored entries: %+v", errored)
	}
}

func TestJournal_Statistics(t *testing.T) {
	j := New()
	start := time.Unix(0, 0)
	j.OnRunStart(start, 4)
	j.OnAdmit(start, "/a", dispatch.Request{ID: "r1", TokenCost: 5}, dispatch.Header{})
	j.OnAdmit(start.Add(3*time.Second), "/b", dispatch.Request{ID: "r2", TokenCost: 5}, dispatch.Header{})
	j.OnAdmit(start.Add(1*time.Second), "/a", dispatch.Request{ID: "r3", TokenCost: 5}, dispatch.Header{})
	j.OnReject(start, "/a", dispatch.Request{ID: "r4", TokenCost: 50}, &dispatch.TokenLimitError{Route: "/a"})

	stats := j.Statistics()
	want := Statistics{
		TotalElapsedTime:   4,
		NumErrors:          1,
		LongestElapsedTime: 3,
		TotalFulfilled:     3,
	}
	if stats != want {
		t.Fatalf("statistics %+v, want %+v", stats, want)
	}
	if got := j.Routes(); !reflect.DeepEqual(got, []string{"/a", "/b"}) {
		t.Fatalf("routes %v", got)
	}
}

func TestJournal_SaveRoundTrip(t *testing.T) {
	j := New()
	start := time.Unix(0, 0)
	j.OnRunStart(start, 1)
	j.OnAdmit(start, "/a", dispatch.Request{ID: "r1", TokenCost: 10}, dispatch.Header{})
	j.OnRunEnd(start, schedule.Report{Fulfilled: 1})

	path := filepath.Join(t.TempDir(), "journal.json")
	if err := j.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var layout struct {
		Report     schedule.Report    `json:"report"`
		Statistics Statistics         `json:"statistics"`
		Fulfilled  map[string][]Entry `json:"fulfilled"`
	}
	if err := json.Unmarshal(payload, &layout); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if layout.Report.Fulfilled != 1 || layout.Statistics.TotalFulfilled != 1 {
		t.Fatalf("unexpected saved layout: %+v", layout)
	}
	if len(layout.Fulfilled["/a"]) != 1 {
		t.Fatalf("expected one saved entry for /a")
	}
}

func TestJournal_SaveRequiresPath(t *testing.T) {
	if err := New().Save(""); err == nil {
		t.Fatal("expected an error for the empty path")
	}
}
