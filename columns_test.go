package fogbugz

import (
	"encoding/json"
	"testing"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in   string
		want Column
	}{
		{"ixBug", ColCaseID},
		{"caseid", ColCaseID},
		{"CaseID", ColCaseID},
		{"title", ColTitle},
		{"sTitle", ColTitle},
		{"body", ColBody},
		{"projectid", ColProjectID},
		{"isopen", ColIsOpen},
		{"hrsElapsed", ColHoursElapsed},
		{"  status  ", ColStatus},
	}
	for _, tt := range tests {
		got, err := ParseColumn(tt.in)
		if err != nil {
			t.Errorf("ParseColumn(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColumn("nonsense"); err == nil {
		t.Error("ParseColumn(nonsense) = nil error")
	}
}

func TestCategory_Unmarshal(t *testing.T) {
	var c Category
	if err := json.Unmarshal([]byte("2"), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != CategoryFeature {
		t.Errorf("category = %v", c)
	}
	if c.String() != "Feature" {
		t.Errorf("String() = %q", c.String())
	}

	if err := json.Unmarshal([]byte("99"), &c); err == nil {
		t.Error("unmarshal out-of-range category: err = nil")
	}
	if err := json.Unmarshal([]byte("0"), &c); err == nil {
		t.Error("unmarshal zero category: err = nil")
	}
}

func TestPriority_Unmarshal(t *testing.T) {
	var p Priority
	if err := json.Unmarshal([]byte("1"), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p != PriorityBlocker {
		t.Errorf("priority = %v", p)
	}
	if err := json.Unmarshal([]byte("8"), &p); err == nil {
		t.Error("unmarshal out-of-range priority: err = nil")
	}
}

func TestEventType_UnknownIsTolerated(t *testing.T) {
	var e EventType
	if err := json.Unmarshal([]byte("14"), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e != EventResolved {
		t.Errorf("event = %v", e)
	}

	// Unknown codes must not fail case decoding.
	if err := json.Unmarshal([]byte("42"), &e); err != nil {
		t.Fatalf("unmarshal unknown code: %v", err)
	}
	if e != EventUnknown {
		t.Errorf("event = %v, want EventUnknown", e)
	}
}
