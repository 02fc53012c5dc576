package review

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"critical", SeverityCritical},
		{"CRITICAL", SeverityCritical},
		{" Major ", SeverityMajor},
		{"minor", SeverityMinor},
		{"", SeverityMinor},
		{"blocker", SeverityMinor},
	}

	for _, tt := range tests {
		if got := ParseSeverity(tt.in); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterBySeverity(t *testing.T) {
	candidates := []Candidate{
		{Body: "a", Severity: "critical"},
		{Body: "b", Severity: "major"},
		{Body: "c", Severity: "minor"},
		{Body: "d", Severity: "???"},
	}

	got := FilterBySeverity(candidates, SeverityMajor)
	if len(got) != 2 || got[0].Body != "a" || got[1].Body != "b" {
		t.Errorf("FilterBySeverity(major) = %+v", got)
	}

	if got := FilterBySeverity(candidates, SeverityMinor); len(got) != 4 {
		t.Errorf("FilterBySeverity(minor) kept %d, want all 4", len(got))
	}

	if got := FilterBySeverity(candidates, SeverityCritical); len(got) != 1 {
		t.Errorf("FilterBySeverity(critical) kept %d, want 1", len(got))
	}
}
