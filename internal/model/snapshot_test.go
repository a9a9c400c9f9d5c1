package model

import "testing"

func TestNewSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int64
		total      int64
		expected   Snapshot
	}{
		{"half", 250, 500, Snapshot{250, 500, 50, StateRunning}},
		{"rounds down", 1, 3, Snapshot{1, 3, 33, StateRunning}},
		{"done", 500, 500, Snapshot{500, 500, 100, StateRunning}},
		{"unknown total", 250, -1, Snapshot{0, 0, 0, StateRunning}},
		{"zero total", 250, 0, Snapshot{0, 0, 0, StateRunning}},
		{"overshoot", 600, 500, Snapshot{500, 500, 100, StateRunning}},
		{"negative downloaded", -5, 500, Snapshot{0, 500, 0, StateRunning}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := NewSnapshot(test.downloaded, test.total, StateRunning)
			if result != test.expected {
				t.Errorf("NewSnapshot(%d, %d) = %+v, expected %+v", test.downloaded, test.total, result, test.expected)
			}
		})
	}
}

func TestNewSnapshot_PercentInvariant(t *testing.T) {
	for total := int64(0); total <= 300; total += 7 {
		for downloaded := int64(0); downloaded <= total+10; downloaded += 3 {
			s := NewSnapshot(downloaded, total, StateRunning)
			if s.Percent < 0 || s.Percent > 100 {
				t.Fatalf("percent out of range for %d/%d: %d", downloaded, total, s.Percent)
			}
			if s.Total == 0 && (s.Downloaded != 0 || s.Percent != 0) {
				t.Fatalf("unknown total must zero progress, got %+v", s)
			}
			denominator := s.Total
			if denominator < 1 {
				denominator = 1
			}
			if want := int(s.Downloaded * 100 / denominator); s.Percent != want {
				t.Fatalf("percent for %d/%d = %d, expected %d", s.Downloaded, s.Total, s.Percent, want)
			}
		}
	}
}

func TestSnapshot_Describe(t *testing.T) {
	tests := []struct {
		snapshot Snapshot
		name     string
		expected string
	}{
		{NewSnapshot(250, 500, StateRunning), "add_sub.mp4", "Running download of add_sub.mp4: 250 of 500 (50%)"},
		{NewSnapshot(0, 0, StatePending), "add_sub.srt", "Pending download of add_sub.srt: 0 of 0 (0%)"},
		{Snapshot{}, "add_sub.png", " download of add_sub.png: 0 of 0 (0%)"},
	}

	for _, test := range tests {
		result := test.snapshot.Describe(test.name)
		if result != test.expected {
			t.Errorf("Describe(%s) = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestSnapshot_Fraction(t *testing.T) {
	s := NewSnapshot(250, 1000, StateRunning)
	if s.Fraction() != 0.25 {
		t.Errorf("Fraction() = %v, expected 0.25", s.Fraction())
	}
}
