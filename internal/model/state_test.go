package model

import "testing"

func TestDownloadState_Title(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected string
	}{
		{StatePending, "Pending"},
		{StateRunning, "Running"},
		{StatePaused, "Paused"},
		{StateFailed, "Failed"},
		{StateSuccessful, "Successful"},
		{StateUnknown, ""},
	}

	for _, test := range tests {
		result := test.state.Title()
		if result != test.expected {
			t.Errorf("DownloadState(%q).Title() = %q, expected %q", test.state, result, test.expected)
		}
	}
}

func TestDownloadState_IsFinished(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected bool
	}{
		{StatePending, false},
		{StateRunning, false},
		{StatePaused, false},
		{StateFailed, true},
		{StateSuccessful, true},
		{StateUnknown, false},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("DownloadState(%q).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestDownloadState_IsActive(t *testing.T) {
	tests := []struct {
		state    DownloadState
		expected bool
	}{
		{StatePending, true},
		{StateRunning, true},
		{StatePaused, true},
		{StateFailed, false},
		{StateSuccessful, false},
		{StateUnknown, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("DownloadState(%q).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}
