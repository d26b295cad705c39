package consts

import "testing"

func TestServiceName(t *testing.T) {
	if ServiceName != "prsentry" {
		t.Errorf("ServiceName = %q, want %q", ServiceName, "prsentry")
	}
}

func TestProjectInfo(t *testing.T) {
	if ProjectName != "PRSentry" {
		t.Errorf("ProjectName = %q, want %q", ProjectName, "PRSentry")
	}
	if ProjectURL != "https://github.com/prsentry/prsentry" {
		t.Errorf("ProjectURL = %q, want %q", ProjectURL, "https://github.com/prsentry/prsentry")
	}
}

func TestReviewLimits(t *testing.T) {
	if MaxInlineComments <= 0 {
		t.Errorf("MaxInlineComments = %d, want positive", MaxInlineComments)
	}
	if DefaultMaxDiffBytes <= 0 {
		t.Errorf("DefaultMaxDiffBytes = %d, want positive", DefaultMaxDiffBytes)
	}
}
