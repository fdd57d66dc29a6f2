package advisor

import (
	"testing"

	"github.com/tornsuite/consigliere/internal/torn"
)

func TestAwardProgress(t *testing.T) {
	tests := []struct {
		name          string
		current       int64
		target        int64
		wantPercent   float64
		wantRemaining int64
		wantCompleted bool
	}{
		{"untouched", 0, 100, 0, 100, false},
		{"halfway", 50, 100, 50, 50, false},
		{"exactly done", 100, 100, 100, 0, true},
		{"over target", 250, 100, 100, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := AwardProgress(tt.current, tt.target)
			if p.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", p.Percent, tt.wantPercent)
			}
			if p.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", p.Remaining, tt.wantRemaining)
			}
			if p.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", p.Completed, tt.wantCompleted)
			}
		})
	}
}

func TestNearestAwards(t *testing.T) {
	stats := torn.PersonalStats{
		"attackswon": 240, // Contender done, Duker at 96%
		"xantaken":   10,  // Bar Crawler at 10%
		"networth":   900_000,
	}

	nearest := NearestAwards(stats, 3)
	if len(nearest) != 3 {
		t.Fatalf("got %d entries, want 3", len(nearest))
	}
	if nearest[0].Award.Name != "Duker" {
		t.Errorf("closest award = %s, want Duker", nearest[0].Award.Name)
	}
	if nearest[1].Award.Name != "Millionaire" {
		t.Errorf("second award = %s, want Millionaire", nearest[1].Award.Name)
	}
	for _, s := range nearest {
		if s.Progress.Completed {
			t.Errorf("completed award %s must be skipped", s.Award.Name)
		}
	}
}

func TestNearestAwardsLimit(t *testing.T) {
	all := NearestAwards(torn.PersonalStats{}, 100)
	if len(all) != len(Awards) {
		t.Errorf("zero stats: got %d entries, want all %d", len(all), len(Awards))
	}
}
