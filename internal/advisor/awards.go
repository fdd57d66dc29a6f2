package advisor

import (
	"sort"

	"github.com/tornsuite/consigliere/internal/torn"
)

// Award is one trackable medal/honor target keyed by a personal-stat name.
type Award struct {
	Category string
	Name     string
	StatKey  string
	Target   int64
}

// Awards is the built-in table of targets trackable from personalstats.
// Thresholds follow the in-game medal ladder; untracked awards (time-based,
// event-based) are deliberately absent.
var Awards = []Award{
	{Category: "Attacking", Name: "Contender", StatKey: "attackswon", Target: 100},
	{Category: "Attacking", Name: "Duker", StatKey: "attackswon", Target: 250},
	{Category: "Attacking", Name: "Fistful of Dollars", StatKey: "attackswon", Target: 1000},
	{Category: "Defending", Name: "Defender", StatKey: "defendswon", Target: 250},
	{Category: "Drugs", Name: "Bar Crawler", StatKey: "xantaken", Target: 100},
	{Category: "Drugs", Name: "Benzo Fury", StatKey: "xantaken", Target: 500},
	{Category: "Travel", Name: "Jet Setter", StatKey: "traveltimes", Target: 100},
	{Category: "Travel", Name: "Frequent Flyer", StatKey: "traveltimes", Target: 500},
	{Category: "City", Name: "Scavenger", StatKey: "cityfinds", Target: 100},
	{Category: "Finance", Name: "Millionaire", StatKey: "networth", Target: 1_000_000},
	{Category: "Finance", Name: "Billionaire", StatKey: "networth", Target: 1_000_000_000},
	{Category: "Medical", Name: "Blood Donor", StatKey: "bloodwithdrawn", Target: 100},
	{Category: "Energy", Name: "Refiller", StatKey: "refills", Target: 250},
}

// Progress describes how far a counter is toward a target.
type Progress struct {
	Current   int64
	Target    int64
	Remaining int64
	Percent   float64
	Completed bool
}

// AwardProgress computes progress toward one target.
func AwardProgress(current, target int64) Progress {
	if target > 0 && current >= target {
		return Progress{Current: current, Target: target, Percent: 100, Completed: true}
	}
	p := Progress{Current: current, Target: target, Remaining: target - current}
	if target > 0 {
		p.Percent = float64(current) / float64(target) * 100
	}
	return p
}

// AwardStatus pairs an award with the player's progress toward it.
type AwardStatus struct {
	Award    Award
	Progress Progress
}

// NearestAwards returns the incomplete awards closest to completion,
// best-first, limited to n. Completed awards are skipped.
func NearestAwards(stats torn.PersonalStats, n int) []AwardStatus {
	var out []AwardStatus
	for _, award := range Awards {
		p := AwardProgress(stats[award.StatKey], award.Target)
		if p.Completed {
			continue
		}
		out = append(out, AwardStatus{Award: award, Progress: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Progress.Percent > out[j].Progress.Percent
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
