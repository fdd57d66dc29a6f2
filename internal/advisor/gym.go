package advisor

import (
	"fmt"

	"github.com/tornsuite/consigliere/internal/torn"
)

// A stat is flagged as lagging when it falls below this fraction of the
// strongest stat.
const gymBalanceFloor = 0.5

// GymAdvice is the stat-balance heuristic result.
type GymAdvice struct {
	Total     float64
	Shares    map[string]float64 // fraction of total per stat
	Weakest   string
	Strongest string
	Balanced  bool
	Focus     string // stat to train next; empty when there is nothing to say
}

// AnalyzeGym flags battle-stat imbalance and recommends a training focus.
// With no recorded stats it returns a zero-value advice with Balanced true.
func AnalyzeGym(stats torn.BattleStats) GymAdvice {
	total := stats.Total()
	advice := GymAdvice{Total: total, Balanced: true}
	if total <= 0 {
		return advice
	}

	values := []struct {
		name  string
		value float64
	}{
		{"strength", stats.Strength},
		{"speed", stats.Speed},
		{"defense", stats.Defense},
		{"dexterity", stats.Dexterity},
	}

	advice.Shares = make(map[string]float64, len(values))
	weakest, strongest := values[0], values[0]
	for _, v := range values {
		advice.Shares[v.name] = v.value / total
		if v.value < weakest.value {
			weakest = v
		}
		if v.value > strongest.value {
			strongest = v
		}
	}
	advice.Weakest = weakest.name
	advice.Strongest = strongest.name

	if strongest.value > 0 && weakest.value < strongest.value*gymBalanceFloor {
		advice.Balanced = false
		advice.Focus = weakest.name
	}
	return advice
}

// Summary renders the advice as one chat-ready line.
func (g GymAdvice) Summary() string {
	if g.Total <= 0 {
		return "No battle stats recorded yet, Boss. Any gym session counts."
	}
	if g.Balanced {
		return fmt.Sprintf("Build looks balanced at %.0f total. Keep rotating, Boss.", g.Total)
	}
	return fmt.Sprintf("%s is lagging at %.0f%% of your %s. Focus gym time there, Boss.",
		g.Focus, g.Shares[g.Focus]*100/maxShare(g), g.Strongest)
}

func maxShare(g GymAdvice) float64 {
	if s, ok := g.Shares[g.Strongest]; ok && s > 0 {
		return s
	}
	return 1
}
