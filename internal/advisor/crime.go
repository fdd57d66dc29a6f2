// Package advisor computes the bot's advisory heuristics: crime safety from
// Effective Arsons, award progress, and gym stat balance.
//
// All of it is community game-math — approximations the player treats as
// guidance, not contracts. Tables are ordered slices so tests and future
// tuning never touch control flow.
package advisor

import (
	"math"
	"sort"

	"github.com/tornsuite/consigliere/internal/torn"
)

// CrimeClass is one crime category with its community EA multiplier and the
// minimum EA considered safe before attempting it.
type CrimeClass struct {
	Key        string  // criminalrecord key
	Display    string
	Multiplier float64 // CE gained per crime, relative to arson
	SafeEA     float64 // minimum EA to attempt without excessive fail risk
}

// CrimeTable is ordered from lowest to highest crime experience yield.
var CrimeTable = []CrimeClass{
	{Key: "selling_illegal_products", Display: "Selling Illegal Products", Multiplier: 0.05, SafeEA: 0},
	{Key: "theft", Display: "Theft", Multiplier: 0.10, SafeEA: 25},
	{Key: "other", Display: "Other (Arson etc.)", Multiplier: 0.15, SafeEA: 50},
	{Key: "auto_theft", Display: "Auto Theft", Multiplier: 0.25, SafeEA: 100},
	{Key: "drug_deals", Display: "Drug Deals", Multiplier: 0.33, SafeEA: 250},
	{Key: "computer_crimes", Display: "Computer Crimes", Multiplier: 0.50, SafeEA: 500},
	{Key: "fraud_crimes", Display: "Fraud", Multiplier: 0.66, SafeEA: 750},
	{Key: "murder", Display: "Murder", Multiplier: 0.80, SafeEA: 1000},
}

// EALevel is one rung of the community experience ladder.
type EALevel struct {
	Min  float64
	Name string
	Icon string
}

// EALevels is ordered ascending by Min.
var EALevels = []EALevel{
	{Min: 0, Name: "Novice", Icon: "🌱"},
	{Min: 50, Name: "Amateur", Icon: "🔰"},
	{Min: 100, Name: "Professional", Icon: "🦾"},
	{Min: 250, Name: "Expert", Icon: "⚡"},
	{Min: 500, Name: "Elite", Icon: "💎"},
	{Min: 1000, Name: "Master", Icon: "👑"},
	{Min: 2500, Name: "Legend", Icon: "🏆"},
}

// EffectiveArsons estimates hidden crime experience from the criminal
// record, rounded to one decimal.
func EffectiveArsons(record torn.CriminalRecord) float64 {
	var total float64
	for _, class := range CrimeTable {
		total += float64(record[class.Key]) * class.Multiplier
	}
	return math.Round(total*10) / 10
}

// LevelFor returns the highest ladder rung at or below the given EA.
func LevelFor(ea float64) EALevel {
	level := EALevels[0]
	for _, l := range EALevels {
		if ea >= l.Min {
			level = l
		}
	}
	return level
}

// NextLevel returns the next rung above the given EA and true, or the zero
// level and false when EA is already on the top rung.
func NextLevel(ea float64) (EALevel, bool) {
	for _, l := range EALevels {
		if ea < l.Min {
			return l, true
		}
	}
	return EALevel{}, false
}

// CrimeVerdict is the safety call for one crime class at a given EA.
type CrimeVerdict struct {
	Crime     CrimeClass
	Safe      bool
	Shortfall float64 // EA still needed; 0 when safe
}

// SafetyReport evaluates every crime class against the given EA, ordered as
// in CrimeTable.
func SafetyReport(ea float64) []CrimeVerdict {
	out := make([]CrimeVerdict, len(CrimeTable))
	for i, class := range CrimeTable {
		verdict := CrimeVerdict{Crime: class, Safe: ea >= class.SafeEA}
		if !verdict.Safe {
			verdict.Shortfall = class.SafeEA - ea
		}
		out[i] = verdict
	}
	return out
}

// BestSafeCrime returns the highest-yield crime currently considered safe.
// The table guarantees at least one always-safe entry.
func BestSafeCrime(ea float64) CrimeClass {
	best := CrimeTable[0]
	for _, class := range CrimeTable {
		if ea >= class.SafeEA && class.Multiplier >= best.Multiplier {
			best = class
		}
	}
	return best
}

// TopCrimes returns the record's categories sorted by count descending,
// limited to n.
func TopCrimes(record torn.CriminalRecord, n int) []CrimeClass {
	classes := make([]CrimeClass, 0, len(CrimeTable))
	classes = append(classes, CrimeTable...)
	sort.SliceStable(classes, func(i, j int) bool {
		return record[classes[i].Key] > record[classes[j].Key]
	})
	if n < len(classes) {
		classes = classes[:n]
	}
	return classes
}
