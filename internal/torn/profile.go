package torn

// Profile-side selections consumed by the advisory heuristics.

// CriminalRecord maps crime-category keys (as the API names them) to counts.
type CriminalRecord map[string]int

// ParseCriminalRecord extracts the criminalrecord selection; absent or
// malformed data yields an empty record.
func ParseCriminalRecord(doc RawDocument) CriminalRecord {
	rec := CriminalRecord{}
	decodeField(doc, "criminalrecord", &rec)
	return rec
}

// BattleStats are the four combat stats. The battlestats selection returns
// them flat at the document root.
type BattleStats struct {
	Strength  float64
	Speed     float64
	Defense   float64
	Dexterity float64
}

// Total returns the combined battle stats.
func (b BattleStats) Total() float64 {
	return b.Strength + b.Speed + b.Defense + b.Dexterity
}

// ParseBattleStats extracts battle stats, defaulting missing values to 0.
func ParseBattleStats(doc RawDocument) BattleStats {
	var b BattleStats
	decodeField(doc, "strength", &b.Strength)
	decodeField(doc, "speed", &b.Speed)
	decodeField(doc, "defense", &b.Defense)
	decodeField(doc, "dexterity", &b.Dexterity)
	return b
}

// PersonalStats maps personal-stat keys to lifetime counters.
type PersonalStats map[string]int64

// ParsePersonalStats extracts the personalstats selection; absent or
// malformed data yields an empty map.
func ParsePersonalStats(doc RawDocument) PersonalStats {
	stats := PersonalStats{}
	decodeField(doc, "personalstats", &stats)
	return stats
}
