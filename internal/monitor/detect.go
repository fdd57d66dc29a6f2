package monitor

import (
	"fmt"
	"strings"

	"github.com/tornsuite/consigliere/internal/torn"
)

// TransitionState holds the previous tick's booleans, one per monitored
// condition. It lives in memory for the process lifetime; a restart resets
// it, costing at most one missed or duplicate edge alert.
type TransitionState struct {
	EnergyWasFull            bool
	NerveWasFull             bool
	WasInHospital            bool
	DrugCooldownWasActive    bool
	BoosterCooldownWasActive bool
	WasTraveling             bool
	TravelNotified           bool
	WasStudying              bool
	EducationNotified        bool
}

// Detect computes edge-triggered alerts from the current snapshot against
// the previous tick's state.
//
// Every condition follows the same rule: emit only on the false→true edge,
// then overwrite the stored flag with the current predicate unconditionally.
// The overwrite must happen whether or not an alert fired — it is what stops
// re-notification while a condition holds, without ever suppressing the next
// genuine edge.
func Detect(snap torn.Snapshot, prev *TransitionState) []Notification {
	var out []Notification

	// Energy full
	energyFull := snap.Energy.Full()
	if energyFull && !prev.EnergyWasFull {
		out = append(out, Notification{
			Category: CategoryEnergyFull,
			Icon:     "⚡", Title: "ENERGY FULL",
			Body: fmt.Sprintf("Boss, energy is maxed out (%d/%d). Time to hit the gym.",
				snap.Energy.Current, snap.Energy.Maximum),
		})
	}
	prev.EnergyWasFull = energyFull

	// Nerve full
	nerveFull := snap.Nerve.Full()
	if nerveFull && !prev.NerveWasFull {
		out = append(out, Notification{
			Category: CategoryNerveFull,
			Icon:     "🔥", Title: "NERVE FULL",
			Body: fmt.Sprintf("Boss, nerve is maxed out (%d/%d). Time for crimes.",
				snap.Nerve.Current, snap.Nerve.Maximum),
		})
	}
	prev.NerveWasFull = nerveFull

	// Hospital exit — the negative edge: alert when in-hospital goes away.
	inHospital := strings.EqualFold(snap.Status.State, "hospital")
	if prev.WasInHospital && !inHospital {
		out = append(out, Notification{
			Category: CategoryHospitalExit,
			Icon:     "🏥", Title: "OUT OF HOSPITAL",
			Body: "Back on your feet, Boss. Ready for action.",
		})
	}
	prev.WasInHospital = inHospital

	// Drug cooldown end
	drugActive := snap.Cooldowns.Drug > 0
	if prev.DrugCooldownWasActive && !drugActive {
		out = append(out, Notification{
			Category: CategoryDrugReady,
			Icon:     "💊", Title: "DRUG COOLDOWN OVER",
			Body: "You can pop another Xanax, Boss.",
		})
	}
	prev.DrugCooldownWasActive = drugActive

	// Booster cooldown end
	boosterActive := snap.Cooldowns.Booster > 0
	if prev.BoosterCooldownWasActive && !boosterActive {
		out = append(out, Notification{
			Category: CategoryBoosterReady,
			Icon:     "💉", Title: "BOOSTER COOLDOWN OVER",
			Body: "Boosters are back on the menu, Boss.",
		})
	}
	prev.BoosterCooldownWasActive = boosterActive

	// Travel landing — one alert per trip. The notified flag resets on the
	// fresh-trip edge, not on landing, so a tick-long API glitch mid-flight
	// cannot re-arm it.
	traveling := snap.Travel.TimeLeft > 0 && snap.Travel.Destination != "Torn"
	if traveling && !prev.WasTraveling {
		prev.TravelNotified = false
	}
	if traveling && snap.Travel.TimeLeft <= travelImminentSeconds && !prev.TravelNotified {
		out = append(out, Notification{
			Category: CategoryTravelLanding,
			Icon:     "✈️", Title: "LANDING SOON",
			Body: fmt.Sprintf("Touching down in %s in %dm %ds. Watch out for muggers.",
				snap.Travel.Destination, snap.Travel.TimeLeft/60, snap.Travel.TimeLeft%60),
		})
		prev.TravelNotified = true
	}
	prev.WasTraveling = traveling

	// Study finishing — same per-session pattern as travel.
	studying := snap.Education.TimeLeft > 0
	if studying && !prev.WasStudying {
		prev.EducationNotified = false
	}
	if studying && snap.Education.TimeLeft <= studyImminentSeconds && !prev.EducationNotified {
		out = append(out, Notification{
			Category: CategoryStudyDone,
			Icon:     "🎓", Title: "STUDY ALERT",
			Body: fmt.Sprintf("Course wraps up in %s. Line up the next one, Boss.",
				formatStudyTime(snap.Education.TimeLeft)),
		})
		prev.EducationNotified = true
	}
	prev.WasStudying = studying

	return out
}

func formatStudyTime(seconds int) string {
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
