package insights

import (
	"sort"

	"github.com/tetherhq/tether/internal/journal"
)

// Raw states that read as anxious-leaning for pattern detection.
var anxiousLeaning = map[string]bool{
	journal.EmotionUncertain:   true,
	journal.EmotionPreoccupied: true,
	journal.EmotionDraining:    true,
}

// Named cross-connection patterns.
const (
	patternReassuranceSeeking = "reassurance seeking"
	patternCarriedWorry       = "carried worry"
	patternFamiliarDynamic    = "familiar dynamic"
)

var patternStages = map[string]PatternStages{
	patternReassuranceSeeking: {
		Trigger:       "Uncertainty about where you stand",
		Reaction:      "You close the gap by carrying the effort",
		TheirResponse: "Momentary reassurance without changed behavior",
		Result:        "The same doubt resurfaces in the next connection",
	},
	patternCarriedWorry: {
		Trigger:       "An unsettled feeling with no clear cause",
		Reaction:      "You monitor the connection more closely",
		TheirResponse: "Nothing changes on their side",
		Result:        "The worry travels with you between connections",
	},
	patternFamiliarDynamic: {
		Trigger:       "A familiar emotional setup",
		Reaction:      "You fall into a practiced role",
		TheirResponse: "They mirror what previous connections did",
		Result:        "Different people, same ending feeling",
	},
}

// computeRepeatingDynamics looks for emotional overlap across connections.
// Each connection contributes its five most recent emotion states; any
// pairwise intersection marks both connections as affected, and a fixed
// decision tree over the accumulated shared states names the pattern.
func computeRepeatingDynamics(ds *Dataset) RepeatingDynamics {
	if len(ds.Connections) < 2 {
		return RepeatingDynamics{
			Detected: false,
			Note:     "Not enough connections to look for repeating dynamics.",
		}
	}

	type connStates struct {
		conn   journal.Connection
		states map[string]bool
	}
	entries := make([]connStates, 0, len(ds.Connections))
	for _, c := range ds.Connections {
		entries = append(entries, connStates{conn: c, states: recentEmotionSet(ds.DailyByConn[c.ID])})
	}

	affected := make(map[string]bool)
	shared := make(map[string]bool)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			overlap := false
			for state := range entries[i].states {
				if entries[j].states[state] {
					shared[state] = true
					overlap = true
				}
			}
			if overlap {
				affected[entries[i].conn.Name] = true
				affected[entries[j].conn.Name] = true
			}
		}
	}

	sharedAnxious := false
	for state := range shared {
		if anxiousLeaning[state] {
			sharedAnxious = true
			break
		}
	}
	carried := false
	for _, d := range ds.DailyLogs {
		if d.EnergyExchange == journal.EnergyICarried {
			carried = true
			break
		}
	}

	var pattern, note string
	switch {
	case sharedAnxious && carried:
		pattern = patternReassuranceSeeking
		note = "The same anxious states show up across connections, and you tend to answer them by carrying the effort."
	case sharedAnxious:
		pattern = patternCarriedWorry
		note = "The same anxious states show up across connections even when the effort stays balanced."
	case len(affected) >= 2:
		pattern = patternFamiliarDynamic
		note = "Different connections keep landing in the same emotional place."
	default:
		return RepeatingDynamics{
			Detected: false,
			Note:     "No repeating dynamic across your connections right now.",
		}
	}

	stages := patternStages[pattern]
	return RepeatingDynamics{
		Detected:            true,
		Pattern:             pattern,
		Note:                note,
		AffectedConnections: sortedKeys(affected),
		SharedEmotions:      sortedKeys(shared),
		Stages:              &stages,
	}
}

// recentEmotionSet is the set of emotion states across the connection's five
// most recent in-window check-ins. Logs arrive sorted ascending by date.
func recentEmotionSet(logs []journal.DailyLog) map[string]bool {
	states := make(map[string]bool)
	start := len(logs) - dynamicsRecentStates
	if start < 0 {
		start = 0
	}
	for _, d := range logs[start:] {
		if d.EmotionState != "" {
			states[d.EmotionState] = true
		}
	}
	return states
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
