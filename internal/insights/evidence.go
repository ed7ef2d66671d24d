package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tetherhq/tether/internal/journal"
)

const (
	evidenceMaxItems    = 4
	observedRecentLogs  = 5
	interpretedPerTool  = 3
	observedFallback    = "No check-ins recorded yet."
	interpretedFallback = "No saved sessions yet."
)

// computeEvidenceSplit derives the observed-vs-interpreted view. Observed
// items are template sentences over the most recent check-ins' own fields;
// interpreted items are titles of recent decoder and clarity sessions. Both
// derive strictly from source records.
func computeEvidenceSplit(ds *Dataset) EvidenceSplit {
	observed := make([]string, 0, evidenceMaxItems)
	logs := ds.DailyLogs
	for i := len(logs) - 1; i >= 0 && len(logs)-1-i < observedRecentLogs; i-- {
		observed = append(observed, observedSentence(logs[i]))
	}
	observed = dedupeCap(observed, evidenceMaxItems)
	if len(observed) == 0 {
		observed = []string{observedFallback}
	}

	interpreted := make([]string, 0, evidenceMaxItems)
	interpreted = append(interpreted, recentTitles(ds.DecoderLogs, interpretedPerTool)...)
	interpreted = append(interpreted, recentTitles(ds.ClarityLogs, interpretedPerTool)...)
	interpreted = dedupeCap(interpreted, evidenceMaxItems)
	if len(interpreted) == 0 {
		interpreted = []string{interpretedFallback}
	}

	return EvidenceSplit{Observed: observed, Interpreted: interpreted}
}

var energyPhrases = map[string]string{
	journal.EnergyICarried:    "You carried the effort",
	journal.EnergyTheyCarried: "They carried the effort",
	journal.EnergyBalanced:    "The effort felt balanced",
}

var directionPhrases = map[string]string{
	journal.DirectionCloser:  "things moved closer",
	journal.DirectionFurther: "things drifted further away",
	journal.DirectionSame:    "things stayed where they were",
}

func observedSentence(d journal.DailyLog) string {
	energy, ok := energyPhrases[d.EnergyExchange]
	if !ok {
		energy = "You logged an interaction"
	}
	direction, ok := directionPhrases[d.Direction]
	if !ok {
		direction = "the direction was unclear"
	}
	return fmt.Sprintf("%s while %s.", energy, direction)
}

// Prefixes the session tools prepend to their titles. Only these are
// stripped; a user-written "Re: ..." title keeps its prefix.
var featureTitlePrefixes = []string{"Decoded: ", "Clarity: ", "Stars: "}

// recentTitles returns the newest n titles with any feature prefix stripped.
func recentTitles(logs []journal.SavedLog, n int) []string {
	titles := make([]string, 0, n)
	for i := len(logs) - 1; i >= 0 && len(titles) < n; i-- {
		title := logs[i].Title
		for _, p := range featureTitlePrefixes {
			if rest, found := strings.CutPrefix(title, p); found {
				title = rest
				break
			}
		}
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func dedupeCap(items []string, max int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, max)
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == max {
			break
		}
	}
	return out
}

// BuildTimeline merges the most recent saved sessions with the user's
// reflections into one bounded explanatory timeline. Reflections carry no
// intrinsic date, so they are stamped with the computation time.
func BuildTimeline(ds *Dataset, reflections []Reflection, limit int, now time.Time) []TimelineItem {
	if limit <= 0 {
		return []TimelineItem{}
	}
	half := (limit + 1) / 2

	items := make([]TimelineItem, 0, limit)
	saved := ds.SavedLogs
	for i := len(saved) - 1; i >= 0 && len(items) < half; i-- {
		items = append(items, TimelineItem{
			Date:    saved[i].Date,
			Source:  TimelineComputed,
			Title:   saved[i].Title,
			Summary: saved[i].Summary,
		})
	}
	for i := 0; i < len(reflections) && i < half; i++ {
		items = append(items, TimelineItem{
			Date:    now,
			Source:  TimelineReflection,
			Title:   reflections[i].Title,
			Summary: reflections[i].Text,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
