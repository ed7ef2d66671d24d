package insights

import (
	"sort"
	"time"

	"github.com/tetherhq/tether/internal/journal"
)

// Dataset is the working view of a user's history for one profile
// computation: active connections only, logs filtered to the trailing
// window, saved logs pre-split by source. It is derived, never persisted.
type Dataset struct {
	Now        time.Time
	WindowDays int

	Connections []journal.Connection

	DailyLogs   []journal.DailyLog
	DailyLogs30 []journal.DailyLog
	DailyByConn map[string][]journal.DailyLog

	SavedLogs   []journal.SavedLog
	ClarityLogs []journal.SavedLog
	DecoderLogs []journal.SavedLog
	StarsLogs   []journal.SavedLog
}

// Extract builds the dataset for one run. It is a pure function of
// (connections, now, windowDays): now is evaluated exactly once by the
// caller so every filter in the run agrees on what "today" means. The 30-day
// sub-window is produced in the same pass rather than by re-filtering.
func Extract(conns []journal.Connection, now time.Time, windowDays int) *Dataset {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	ds := &Dataset{
		Now:         now,
		WindowDays:  windowDays,
		Connections: make([]journal.Connection, 0, len(conns)),
		DailyLogs:   []journal.DailyLog{},
		DailyLogs30: []journal.DailyLog{},
		DailyByConn: make(map[string][]journal.DailyLog),
		SavedLogs:   []journal.SavedLog{},
		ClarityLogs: []journal.SavedLog{},
		DecoderLogs: []journal.SavedLog{},
		StarsLogs:   []journal.SavedLog{},
	}

	for _, c := range conns {
		if c.Status != journal.StatusActive {
			continue
		}
		ds.Connections = append(ds.Connections, c)

		for _, d := range c.DailyLogs {
			if daysBetween(d.Date, now) > windowDays {
				continue
			}
			ds.DailyLogs = append(ds.DailyLogs, d)
			ds.DailyByConn[c.ID] = append(ds.DailyByConn[c.ID], d)
			if daysBetween(d.Date, now) <= recentWindowDays {
				ds.DailyLogs30 = append(ds.DailyLogs30, d)
			}
		}

		for _, l := range c.SavedLogs {
			if daysBetween(l.Date, now) > windowDays {
				continue
			}
			ds.SavedLogs = append(ds.SavedLogs, l)
			switch l.Source {
			case journal.SourceClarity:
				ds.ClarityLogs = append(ds.ClarityLogs, l)
			case journal.SourceDecoder:
				ds.DecoderLogs = append(ds.DecoderLogs, l)
			case journal.SourceStars:
				ds.StarsLogs = append(ds.StarsLogs, l)
			}
		}
	}

	sortDailyAsc(ds.DailyLogs)
	sortDailyAsc(ds.DailyLogs30)
	for id := range ds.DailyByConn {
		sortDailyAsc(ds.DailyByConn[id])
	}
	sortSavedAsc(ds.SavedLogs)
	sortSavedAsc(ds.ClarityLogs)
	sortSavedAsc(ds.DecoderLogs)
	sortSavedAsc(ds.StarsLogs)

	return ds
}

// daysBetween is the whole number of days from the record date to now.
func daysBetween(date, now time.Time) int {
	return int(now.Sub(date).Hours() / 24)
}

func sortDailyAsc(logs []journal.DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
}

func sortSavedAsc(logs []journal.SavedLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
}

// Counts snapshots how much raw material the dataset holds.
func (ds *Dataset) Counts() EvidenceCounts {
	return EvidenceCounts{
		ActiveConnections: len(ds.Connections),
		DailyLogs:         len(ds.DailyLogs),
		SavedLogs:         len(ds.SavedLogs),
	}
}

func (ds *Dataset) countEnergy(value string) int {
	n := 0
	for _, d := range ds.DailyLogs {
		if d.EnergyExchange == value {
			n++
		}
	}
	return n
}

func (ds *Dataset) countDirection(value string) int {
	n := 0
	for _, d := range ds.DailyLogs {
		if d.Direction == value {
			n++
		}
	}
	return n
}

func (ds *Dataset) countEmotion(states ...string) int {
	n := 0
	for _, d := range ds.DailyLogs {
		for _, s := range states {
			if d.EmotionState == s {
				n++
				break
			}
		}
	}
	return n
}

// recentDecoderUses counts decoder sessions within the trailing pulse window.
func (ds *Dataset) recentDecoderUses() int {
	n := 0
	for _, l := range ds.DecoderLogs {
		if daysBetween(l.Date, ds.Now) <= pulseWindowDays {
			n++
		}
	}
	return n
}
