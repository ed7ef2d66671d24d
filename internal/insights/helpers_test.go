package insights

import (
	"fmt"
	"time"

	"github.com/tetherhq/tether/internal/journal"
)

// testNow is the fixed reference time every insight test computes against.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// daysAgo returns a timestamp n whole days before testNow.
func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func activeConn(name string) journal.Connection {
	return journal.Connection{
		ID:        "conn-" + name,
		Name:      name,
		Status:    journal.StatusActive,
		CreatedAt: daysAgo(120),
	}
}

func daily(connID string, ago int, energy, direction string, clarity int, emotion string) journal.DailyLog {
	return journal.DailyLog{
		ID:             fmt.Sprintf("%s-daily-%d", connID, ago),
		ConnectionID:   connID,
		Date:           daysAgo(ago),
		EnergyExchange: energy,
		Direction:      direction,
		Clarity:        clarity,
		EmotionState:   emotion,
	}
}

func saved(connID string, ago int, source, title string) journal.SavedLog {
	return journal.SavedLog{
		ID:           fmt.Sprintf("%s-%s-%d", connID, source, ago),
		ConnectionID: connID,
		Date:         daysAgo(ago),
		Source:       source,
		Title:        title,
	}
}

func extractFor(t interface{ Helper() }, conns ...journal.Connection) *Dataset {
	t.Helper()
	return Extract(conns, testNow, defaultWindowDays)
}
