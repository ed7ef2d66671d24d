package journal

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndListConnections(t *testing.T) {
	s := testStore(t)

	created, err := s.CreateConnection("  Sam  ", "romantic", "Libra", "moon")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created connection must carry a generated ID")
	}
	if created.Name != "Sam" {
		t.Fatalf("name = %q, want trimmed %q", created.Name, "Sam")
	}
	if created.Status != StatusActive {
		t.Fatalf("status = %q, want active", created.Status)
	}

	conns, err := s.ListConnections()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	got := conns[0]
	if got.ID != created.ID || got.Name != "Sam" || got.Category != "romantic" || got.Zodiac != "Libra" {
		t.Fatalf("listed connection mismatch: %+v", got)
	}
	if got.DailyLogs == nil || got.SavedLogs == nil {
		t.Fatal("log slices must be non-nil even when empty")
	}
}

func TestCreateConnectionRequiresName(t *testing.T) {
	s := testStore(t)
	if _, err := s.CreateConnection("   ", "", "", ""); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestAppendLogsAndRoundTrip(t *testing.T) {
	s := testStore(t)
	conn, err := s.CreateConnection("Sam", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	logDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	dailyIn := DailyLog{
		ConnectionID:   conn.ID,
		Date:           logDate,
		EnergyExchange: EnergyICarried,
		Direction:      DirectionFurther,
		Clarity:        35,
		EffortSignals:  []string{"double text", "made plans"},
		EmotionState:   EmotionUncertain,
		Notes:          "felt off all day",
	}
	dailyOut, err := s.AppendDailyLog(dailyIn)
	if err != nil {
		t.Fatalf("append daily: %v", err)
	}
	if dailyOut.ID == "" {
		t.Fatal("appended daily log must carry a generated ID")
	}

	savedIn := SavedLog{
		ConnectionID: conn.ID,
		Date:         logDate.AddDate(0, 0, 1),
		Source:       SourceDecoder,
		Title:        "Decoded: the short reply",
		Summary:      "probably just busy",
	}
	if _, err := s.AppendSavedLog(savedIn); err != nil {
		t.Fatalf("append saved: %v", err)
	}

	conns, err := s.ListConnections()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conns[0].DailyLogs) != 1 || len(conns[0].SavedLogs) != 1 {
		t.Fatalf("log counts = %d daily / %d saved, want 1/1",
			len(conns[0].DailyLogs), len(conns[0].SavedLogs))
	}

	gotDaily := conns[0].DailyLogs[0]
	dailyIn.ID = gotDaily.ID
	if diff := cmp.Diff(dailyIn, gotDaily); diff != "" {
		t.Fatalf("daily log round trip mismatch (-want +got):\n%s", diff)
	}

	gotSaved := conns[0].SavedLogs[0]
	if gotSaved.Title != savedIn.Title || gotSaved.Source != SourceDecoder {
		t.Fatalf("saved log round trip mismatch: %+v", gotSaved)
	}
}

func TestDailyLogsOrderedByDate(t *testing.T) {
	s := testStore(t)
	conn, err := s.CreateConnection("Sam", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Insert out of order; listing must come back date-ascending.
	for _, day := range []int{5, 1, 3} {
		_, err := s.AppendDailyLog(DailyLog{
			ConnectionID:   conn.ID,
			Date:           base.AddDate(0, 0, day),
			EnergyExchange: EnergyBalanced,
			Direction:      DirectionSame,
			EmotionState:   EmotionGrounded,
		})
		if err != nil {
			t.Fatalf("append day %d: %v", day, err)
		}
	}

	conns, err := s.ListConnections()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	logs := conns[0].DailyLogs
	for i := 1; i < len(logs); i++ {
		if logs[i].Date.Before(logs[i-1].Date) {
			t.Fatalf("daily logs not ascending at index %d", i)
		}
	}
}

func TestArchiveAndRestore(t *testing.T) {
	s := testStore(t)
	conn, err := s.CreateConnection("Sam", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.ArchiveConnection(conn.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	conns, _ := s.ListConnections()
	if conns[0].Status != StatusArchived {
		t.Fatalf("status = %q, want archived", conns[0].Status)
	}

	if err := s.RestoreConnection(conn.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	conns, _ = s.ListConnections()
	if conns[0].Status != StatusActive {
		t.Fatalf("status = %q, want active", conns[0].Status)
	}
}

func TestUpdateConnection(t *testing.T) {
	s := testStore(t)
	conn, err := s.CreateConnection("Sam", "", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.UpdateConnection(conn.ID, "Samuel", "friend", "Aries", "sun"); err != nil {
		t.Fatalf("update: %v", err)
	}

	conns, _ := s.ListConnections()
	got := conns[0]
	if got.Name != "Samuel" || got.Category != "friend" || got.Zodiac != "Aries" || got.Icon != "sun" {
		t.Fatalf("updated connection mismatch: %+v", got)
	}
}

func TestDeleteConnectionCascadesLogs(t *testing.T) {
	s := testStore(t)
	keep, err := s.CreateConnection("Keep", "", "", "")
	if err != nil {
		t.Fatalf("create keep: %v", err)
	}
	gone, err := s.CreateConnection("Gone", "", "", "")
	if err != nil {
		t.Fatalf("create gone: %v", err)
	}

	for _, id := range []string{keep.ID, gone.ID} {
		_, err := s.AppendDailyLog(DailyLog{
			ConnectionID:   id,
			EnergyExchange: EnergyBalanced,
			Direction:      DirectionSame,
			EmotionState:   EmotionGrounded,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := s.DeleteConnection(gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	conns, err := s.ListConnections()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(conns) != 1 || conns[0].ID != keep.ID {
		t.Fatalf("expected only the kept connection, got %+v", conns)
	}
	if len(conns[0].DailyLogs) != 1 {
		t.Fatalf("kept connection lost its logs: %d", len(conns[0].DailyLogs))
	}
}

func TestOperationsOnMissingConnection(t *testing.T) {
	s := testStore(t)

	for name, op := range map[string]func() error{
		"archive": func() error { return s.ArchiveConnection("nope") },
		"delete":  func() error { return s.DeleteConnection("nope") },
		"update":  func() error { return s.UpdateConnection("nope", "x", "", "", "") },
	} {
		err := op()
		if err == nil {
			t.Fatalf("%s: expected not-found error", name)
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Fatalf("%s: error %q should say not found", name, err)
		}
	}
}

func TestAppendLogRequiresConnectionID(t *testing.T) {
	s := testStore(t)
	if _, err := s.AppendDailyLog(DailyLog{}); err == nil {
		t.Fatal("expected error for missing connection id")
	}
	if _, err := s.AppendSavedLog(SavedLog{}); err == nil {
		t.Fatal("expected error for missing connection id")
	}
}
