package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists connections and their log history in sqlite. The insight
// engine only ever reads from it; writes come from the CLI / app surface.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Pragmas are per-connection; a single pooled connection keeps them in force.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS connections (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			zodiac TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			id TEXT PRIMARY KEY,
			connection_id TEXT NOT NULL REFERENCES connections(id) ON DELETE CASCADE,
			log_date TEXT NOT NULL,
			energy_exchange TEXT NOT NULL,
			direction TEXT NOT NULL,
			clarity INTEGER NOT NULL DEFAULT 0,
			effort_signals TEXT NOT NULL DEFAULT '[]',
			emotion_state TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS saved_logs (
			id TEXT PRIMARY KEY,
			connection_id TEXT NOT NULL REFERENCES connections(id) ON DELETE CASCADE,
			log_date TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_logs_connection ON daily_logs(connection_id, log_date)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_logs_connection ON saved_logs(connection_id, log_date)`,
		`CREATE INDEX IF NOT EXISTS idx_connections_status ON connections(status)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// CreateConnection inserts a new connection and returns it with its generated ID.
func (s *Store) CreateConnection(name, category, zodiac, icon string) (*Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("connection name is required")
	}

	conn := &Connection{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  strings.TrimSpace(category),
		Zodiac:    strings.TrimSpace(zodiac),
		Icon:      strings.TrimSpace(icon),
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
		DailyLogs: []DailyLog{},
		SavedLogs: []SavedLog{},
	}

	_, err := s.db.Exec(`
		INSERT INTO connections (id, name, category, zodiac, icon, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, conn.ID, conn.Name, conn.Category, conn.Zodiac, conn.Icon, conn.Status, conn.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	return conn, nil
}

// UpdateConnection rewrites the identity fields of an existing connection.
func (s *Store) UpdateConnection(id, name, category, zodiac, icon string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE connections SET name = ?, category = ?, zodiac = ?, icon = ?
		WHERE id = ?
	`, strings.TrimSpace(name), strings.TrimSpace(category), strings.TrimSpace(zodiac), strings.TrimSpace(icon), id)
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	return requireRow(res, id)
}

// ArchiveConnection flips a connection to archived so it stops contributing
// to profile computation without losing its history.
func (s *Store) ArchiveConnection(id string) error {
	return s.setStatus(id, StatusArchived)
}

// RestoreConnection flips an archived connection back to active.
func (s *Store) RestoreConnection(id string) error {
	return s.setStatus(id, StatusActive)
}

func (s *Store) setStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE connections SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return requireRow(res, id)
}

// DeleteConnection removes a connection and, via foreign keys, all of its logs.
func (s *Store) DeleteConnection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return requireRow(res, id)
}

// AppendDailyLog records one check-in against a connection.
func (s *Store) AppendDailyLog(entry DailyLog) (*DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ConnectionID == "" {
		return nil, fmt.Errorf("daily log connection id is required")
	}
	entry.ID = uuid.NewString()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	signals, err := json.Marshal(entry.EffortSignals)
	if err != nil {
		return nil, fmt.Errorf("marshal effort signals: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_logs (id, connection_id, log_date, energy_exchange, direction, clarity, effort_signals, emotion_state, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ConnectionID, entry.Date.Format(time.RFC3339), entry.EnergyExchange,
		entry.Direction, entry.Clarity, string(signals), entry.EmotionState, entry.Notes)
	if err != nil {
		return nil, fmt.Errorf("append daily log: %w", err)
	}
	return &entry, nil
}

// AppendSavedLog records one AI-session artifact against a connection.
func (s *Store) AppendSavedLog(entry SavedLog) (*SavedLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ConnectionID == "" {
		return nil, fmt.Errorf("saved log connection id is required")
	}
	entry.ID = uuid.NewString()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO saved_logs (id, connection_id, log_date, source, title, summary, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ConnectionID, entry.Date.Format(time.RFC3339), entry.Source,
		entry.Title, entry.Summary, entry.Content)
	if err != nil {
		return nil, fmt.Errorf("append saved log: %w", err)
	}
	return &entry, nil
}

// ListConnections returns every connection with its full log history attached,
// ordered by creation time.
func (s *Store) ListConnections() ([]Connection, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, zodiac, icon, status, created_at
		FROM connections
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	conns := make([]Connection, 0)
	index := make(map[string]int)
	for rows.Next() {
		var c Connection
		var created string
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Zodiac, &c.Icon, &c.Status, &created); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		c.CreatedAt = parseTime(created)
		c.DailyLogs = []DailyLog{}
		c.SavedLogs = []SavedLog{}
		index[c.ID] = len(conns)
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connections: %w", err)
	}

	if err := s.attachDailyLogs(conns, index); err != nil {
		return nil, err
	}
	if err := s.attachSavedLogs(conns, index); err != nil {
		return nil, err
	}
	return conns, nil
}

func (s *Store) attachDailyLogs(conns []Connection, index map[string]int) error {
	rows, err := s.db.Query(`
		SELECT id, connection_id, log_date, energy_exchange, direction, clarity, effort_signals, emotion_state, notes
		FROM daily_logs
		ORDER BY log_date ASC
	`)
	if err != nil {
		return fmt.Errorf("query daily logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d DailyLog
		var date, signals string
		if err := rows.Scan(&d.ID, &d.ConnectionID, &date, &d.EnergyExchange, &d.Direction, &d.Clarity, &signals, &d.EmotionState, &d.Notes); err != nil {
			return fmt.Errorf("scan daily log: %w", err)
		}
		d.Date = parseTime(date)
		_ = json.Unmarshal([]byte(signals), &d.EffortSignals)
		if i, ok := index[d.ConnectionID]; ok {
			conns[i].DailyLogs = append(conns[i].DailyLogs, d)
		}
	}
	return rows.Err()
}

func (s *Store) attachSavedLogs(conns []Connection, index map[string]int) error {
	rows, err := s.db.Query(`
		SELECT id, connection_id, log_date, source, title, summary, content
		FROM saved_logs
		ORDER BY log_date ASC
	`)
	if err != nil {
		return fmt.Errorf("query saved logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l SavedLog
		var date string
		if err := rows.Scan(&l.ID, &l.ConnectionID, &date, &l.Source, &l.Title, &l.Summary, &l.Content); err != nil {
			return fmt.Errorf("scan saved log: %w", err)
		}
		l.Date = parseTime(date)
		if i, ok := index[l.ConnectionID]; ok {
			conns[i].SavedLogs = append(conns[i].SavedLogs, l)
		}
	}
	return rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("connection %s not found", id)
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
