package journal

import "time"

// Connection lifecycle states.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// EnergyExchange values recorded on a daily check-in.
const (
	EnergyICarried    = "I carried it"
	EnergyTheyCarried = "They carried it"
	EnergyBalanced    = "Balanced"
)

// Direction values recorded on a daily check-in.
const (
	DirectionCloser  = "Closer"
	DirectionFurther = "Further away"
	DirectionSame    = "Same"
)

// Emotion states recorded on a daily check-in.
const (
	EmotionGrounded    = "Grounded"
	EmotionWarm        = "Warm"
	EmotionUncertain   = "Uncertain"
	EmotionPreoccupied = "Preoccupied"
	EmotionDraining    = "Draining"
	EmotionDistant     = "Distant"
)

// SavedLog source features.
const (
	SourceClarity = "clarity"
	SourceDecoder = "decoder"
	SourceStars   = "stars"
)

// Connection is one tracked relationship with its append-only log history.
type Connection struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category,omitempty"`
	Zodiac    string     `json:"zodiac,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	DailyLogs []DailyLog `json:"dailyLogs"`
	SavedLogs []SavedLog `json:"savedLogs"`
}

// DailyLog is one structured check-in. Immutable once created; the slice on a
// connection is append-only and not guaranteed sorted by date.
type DailyLog struct {
	ID             string    `json:"id"`
	ConnectionID   string    `json:"connectionId"`
	Date           time.Time `json:"date"`
	EnergyExchange string    `json:"energyExchange"`
	Direction      string    `json:"direction"`
	Clarity        int       `json:"clarity"`
	EffortSignals  []string  `json:"effortSignals,omitempty"`
	EmotionState   string    `json:"emotionState"`
	Notes          string    `json:"notes,omitempty"`
}

// SavedLog is a persisted AI-feature artifact. Immutable once created.
type SavedLog struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connectionId"`
	Date         time.Time `json:"date"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	Content      string    `json:"content,omitempty"`
}
