// Package insights computes a deterministic behavioral profile from a user's
// journaled connection history. Every facet is an independent pure function
// over one extracted dataset; no facet reads another facet's output.
package insights

import "time"

// Identity is the caller-supplied snapshot embedded in a summary.
type Identity struct {
	Name   string `json:"name"`
	Zodiac string `json:"zodiac,omitempty"`
}

// Reflection is a user-written note with no intrinsic date.
type Reflection struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// ProfileInput carries the caller-owned values a profile computation needs
// beyond the connection history itself.
type ProfileInput struct {
	Identity    Identity     `json:"identity"`
	Boundaries  []string     `json:"boundaries,omitempty"`
	Reflections []Reflection `json:"reflections,omitempty"`
}

// Tendency strength buckets.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthEmerging = "emerging"
)

// Tendency is one surfaced behavioral tendency. Score is the raw 0-100 rule
// score the strength bucket was derived from.
type Tendency struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	Strength      string `json:"strength"`
	Score         int    `json:"score"`
	EvidenceCount int    `json:"evidenceCount"`
}

// RegulationStyle is the dominant self-regulation label. Confidence is the
// winner's share of all candidate scores, not an absolute magnitude.
type RegulationStyle struct {
	Style       string `json:"style"`
	Confidence  int    `json:"confidence"`
	Description string `json:"description"`
}

// EffortBalance splits logged effort between the two parties. Follow-through
// numbers are estimates derived from direction trend, not measured values.
type EffortBalance struct {
	YouCarriedPct        int    `json:"youCarriedPct"`
	TheyCarriedPct       int    `json:"theyCarriedPct"`
	BalancedPct          int    `json:"balancedPct"`
	YouInitiatePct       int    `json:"youInitiatePct"`
	TheyInitiatePct      int    `json:"theyInitiatePct"`
	YouFollowThroughPct  int    `json:"youFollowThroughPct"`
	TheyFollowThroughPct int    `json:"theyFollowThroughPct"`
	Insight              string `json:"insight"`
}

// EmotionalOutcome is the 30-day emotional distribution across the five
// fixed buckets, percentages summing to 100 whenever any logs exist.
type EmotionalOutcome struct {
	Distribution   map[string]int `json:"distribution"`
	Dominant       string         `json:"dominant,omitempty"`
	Interpretation string         `json:"interpretation"`
}

// SignalStory classifies interpretation activity against observation activity.
type SignalStory struct {
	Ratio          float64 `json:"ratio"`
	Classification string  `json:"classification"`
	Description    string  `json:"description"`
}

// PatternStages names the four stages of a detected repeating dynamic.
type PatternStages struct {
	Trigger       string `json:"trigger"`
	Reaction      string `json:"reaction"`
	TheirResponse string `json:"theirResponse"`
	Result        string `json:"result"`
}

// RepeatingDynamics reports emotional overlap across connections. Stages is
// nil unless a pattern was detected.
type RepeatingDynamics struct {
	Detected            bool           `json:"detected"`
	Pattern             string         `json:"pattern,omitempty"`
	Note                string         `json:"note"`
	AffectedConnections []string       `json:"affectedConnections,omitempty"`
	SharedEmotions      []string       `json:"sharedEmotions,omitempty"`
	Stages              *PatternStages `json:"stages,omitempty"`
}

// SelfTrust scores how much the user leans on outside interpretation over
// their own observations.
type SelfTrust struct {
	Score       int    `json:"score"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// BoundaryAlignment reports how often logged encounters stayed consistent
// with the user's stated boundaries.
type BoundaryAlignment struct {
	Encounters int    `json:"encounters"`
	Upheld     int    `json:"upheld"`
	Pct        int    `json:"pct"`
	Note       string `json:"note"`
}

// Trajectory compares the two halves of the 30-day window.
type Trajectory struct {
	Direction  string  `json:"direction"`
	Shift      float64 `json:"shift"`
	Confidence string  `json:"confidence"`
	Note       string  `json:"note"`
}

// CurrentPull is the headline conclusion shown at the top of a profile.
type CurrentPull struct {
	Headline    string `json:"headline"`
	Explanation string `json:"explanation"`
}

// EvidenceSplit separates what the user directly logged from what AI sessions
// interpreted. Both lists derive only from source records.
type EvidenceSplit struct {
	Observed    []string `json:"observed"`
	Interpreted []string `json:"interpreted"`
}

// EvidenceCounts snapshots how much raw material a summary was computed from.
// The cache compares these counts to decide content-driven staleness.
type EvidenceCounts struct {
	ActiveConnections int `json:"activeConnections"`
	DailyLogs         int `json:"dailyLogs"`
	SavedLogs         int `json:"savedLogs"`
}

// Total is the log count the staleness heuristic tracks.
func (e EvidenceCounts) Total() int {
	return e.DailyLogs + e.SavedLogs
}

// ProfileSummary is the single immutable output of one profile computation.
// Every facet is always populated; insufficient data produces the facet's
// documented fallback, never an absent field.
type ProfileSummary struct {
	Identity          Identity          `json:"identity"`
	CurrentPull       CurrentPull       `json:"currentPull"`
	Tendencies        []Tendency        `json:"tendencies"`
	Regulation        RegulationStyle   `json:"regulation"`
	EffortBalance     EffortBalance     `json:"effortBalance"`
	EmotionalOutcome  EmotionalOutcome  `json:"emotionalOutcome"`
	SignalStory       SignalStory       `json:"signalStory"`
	RepeatingDynamics RepeatingDynamics `json:"repeatingDynamics"`
	SelfTrust         SelfTrust         `json:"selfTrust"`
	BoundaryAlignment BoundaryAlignment `json:"boundaryAlignment"`
	Trajectory        Trajectory        `json:"trajectory"`
	EvidenceSplit     EvidenceSplit     `json:"evidenceSplit"`
	Evidence          EvidenceCounts    `json:"evidence"`
	ComputedAt        time.Time         `json:"computedAt"`
}

// Timeline item sources.
const (
	TimelineComputed   = "computed"
	TimelineReflection = "reflection"
)

// TimelineItem is one entry in the explanatory timeline.
type TimelineItem struct {
	Date    time.Time `json:"date"`
	Source  string    `json:"source"`
	Title   string    `json:"title"`
	Summary string    `json:"summary,omitempty"`
}
