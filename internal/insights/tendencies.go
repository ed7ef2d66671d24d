package insights

import (
	"math"
	"sort"

	"github.com/tetherhq/tether/internal/journal"
)

// tendencyRule is one independent scoring heuristic. Each rule maps raw
// counts and ratios in the dataset to a 0-100 score; rules never look at
// each other's results.
type tendencyRule struct {
	key   string
	label string
	score func(ds *Dataset) int
}

var tendencyRules = []tendencyRule{
	{
		key:   "effort_escalation",
		label: "Carrying the relationship uphill",
		score: func(ds *Dataset) int {
			carried := ds.countEnergy(journal.EnergyICarried)
			further := ds.countDirection(journal.DirectionFurther)
			return capScore(carried*weightEscalationCarried + further*weightEscalationFurther)
		},
	},
	{
		key:   "over_functioning",
		label: "Doing more than your share",
		score: func(ds *Dataset) int {
			total := len(ds.DailyLogs)
			if total == 0 {
				return 0
			}
			carried := ds.countEnergy(journal.EnergyICarried)
			return capScore(int(math.Round(weightOverFunctioning * float64(carried) / float64(total))))
		},
	},
	{
		key:   "clarity_seeking",
		label: "Reaching outside for clarity",
		score: func(ds *Dataset) int {
			return capScore(len(ds.ClarityLogs) * weightClaritySeeking)
		},
	},
	{
		key:   "decoding_loop",
		label: "Re-reading their messages",
		score: func(ds *Dataset) int {
			return capScore(len(ds.DecoderLogs)*weightDecodingLoop + ds.recentDecoderUses()*weightDecodingRecent)
		},
	},
	{
		key:   "anxious_monitoring",
		label: "Holding the worry",
		score: func(ds *Dataset) int {
			anxious := ds.countEmotion(journal.EmotionUncertain, journal.EmotionPreoccupied, journal.EmotionDraining)
			return capScore(anxious * weightAnxiousMonitoring)
		},
	},
	{
		key:   "pulling_back",
		label: "Drifting toward the exit",
		score: func(ds *Dataset) int {
			distant := ds.countEmotion(journal.EmotionDistant)
			further := ds.countDirection(journal.DirectionFurther)
			return capScore(distant*weightPullingBack + further*weightPullingBackDrift)
		},
	},
	{
		key:   "fog_tolerance",
		label: "Staying in the fog",
		score: func(ds *Dataset) int {
			low := 0
			for _, d := range ds.DailyLogs {
				if d.Clarity < lowClarityThreshold {
					low++
				}
			}
			return capScore(low * weightFogTolerance)
		},
	},
	{
		key:   "cosmic_outsourcing",
		label: "Asking the stars first",
		score: func(ds *Dataset) int {
			return capScore(len(ds.StarsLogs) * weightCosmic)
		},
	},
	{
		key:   "push_pull",
		label: "Running hot and cold",
		score: func(ds *Dataset) int {
			flips := 0
			for _, logs := range ds.DailyByConn {
				for i := 1; i < len(logs); i++ {
					if logs[i].Direction != logs[i-1].Direction {
						flips++
					}
				}
			}
			return capScore(flips * weightPushPull)
		},
	},
	{
		key:   "steady_tending",
		label: "Tending the steady ground",
		score: func(ds *Dataset) int {
			steady := ds.countEmotion(journal.EmotionGrounded, journal.EmotionWarm)
			return capScore(steady * weightSteadyTending)
		},
	},
}

// fallbackTendency is emitted when every rule scores zero, so the facet is
// never empty.
var fallbackTendency = Tendency{
	Key:           "finding_footing",
	Label:         "Still finding your patterns",
	Strength:      StrengthEmerging,
	Score:         0,
	EvidenceCount: 0,
}

// computeTendencies runs every rule, drops zero scores, and keeps the top
// four by raw score.
func computeTendencies(ds *Dataset) []Tendency {
	scored := make([]Tendency, 0, len(tendencyRules))
	for _, rule := range tendencyRules {
		raw := rule.score(ds)
		if raw <= 0 {
			continue
		}
		scored = append(scored, Tendency{
			Key:           rule.key,
			Label:         rule.label,
			Strength:      strengthBucket(raw),
			Score:         raw,
			EvidenceCount: evidenceFromScore(raw),
		})
	}

	if len(scored) == 0 {
		return []Tendency{fallbackTendency}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > tendencyMax {
		scored = scored[:tendencyMax]
	}
	return scored
}

func strengthBucket(raw int) string {
	switch {
	case raw >= tendencyStrongMin:
		return StrengthStrong
	case raw >= tendencyModerateMin:
		return StrengthModerate
	default:
		return StrengthEmerging
	}
}

func evidenceFromScore(raw int) int {
	n := int(math.Round(float64(raw) / tendencyEvidenceDivisor))
	if n < 1 {
		return 1
	}
	return n
}

func capScore(raw int) int {
	if raw > 100 {
		return 100
	}
	if raw < 0 {
		return 0
	}
	return raw
}
