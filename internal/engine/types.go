package engine

import "strings"

type StatName string

const (
	StatIntelligence StatName = "Intelligence"
	StatStrength     StatName = "Strength"
	StatDiscipline   StatName = "Discipline"
	StatWisdom       StatName = "Wisdom"
	StatCharisma     StatName = "Charisma"
	StatResilience   StatName = "Resilience"
)

// allStats fixes the display order for list views.
var allStats = []StatName{
	StatIntelligence,
	StatStrength,
	StatDiscipline,
	StatWisdom,
	StatCharisma,
	StatResilience,
}

func (s StatName) IsValid() bool {
	switch s {
	case StatIntelligence, StatStrength, StatDiscipline, StatWisdom, StatCharisma, StatResilience:
		return true
	default:
		return false
	}
}

// ParseStat parses user input to a StatName, case-insensitively.
func ParseStat(input string) (StatName, bool) {
	in := strings.TrimSpace(strings.ToLower(input))
	for _, s := range allStats {
		if strings.ToLower(string(s)) == in {
			return s, true
		}
	}
	return "", false
}

// RewardType is the closed set of goal reward kinds. Item rewards are
// recognized but carry no propagation yet.
type RewardType string

const (
	RewardXP   RewardType = "xp"
	RewardItem RewardType = "item"
)

func (r RewardType) IsValid() bool {
	switch r {
	case RewardXP, RewardItem:
		return true
	default:
		return false
	}
}
