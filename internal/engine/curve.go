package engine

import "math"

// statLevelDivisor is the fixed XP-per-level divisor for character stats.
// Stat levels are derived, never stored.
const statLevelDivisor = 100

// XPForLevel returns the XP threshold to advance into the given level:
// floor(base * level^1.5). Callers always pass currentLevel+1 with a
// positive base.
func XPForLevel(level int, base float64) int {
	if level <= 0 {
		return 0
	}
	return int(math.Floor(base * math.Pow(float64(level), 1.5)))
}

// StatLevel derives a stat's level from its raw XP.
func StatLevel(xp int) int {
	return xp/statLevelDivisor + 1
}

// StatProgress derives the XP earned within the current stat level.
func StatProgress(xp int) int {
	return xp % statLevelDivisor
}
