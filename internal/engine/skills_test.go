package engine

import (
	"context"
	"fmt"
	"testing"
)

func addTestSkill(t *testing.T, eng *Engine, id string, difficulty float64) {
	t.Helper()
	err := eng.Skills().AddSkill(context.Background(), SkillInput{
		ID:         id,
		Name:       "Skill " + id,
		Stat:       StatWisdom,
		Difficulty: difficulty,
	})
	if err != nil {
		t.Fatalf("add skill %s: %v", id, err)
	}
}

// cumulativeXP returns the total XP needed to reach the given level from a
// fresh skill, by summing the successive thresholds.
func cumulativeXP(level int, base float64) int {
	total := 0
	for l := 1; l <= level; l++ {
		total += XPForLevel(l, base)
	}
	return total
}

func TestAddSkillDefaults(t *testing.T) {
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	s, ok := eng.Skills().Get("s1")
	if !ok {
		t.Fatalf("skill not found after add")
	}
	if s.Level != 0 || s.XP != 0 {
		t.Fatalf("level=%d xp=%d, want 0/0", s.Level, s.XP)
	}
	if s.XPToNext != 100 {
		t.Fatalf("xpToNext=%d, want 100", s.XPToNext)
	}
	if s.XPCurveBase != 100 {
		t.Fatalf("xpCurveBase=%v, want 100", s.XPCurveBase)
	}
	if s.Title != "Beginner" {
		t.Fatalf("title=%q, want Beginner", s.Title)
	}
	if len(eng.Skills().List()) != 1 {
		t.Fatalf("skill not discovered on add")
	}
}

func TestAddSkillIdempotent(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	if err := eng.Skills().GainXP(ctx, "s1", 100); err != nil {
		t.Fatalf("gain: %v", err)
	}

	// Re-adding the same id must not reset its progress.
	addTestSkill(t, eng, "s1", 3)
	s, _ := eng.Skills().Get("s1")
	if s.Level != 1 {
		t.Fatalf("level after duplicate add=%d, want 1", s.Level)
	}
	if s.XPCurveBase != 100 {
		t.Fatalf("curve base after duplicate add=%v, want 100", s.XPCurveBase)
	}
}

func TestDifficultyScalesCurve(t *testing.T) {
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "hard", 2)

	s, _ := eng.Skills().Get("hard")
	if s.XPCurveBase != 200 {
		t.Fatalf("xpCurveBase=%v, want 200", s.XPCurveBase)
	}
	if s.XPToNext != 200 {
		t.Fatalf("xpToNext=%d, want 200", s.XPToNext)
	}
}

func TestGainLevelsUp(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	if err := eng.Skills().GainXP(ctx, "s1", 100); err != nil {
		t.Fatalf("gain: %v", err)
	}

	s, _ := eng.Skills().Get("s1")
	if s.Level != 1 {
		t.Fatalf("level=%d, want 1", s.Level)
	}
	if s.XP != 0 {
		t.Fatalf("xp=%d, want 0", s.XP)
	}
	if s.XPToNext != 282 {
		t.Fatalf("xpToNext=%d, want 282", s.XPToNext)
	}
	if s.Title != "Beginner" {
		t.Fatalf("title=%q, want Beginner", s.Title)
	}
}

func TestGainMultipleLevelsInOneCall(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	// 100 + 282 + 519 carries a fresh skill exactly to level 3.
	if err := eng.Skills().GainXP(ctx, "s1", cumulativeXP(3, 100)); err != nil {
		t.Fatalf("gain: %v", err)
	}

	s, _ := eng.Skills().Get("s1")
	if s.Level != 3 {
		t.Fatalf("level=%d, want 3", s.Level)
	}
	if s.XP != 0 {
		t.Fatalf("xp=%d, want 0", s.XP)
	}
	if s.Title != "Journeyman" {
		t.Fatalf("title=%q, want Journeyman", s.Title)
	}
	// One ascent through level 3 appends exactly one unlock marker.
	if len(s.UnlockedPaths) != 1 {
		t.Fatalf("unlockedPaths=%v, want exactly 1 marker", s.UnlockedPaths)
	}
	if s.UnlockedPaths[0] != "Path unlocked at level 3" {
		t.Fatalf("marker=%q", s.UnlockedPaths[0])
	}
}

func TestLevelCapNoXPBeyondTen(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	toTen := cumulativeXP(10, 100)
	if err := eng.Skills().GainXP(ctx, "s1", toTen+5000); err != nil {
		t.Fatalf("gain: %v", err)
	}

	s, _ := eng.Skills().Get("s1")
	if s.Level != 10 {
		t.Fatalf("level=%d, want 10", s.Level)
	}
	if s.XP != 5000 {
		t.Fatalf("xp=%d, want 5000 (accumulates past cap without leveling)", s.XP)
	}
	if s.Title != "Grandmaster" {
		t.Fatalf("title=%q, want Grandmaster", s.Title)
	}
	if len(s.UnlockedPaths) != 3 {
		t.Fatalf("unlockedPaths=%d, want 3 (levels 3, 5, 8)", len(s.UnlockedPaths))
	}
}

func TestLoseRecomputesFromAbsoluteXP(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	// Forward accumulation: 500 XP puts a fresh skill at level 2 with 118
	// left over (500 - 100 - 282).
	if err := eng.Skills().GainXP(ctx, "s1", 500); err != nil {
		t.Fatalf("gain: %v", err)
	}
	s, _ := eng.Skills().Get("s1")
	if s.Level != 2 || s.XP != 118 {
		t.Fatalf("level=%d xp=%d, want 2/118", s.Level, s.XP)
	}

	// Losing 50 clamps the remaining 118 to 68 and re-derives the level
	// from zero: 68 < 100, so the skill drops all the way to level 0.
	// This is the recompute-from-absolute algorithm, not a decrement.
	if err := eng.Skills().LoseXP(ctx, "s1", 50); err != nil {
		t.Fatalf("lose: %v", err)
	}
	s, _ = eng.Skills().Get("s1")
	if s.Level != 0 {
		t.Fatalf("level=%d, want 0", s.Level)
	}
	if s.XP != 68 {
		t.Fatalf("xp=%d, want 68", s.XP)
	}
	if s.XPToNext != 100 {
		t.Fatalf("xpToNext=%d, want 100", s.XPToNext)
	}
	if s.Title != "???" {
		t.Fatalf("title=%q, want ??? at level 0", s.Title)
	}
}

func TestGainThenLoseSameAmountRestoresFreshSkill(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	for _, amount := range []int{0, 50, 100, 250, 901, 5000} {
		id := fmt.Sprintf("skill-%d", amount)
		addTestSkill(t, eng, id, 1)

		if err := eng.Skills().GainXP(ctx, id, amount); err != nil {
			t.Fatalf("gain %d: %v", amount, err)
		}
		if err := eng.Skills().LoseXP(ctx, id, amount); err != nil {
			t.Fatalf("lose %d: %v", amount, err)
		}

		s, _ := eng.Skills().Get(id)
		if s.Level != 0 || s.XP != 0 {
			t.Fatalf("after gain/lose %d: level=%d xp=%d, want 0/0", amount, s.Level, s.XP)
		}
	}
}

func TestRecrossingThresholdDuplicatesMarker(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	toThree := cumulativeXP(3, 100)
	if err := eng.Skills().GainXP(ctx, "s1", toThree); err != nil {
		t.Fatalf("gain: %v", err)
	}
	if err := eng.Skills().LoseXP(ctx, "s1", toThree); err != nil {
		t.Fatalf("lose: %v", err)
	}
	if err := eng.Skills().GainXP(ctx, "s1", toThree); err != nil {
		t.Fatalf("regain: %v", err)
	}

	s, _ := eng.Skills().Get("s1")
	if s.Level != 3 {
		t.Fatalf("level=%d, want 3", s.Level)
	}
	// Crossing level 3 twice appends two markers; duplicates are accepted.
	if len(s.UnlockedPaths) != 2 {
		t.Fatalf("unlockedPaths=%d, want 2", len(s.UnlockedPaths))
	}
}

func TestXPOnUnknownSkillIsNoOp(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	if err := eng.Skills().GainXP(ctx, "ghost", 100); err != nil {
		t.Fatalf("gain unknown: %v", err)
	}
	if err := eng.Skills().LoseXP(ctx, "ghost", 100); err != nil {
		t.Fatalf("lose unknown: %v", err)
	}
}

func TestUndiscoveredSkillExcludedFromList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Craft a snapshot holding a skill that was never discovered.
	snap := skillsSnapshot{
		Skills: map[string]*Skill{
			"hidden": {ID: "hidden", Name: "Hidden", Level: 0, XPToNext: 100, XPCurveBase: 100, Title: "Beginner"},
		},
		DiscoveredSkillIDs: []string{},
		XPCurveBase:        100,
	}
	if err := store.Save(ctx, skillsKey, snap); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	eng := reopenEngine(t, store)
	if got := len(eng.Skills().List()); got != 0 {
		t.Fatalf("list shows %d skills, want 0 before discovery", got)
	}
	if _, ok := eng.Skills().Get("hidden"); !ok {
		t.Fatalf("underlying map lost the skill")
	}

	if err := eng.Skills().DiscoverSkill(ctx, "hidden"); err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got := len(eng.Skills().List()); got != 1 {
		t.Fatalf("list shows %d skills after discovery, want 1", got)
	}

	// Discovery is idempotent.
	if err := eng.Skills().DiscoverSkill(ctx, "hidden"); err != nil {
		t.Fatalf("rediscover: %v", err)
	}
	if got := len(eng.Skills().List()); got != 1 {
		t.Fatalf("list shows %d skills after rediscovery, want 1", got)
	}
}

func TestSelectSkill(t *testing.T) {
	eng, _ := newTestEngine(t)
	addTestSkill(t, eng, "s1", 1)

	if _, ok := eng.Skills().SelectedSkill(); ok {
		t.Fatalf("expected no selection initially")
	}
	eng.Skills().SelectSkill("s1")
	s, ok := eng.Skills().SelectedSkill()
	if !ok || s.ID != "s1" {
		t.Fatalf("selected=%v ok=%v, want s1", s.ID, ok)
	}
}
