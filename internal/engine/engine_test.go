package engine

import (
	"context"
	"path/filepath"
	"testing"

	"lifecodex/internal/storage"
)

func newTestStore(t *testing.T) *storage.Snapshots {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return storage.NewSnapshots(db)
}

func newTestEngine(t *testing.T) (*Engine, *storage.Snapshots) {
	t.Helper()
	store := newTestStore(t)
	eng, err := NewEngine(context.Background(), store, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng, store
}

// reopenEngine builds a fresh engine over the same snapshot store,
// simulating a process restart.
func reopenEngine(t *testing.T, store *storage.Snapshots) *Engine {
	t.Helper()
	eng, err := NewEngine(context.Background(), store, Options{})
	if err != nil {
		t.Fatalf("reopen engine: %v", err)
	}
	return eng
}

func TestEngineStartsWithDefaults(t *testing.T) {
	eng, _ := newTestEngine(t)

	stats := eng.Stats().All()
	if len(stats) != 6 {
		t.Fatalf("len(stats)=%d, want 6", len(stats))
	}
	for _, s := range stats {
		if s.XP != 0 {
			t.Fatalf("%s starts with xp=%d, want 0", s.Name, s.XP)
		}
	}
	if got := len(eng.Skills().List()); got != 0 {
		t.Fatalf("len(skills)=%d, want 0", got)
	}
	if got := len(eng.Goals().All()); got != 0 {
		t.Fatalf("len(goals)=%d, want 0", got)
	}
	if got := eng.Skills().CurveBase(); got != 100 {
		t.Fatalf("curve base=%v, want 100", got)
	}
}

func TestEngineReloadsState(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)

	if err := eng.Stats().GainXP(ctx, StatWisdom, 42, "test"); err != nil {
		t.Fatalf("gain: %v", err)
	}
	id, err := eng.Skills().CreateManualSkill(ctx, "Chess", "", StatIntelligence, 1)
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if _, err := eng.Goals().AddGoal(ctx, GoalInput{Title: "Win a game", Reward: Reward{Type: RewardXP, Stat: StatIntelligence, Value: 10}}); err != nil {
		t.Fatalf("add goal: %v", err)
	}

	eng2 := reopenEngine(t, store)
	if got := eng2.Stats().XP(StatWisdom); got != 42 {
		t.Fatalf("reloaded Wisdom xp=%d, want 42", got)
	}
	if _, ok := eng2.Skills().Get(id); !ok {
		t.Fatalf("reloaded registry lost skill %s", id)
	}
	if got := len(eng2.Goals().All()); got != 1 {
		t.Fatalf("reloaded goals=%d, want 1", got)
	}
	if got := len(eng2.Stats().History(StatWisdom)); got != 1 {
		t.Fatalf("reloaded history=%d, want 1", got)
	}
}
