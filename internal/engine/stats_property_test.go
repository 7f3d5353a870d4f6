package engine

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// Stat XP never goes below zero, whatever sequence of gains and losses is
// applied.
func TestStatXPNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		eng, _ := newTestEngine(t)
		ledger := eng.Stats()

		n := rapid.IntRange(1, 30).Draw(rt, "num_ops")
		for i := 0; i < n; i++ {
			stat := rapid.SampledFrom(allStats).Draw(rt, "stat")
			amount := rapid.IntRange(0, 500).Draw(rt, "amount")
			if rapid.Bool().Draw(rt, "gain") {
				if err := ledger.GainXP(ctx, stat, amount, "prop"); err != nil {
					rt.Fatalf("gain: %v", err)
				}
			} else {
				if err := ledger.LoseXP(ctx, stat, amount, "prop"); err != nil {
					rt.Fatalf("lose: %v", err)
				}
			}
		}

		for _, s := range ledger.All() {
			if s.XP < 0 {
				rt.Fatalf("%s xp=%d, must never be negative", s.Name, s.XP)
			}
		}
	})
}

// Gaining then losing the same amount restores the XP when no clamping
// occurred, and the two history entries mirror each other.
func TestStatGainLoseRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		eng, _ := newTestEngine(t)
		ledger := eng.Stats()

		stat := rapid.SampledFrom(allStats).Draw(rt, "stat")
		start := rapid.IntRange(0, 1000).Draw(rt, "start")
		amount := rapid.IntRange(0, 1000).Draw(rt, "amount")

		if err := ledger.GainXP(ctx, stat, start, "seed"); err != nil {
			rt.Fatalf("seed: %v", err)
		}
		if err := ledger.GainXP(ctx, stat, amount, "prop"); err != nil {
			rt.Fatalf("gain: %v", err)
		}
		if err := ledger.LoseXP(ctx, stat, amount, "prop"); err != nil {
			rt.Fatalf("lose: %v", err)
		}

		if got := ledger.XP(stat); got != start {
			rt.Fatalf("xp=%d after round trip, want %d", got, start)
		}

		history := ledger.History(stat)
		last := history[len(history)-1]
		prev := history[len(history)-2]
		if prev.Amount != amount || last.Amount != -amount {
			rt.Fatalf("history amounts %d/%d, want %d/%d", prev.Amount, last.Amount, amount, -amount)
		}
	})
}
