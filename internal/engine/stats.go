package engine

import (
	"context"
	"time"

	"lifecodex/internal/storage"
)

const statsKey = "codex-stats"

type Stat struct {
	Name        StatName  `json:"name"`
	XP          int       `json:"xp"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StatHistoryEntry is an append-only record of one XP delta. A loss records
// the requested amount even when clamping removed less.
type StatHistoryEntry struct {
	Stat      StatName  `json:"stat"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

type statsSnapshot struct {
	Stats   map[StatName]Stat  `json:"stats"`
	History []StatHistoryEntry `json:"history"`
}

// StatLedger owns the six character stats and their XP history.
type StatLedger struct {
	store *storage.Snapshots
	now   func() time.Time

	stats   map[StatName]*Stat
	history []StatHistoryEntry
}

func newStatLedger(ctx context.Context, store *storage.Snapshots, now func() time.Time) (*StatLedger, error) {
	l := &StatLedger{
		store: store,
		now:   now,
		stats: make(map[StatName]*Stat, len(allStats)),
	}
	for _, name := range allStats {
		l.stats[name] = &Stat{Name: name, LastUpdated: now()}
	}

	var snap statsSnapshot
	ok, err := store.Load(ctx, statsKey, &snap)
	if err != nil {
		return nil, err
	}
	if ok {
		// Merge over defaults so an old-shape snapshot never loses stats.
		for name, s := range snap.Stats {
			if !name.IsValid() {
				continue
			}
			cur := l.stats[name]
			cur.XP = s.XP
			if !s.LastUpdated.IsZero() {
				cur.LastUpdated = s.LastUpdated
			}
		}
		l.history = snap.History
	}
	return l, nil
}

func (l *StatLedger) save(ctx context.Context) error {
	snap := statsSnapshot{
		Stats:   make(map[StatName]Stat, len(l.stats)),
		History: l.history,
	}
	for name, s := range l.stats {
		snap.Stats[name] = *s
	}
	return l.store.Save(ctx, statsKey, snap)
}

// GainXP adds amount to the stat and appends a history entry. Unknown stat
// names are a no-op.
func (l *StatLedger) GainXP(ctx context.Context, stat StatName, amount int, source string) error {
	s, ok := l.stats[stat]
	if !ok {
		return nil
	}
	if source == "" {
		source = "system"
	}
	s.XP += amount
	s.LastUpdated = l.now()
	l.history = append(l.history, StatHistoryEntry{
		Stat:      stat,
		Amount:    amount,
		Timestamp: l.now(),
		Source:    source,
	})
	return l.save(ctx)
}

// LoseXP subtracts amount from the stat, clamped at zero. The history entry
// records the requested amount regardless of clamping.
func (l *StatLedger) LoseXP(ctx context.Context, stat StatName, amount int, source string) error {
	s, ok := l.stats[stat]
	if !ok {
		return nil
	}
	if source == "" {
		source = "system"
	}
	s.XP -= amount
	if s.XP < 0 {
		s.XP = 0
	}
	s.LastUpdated = l.now()
	l.history = append(l.history, StatHistoryEntry{
		Stat:      stat,
		Amount:    -amount,
		Timestamp: l.now(),
		Source:    source,
	})
	return l.save(ctx)
}

// Decay removes amount only when the stat can absorb it without clamping.
// No history entry is written.
func (l *StatLedger) Decay(ctx context.Context, stat StatName, amount int) error {
	s, ok := l.stats[stat]
	if !ok {
		return nil
	}
	if s.XP-amount < 0 {
		return nil
	}
	s.XP -= amount
	return l.save(ctx)
}

// Reset zeroes all stats and clears the history.
func (l *StatLedger) Reset(ctx context.Context) error {
	for _, s := range l.stats {
		s.XP = 0
		s.LastUpdated = l.now()
	}
	l.history = nil
	return l.save(ctx)
}

func (l *StatLedger) XP(stat StatName) int {
	if s, ok := l.stats[stat]; ok {
		return s.XP
	}
	return 0
}

func (l *StatLedger) Level(stat StatName) int {
	return StatLevel(l.XP(stat))
}

func (l *StatLedger) Progress(stat StatName) int {
	return StatProgress(l.XP(stat))
}

// All returns the stats in fixed display order.
func (l *StatLedger) All() []Stat {
	out := make([]Stat, 0, len(allStats))
	for _, name := range allStats {
		out = append(out, *l.stats[name])
	}
	return out
}

// History returns the entries for one stat, in append order.
func (l *StatLedger) History(stat StatName) []StatHistoryEntry {
	var out []StatHistoryEntry
	for _, e := range l.history {
		if e.Stat == stat {
			out = append(out, e)
		}
	}
	return out
}

// FullHistory returns every entry in append order.
func (l *StatLedger) FullHistory() []StatHistoryEntry {
	out := make([]StatHistoryEntry, len(l.history))
	copy(out, l.history)
	return out
}
