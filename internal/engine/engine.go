package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lifecodex/internal/storage"
)

// Engine wires the four stores over one snapshot store. Each store owns its
// own state and snapshot key; the goal book holds the other two only to fan
// rewards out.
type Engine struct {
	stats  *StatLedger
	skills *SkillRegistry
	goals  *GoalBook
	codex  *Codex
}

// Options tune the engine; zero values pick the defaults.
type Options struct {
	XPCurveBase float64
	LevelTitles []string
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
}

// NewEngine loads every store's snapshot, falling back to defaults for
// missing or partial snapshots.
func NewEngine(ctx context.Context, store *storage.Snapshots, opts Options) (*Engine, error) {
	if opts.XPCurveBase <= 0 {
		opts.XPCurveBase = DefaultXPCurveBase
	}
	if len(opts.LevelTitles) == 0 {
		opts.LevelTitles = DefaultLevelTitles
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	stats, err := newStatLedger(ctx, store, opts.Now)
	if err != nil {
		return nil, err
	}
	skills, err := newSkillRegistry(ctx, store, opts.Now, opts.NewID, opts.XPCurveBase, opts.LevelTitles)
	if err != nil {
		return nil, err
	}
	goals, err := newGoalBook(ctx, store, opts.Now, opts.NewID, opts.Logger, stats, skills)
	if err != nil {
		return nil, err
	}
	codex, err := newCodex(ctx, store, opts.Now, opts.NewID)
	if err != nil {
		return nil, err
	}

	return &Engine{stats: stats, skills: skills, goals: goals, codex: codex}, nil
}

func (e *Engine) Stats() *StatLedger     { return e.stats }
func (e *Engine) Skills() *SkillRegistry { return e.skills }
func (e *Engine) Goals() *GoalBook       { return e.goals }
func (e *Engine) Codex() *Codex          { return e.codex }
