package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"lifecodex/internal/storage"
)

const goalsKey = "codex-goals"

// MaxGoalSkillLinks caps how many skills a single goal may reward.
const MaxGoalSkillLinks = 16

type Reward struct {
	Type  RewardType `json:"type"`
	Stat  StatName   `json:"stat,omitempty"`
	Value int        `json:"value"`
}

type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Reward      Reward    `json:"reward"`
	IsComplete  bool      `json:"isComplete"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags"`
	SkillIDs    []string  `json:"skillIds"`
}

// GoalInput is the caller-provided part of a new goal.
type GoalInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Reward      Reward
	Tags        []string
	SkillIDs    []string
}

// ToggleResult reports what a completion toggle did.
type ToggleResult struct {
	GoalID    string
	Completed bool
	XPDelta   int
	Stat      StatName
	SkillIDs  []string
}

// GoalBook coordinates goal completion rewards across the stat ledger and
// the skill registry. It owns the goal list and holds only ids into the
// other two stores.
type GoalBook struct {
	store *storage.Snapshots
	now   func() time.Time
	newID func() string
	log   *slog.Logger

	stats  *StatLedger
	skills *SkillRegistry
	goals  []Goal
}

func newGoalBook(ctx context.Context, store *storage.Snapshots, now func() time.Time, newID func() string, log *slog.Logger, stats *StatLedger, skills *SkillRegistry) (*GoalBook, error) {
	b := &GoalBook{
		store:  store,
		now:    now,
		newID:  newID,
		log:    log,
		stats:  stats,
		skills: skills,
	}
	if _, err := store.Load(ctx, goalsKey, &b.goals); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *GoalBook) save(ctx context.Context) error {
	return b.store.Save(ctx, goalsKey, b.goals)
}

// AddGoal validates the reward, generates an id, and appends the goal to
// the back of the list. It always starts incomplete.
func (b *GoalBook) AddGoal(ctx context.Context, in GoalInput) (Goal, error) {
	if in.Reward.Type == RewardXP {
		if in.Reward.Stat != "" && !in.Reward.Stat.IsValid() {
			return Goal{}, fmt.Errorf("unknown reward stat: %q", in.Reward.Stat)
		}
		if in.Reward.Value < 0 {
			return Goal{}, fmt.Errorf("xp reward value must be >= 0, got %d", in.Reward.Value)
		}
	}
	if len(in.SkillIDs) > MaxGoalSkillLinks {
		return Goal{}, SkillLinkError{Count: len(in.SkillIDs), Limit: MaxGoalSkillLinks}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	skillIDs := in.SkillIDs
	if skillIDs == nil {
		skillIDs = []string{}
	}

	now := b.now()
	g := Goal{
		ID:          b.newID(),
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Reward:      in.Reward,
		IsComplete:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        tags,
		SkillIDs:    skillIDs,
	}
	b.goals = append(b.goals, g)
	if err := b.save(ctx); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// ToggleComplete flips a goal's completion flag and propagates its XP reward
// to the stat ledger and every linked skill. Toggling back applies the
// symmetric loss. Unknown ids are a no-op.
//
// The stat and skill updates each persist themselves before the goal list is
// written; a failure partway through leaves the already-applied updates in
// place rather than rolling back.
func (b *GoalBook) ToggleComplete(ctx context.Context, id string) (*ToggleResult, error) {
	var g *Goal
	for i := range b.goals {
		if b.goals[i].ID == id {
			g = &b.goals[i]
			break
		}
	}
	if g == nil {
		return nil, nil
	}

	wasComplete := g.IsComplete
	g.IsComplete = !g.IsComplete
	g.UpdatedAt = b.now()

	res := &ToggleResult{GoalID: g.ID, Completed: g.IsComplete}

	if g.Reward.Type == RewardXP {
		res.Stat = g.Reward.Stat
		res.SkillIDs = g.SkillIDs

		if !wasComplete && g.IsComplete {
			res.XPDelta = g.Reward.Value
			if g.Reward.Stat != "" {
				if err := b.stats.GainXP(ctx, g.Reward.Stat, g.Reward.Value, "Goal: "+g.Title); err != nil {
					return nil, err
				}
			}
			for _, sid := range g.SkillIDs {
				if err := b.skills.GainXP(ctx, sid, g.Reward.Value); err != nil {
					return nil, err
				}
			}
		} else if wasComplete && !g.IsComplete {
			res.XPDelta = -g.Reward.Value
			if g.Reward.Stat != "" {
				if err := b.stats.LoseXP(ctx, g.Reward.Stat, g.Reward.Value, "Goal Undo: "+g.Title); err != nil {
					return nil, err
				}
			}
			for _, sid := range g.SkillIDs {
				if err := b.skills.LoseXP(ctx, sid, g.Reward.Value); err != nil {
					return nil, err
				}
			}
		}
	}

	b.log.Info("goal toggled",
		"goal", g.ID,
		"complete", g.IsComplete,
		"xp_delta", res.XPDelta,
		"skills", len(res.SkillIDs),
	)

	if err := b.save(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteGoal removes a goal permanently. XP already granted stays granted.
func (b *GoalBook) DeleteGoal(ctx context.Context, id string) error {
	kept := b.goals[:0]
	for _, g := range b.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	b.goals = kept
	return b.save(ctx)
}

func (b *GoalBook) Get(id string) (Goal, bool) {
	for _, g := range b.goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// All returns the goals in insertion order.
func (b *GoalBook) All() []Goal {
	out := make([]Goal, len(b.goals))
	copy(out, b.goals)
	return out
}

func (b *GoalBook) Active() []Goal {
	var out []Goal
	for _, g := range b.goals {
		if !g.IsComplete {
			out = append(out, g)
		}
	}
	return out
}

func (b *GoalBook) Completed() []Goal {
	var out []Goal
	for _, g := range b.goals {
		if g.IsComplete {
			out = append(out, g)
		}
	}
	return out
}

func (b *GoalBook) SortedByDeadline() []Goal {
	out := b.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out
}
