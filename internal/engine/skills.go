package engine

import (
	"context"
	"fmt"
	"time"

	"lifecodex/internal/storage"
)

const skillsKey = "codex-skills-v2"

// MaxSkillLevel caps skill progression; XP keeps accumulating past it but
// the level never advances.
const MaxSkillLevel = 10

// DefaultXPCurveBase is the global curve base when no config overrides it.
const DefaultXPCurveBase = 100

// DefaultLevelTitles maps level N to DefaultLevelTitles[N-1]. Levels past
// the table render as "???".
var DefaultLevelTitles = []string{
	"Beginner", "Apprentice", "Journeyman", "Adept", "Expert",
	"Specialist", "Master", "High Master", "Sage", "Grandmaster",
}

type Skill struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StatAffected   StatName `json:"statAffected"`
	Difficulty     float64  `json:"difficulty"`
	Level          int      `json:"level"`
	XP             int      `json:"xp"`
	XPToNext       int      `json:"xpToNext"`
	XPCurveBase    float64  `json:"xpCurveBase"`
	Title          string   `json:"title"`
	UnlockedPaths  []string `json:"unlockedPaths"`
	RelatedGoalIDs []string `json:"relatedGoalIds"`
}

type skillsSnapshot struct {
	Skills             map[string]*Skill `json:"skills"`
	DiscoveredSkillIDs []string          `json:"discoveredSkillIds"`
	XPCurveBase        float64           `json:"xpCurveBase"`
}

// SkillInput is the caller-provided part of a new skill.
type SkillInput struct {
	ID             string
	Name           string
	Description    string
	Stat           StatName
	Difficulty     float64
	UnlockedPaths  []string
	RelatedGoalIDs []string
}

// SkillRegistry owns the user-defined skills and their discovery list. A
// skill shows up in list views only once discovered.
type SkillRegistry struct {
	store *storage.Snapshots
	now   func() time.Time
	newID func() string

	skills     map[string]*Skill
	discovered []string
	curveBase  float64
	titles     []string
	selectedID string
}

func newSkillRegistry(ctx context.Context, store *storage.Snapshots, now func() time.Time, newID func() string, curveBase float64, titles []string) (*SkillRegistry, error) {
	r := &SkillRegistry{
		store:     store,
		now:       now,
		newID:     newID,
		skills:    map[string]*Skill{},
		curveBase: curveBase,
		titles:    titles,
	}

	var snap skillsSnapshot
	ok, err := store.Load(ctx, skillsKey, &snap)
	if err != nil {
		return nil, err
	}
	if ok {
		if snap.Skills != nil {
			r.skills = snap.Skills
		}
		r.discovered = snap.DiscoveredSkillIDs
		if snap.XPCurveBase > 0 {
			r.curveBase = snap.XPCurveBase
		}
	}
	return r, nil
}

func (r *SkillRegistry) save(ctx context.Context) error {
	return r.store.Save(ctx, skillsKey, skillsSnapshot{
		Skills:             r.skills,
		DiscoveredSkillIDs: r.discovered,
		XPCurveBase:        r.curveBase,
	})
}

// titleFor looks up the display title for a level. Level 0 and levels past
// the table both fall back to "???".
func (r *SkillRegistry) titleFor(level int) string {
	if level >= 1 && level <= len(r.titles) {
		return r.titles[level-1]
	}
	return "???"
}

// AddSkill creates a skill at level 0 and marks it discovered. Adding an
// existing id is a no-op.
func (r *SkillRegistry) AddSkill(ctx context.Context, in SkillInput) error {
	if _, exists := r.skills[in.ID]; exists {
		return nil
	}

	diff := in.Difficulty
	if diff <= 0 {
		diff = 1
	}
	base := r.curveBase * diff

	paths := in.UnlockedPaths
	if paths == nil {
		paths = []string{}
	}
	goalIDs := in.RelatedGoalIDs
	if goalIDs == nil {
		goalIDs = []string{}
	}

	r.skills[in.ID] = &Skill{
		ID:             in.ID,
		Name:           in.Name,
		Description:    in.Description,
		StatAffected:   in.Stat,
		Difficulty:     diff,
		Level:          0,
		XP:             0,
		XPToNext:       XPForLevel(1, base),
		XPCurveBase:    base,
		Title:          r.titles[0],
		UnlockedPaths:  paths,
		RelatedGoalIDs: goalIDs,
	}
	r.discover(in.ID)
	return r.save(ctx)
}

// CreateManualSkill generates an id, adds the skill, and returns the id.
func (r *SkillRegistry) CreateManualSkill(ctx context.Context, name, description string, stat StatName, difficulty float64) (string, error) {
	id := r.newID()
	err := r.AddSkill(ctx, SkillInput{
		ID:          id,
		Name:        name,
		Description: description,
		Stat:        stat,
		Difficulty:  difficulty,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *SkillRegistry) discover(id string) bool {
	for _, d := range r.discovered {
		if d == id {
			return false
		}
	}
	r.discovered = append(r.discovered, id)
	return true
}

// DiscoverSkill idempotently adds id to the discovered set.
func (r *SkillRegistry) DiscoverSkill(ctx context.Context, id string) error {
	if !r.discover(id) {
		return nil
	}
	return r.save(ctx)
}

// GainXP adds XP and levels the skill up while it clears successive
// thresholds, appending unlock markers as thresholds are crossed. Unknown
// ids are a no-op.
func (r *SkillRegistry) GainXP(ctx context.Context, id string, amount int) error {
	s, ok := r.skills[id]
	if !ok {
		return nil
	}

	s.XP += amount
	for s.XP >= s.XPToNext && s.Level < MaxSkillLevel {
		s.Level++
		s.Title = r.titleFor(s.Level)
		s.XP -= s.XPToNext
		s.XPToNext = XPForLevel(s.Level+1, s.XPCurveBase)
		checkUnlocks(s)
	}
	return r.save(ctx)
}

func checkUnlocks(s *Skill) {
	switch s.Level {
	case 3, 5, 8:
		s.UnlockedPaths = append(s.UnlockedPaths, fmt.Sprintf("Path unlocked at level %d", s.Level))
	}
}

// LoseXP clamps the skill's XP down by amount and re-derives the level from
// zero by subtracting successive thresholds. This intentionally differs from
// the stat ledger's plain clamped decrement: the remaining XP is treated as
// an absolute total, so the result is order-independent.
func (r *SkillRegistry) LoseXP(ctx context.Context, id string, amount int) error {
	s, ok := r.skills[id]
	if !ok {
		return nil
	}

	s.XP -= amount
	if s.XP < 0 {
		s.XP = 0
	}

	level := 0
	required := XPForLevel(1, s.XPCurveBase)
	for required <= s.XP && level < MaxSkillLevel {
		s.XP -= required
		level++
		required = XPForLevel(level+1, s.XPCurveBase)
	}

	s.Level = level
	s.Title = r.titleFor(level)
	s.XPToNext = required
	return r.save(ctx)
}

// Get returns a copy of the skill, discovered or not.
func (r *SkillRegistry) Get(id string) (Skill, bool) {
	s, ok := r.skills[id]
	if !ok {
		return Skill{}, false
	}
	return *s, true
}

// List returns copies of the discovered skills in discovery order.
func (r *SkillRegistry) List() []Skill {
	out := make([]Skill, 0, len(r.discovered))
	for _, id := range r.discovered {
		if s, ok := r.skills[id]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// SelectSkill sets the in-memory selection; it is not persisted.
func (r *SkillRegistry) SelectSkill(id string) {
	r.selectedID = id
}

func (r *SkillRegistry) SelectedSkill() (Skill, bool) {
	if r.selectedID == "" {
		return Skill{}, false
	}
	return r.Get(r.selectedID)
}

func (r *SkillRegistry) CurveBase() float64 {
	return r.curveBase
}
