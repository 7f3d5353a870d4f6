package engine

import (
	"context"
	"time"

	"lifecodex/internal/storage"
)

const entriesKey = "codex-entries"

// Entry is a free-text codex (journal) record.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

type EntryInput struct {
	Title   string
	Summary string
	Source  string
	Tags    []string
}

// EntryUpdate carries a partial update; nil fields are left unchanged.
type EntryUpdate struct {
	Title   *string
	Summary *string
	Source  *string
	Tags    []string
}

// Codex owns the journal entries. Newest entries come first.
type Codex struct {
	store *storage.Snapshots
	now   func() time.Time
	newID func() string

	entries []Entry
}

func newCodex(ctx context.Context, store *storage.Snapshots, now func() time.Time, newID func() string) (*Codex, error) {
	c := &Codex{store: store, now: now, newID: newID}
	if _, err := store.Load(ctx, entriesKey, &c.entries); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Codex) save(ctx context.Context) error {
	return c.store.Save(ctx, entriesKey, c.entries)
}

// AddEntry prepends a new entry.
func (c *Codex) AddEntry(ctx context.Context, in EntryInput) (Entry, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	e := Entry{
		ID:        c.newID(),
		Title:     in.Title,
		Summary:   in.Summary,
		Source:    in.Source,
		Tags:      tags,
		CreatedAt: c.now(),
	}
	c.entries = append([]Entry{e}, c.entries...)
	if err := c.save(ctx); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// UpdateEntry applies a partial update. Unknown ids are a no-op.
func (c *Codex) UpdateEntry(ctx context.Context, id string, up EntryUpdate) error {
	for i := range c.entries {
		if c.entries[i].ID != id {
			continue
		}
		if up.Title != nil {
			c.entries[i].Title = *up.Title
		}
		if up.Summary != nil {
			c.entries[i].Summary = *up.Summary
		}
		if up.Source != nil {
			c.entries[i].Source = *up.Source
		}
		if up.Tags != nil {
			c.entries[i].Tags = up.Tags
		}
		return c.save(ctx)
	}
	return nil
}

// RemoveEntry deletes an entry by id.
func (c *Codex) RemoveEntry(ctx context.Context, id string) error {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return c.save(ctx)
}

func (c *Codex) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// AllTags returns the distinct tags across all entries in first-seen order.
func (c *Codex) AllTags() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range c.entries {
		for _, tag := range e.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}
