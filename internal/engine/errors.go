package engine

import "fmt"

// SkillLinkError indicates a goal carries more skill links than the engine
// accepts. The add operation is aborted and prior state is untouched.
type SkillLinkError struct {
	Count int
	Limit int
}

func (e SkillLinkError) Error() string {
	return fmt.Sprintf("goal links %d skills (limit %d)", e.Count, e.Limit)
}
