package analytics

import "context"

// Repo defines the read-only aggregate queries behind the dashboard.
type Repo interface {
	// Filters returns the distinct filterable value sets.
	Filters(ctx context.Context) (FilterValues, error)
	// SkillCounts counts candidate-skill links per skill name. A candidate
	// contributes one count per link, not one per distinct skill.
	SkillCounts(ctx context.Context) (map[string]int64, error)
	// ExperienceYears returns every non-null total experience value.
	ExperienceYears(ctx context.Context) ([]float64, error)
}
