package analytics

import (
	"context"
	"database/sql"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Filters implements Repo.
func (r *PGRepo) Filters(ctx context.Context) (FilterValues, error) {
	out := FilterValues{Skills: []string{}, Cities: []string{}}

	skills, err := r.stringColumn(ctx, `SELECT DISTINCT name FROM skills ORDER BY name`)
	if err != nil {
		return FilterValues{}, fmt.Errorf("load skill filters: %w", err)
	}
	out.Skills = skills

	cities, err := r.stringColumn(ctx, `
SELECT DISTINCT city FROM candidates
WHERE city IS NOT NULL AND city <> ''
ORDER BY city`)
	if err != nil {
		return FilterValues{}, fmt.Errorf("load city filters: %w", err)
	}
	out.Cities = cities

	return out, nil
}

// SkillCounts implements Repo.
func (r *PGRepo) SkillCounts(ctx context.Context) (map[string]int64, error) {
	const query = `
SELECT s.name, COUNT(*) FROM candidate_skills cs
JOIN skills s ON s.id = cs.skill_id
GROUP BY s.name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		out[name] = count
	}
	return out, rows.Err()
}

// ExperienceYears implements Repo.
func (r *PGRepo) ExperienceYears(ctx context.Context) ([]float64, error) {
	const query = `
SELECT total_experience_years FROM candidates
WHERE total_experience_years IS NOT NULL`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load experience years: %w", err)
	}
	defer rows.Close()

	out := []float64{}
	for rows.Next() {
		var years float64
		if err := rows.Scan(&years); err != nil {
			return nil, err
		}
		out = append(out, years)
	}
	return out, rows.Err()
}

func (r *PGRepo) stringColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
