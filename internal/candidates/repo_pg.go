package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert creates or updates a candidate by name inside a single transaction.
// Scalar fields are overwritten unconditionally and relationship sets are
// cleared and rebuilt; any failure rolls the whole batch back.
func (r *PGRepo) Upsert(ctx context.Context, rec Record) (int64, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return 0, ErrMissingName
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}

	id, err := upsertInTx(ctx, tx, name, rec)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("upsert candidate %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert for %q: %w", name, err)
	}
	return id, nil
}

func upsertInTx(ctx context.Context, tx *sql.Tx, name string, rec Record) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM candidates WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(ctx, `INSERT INTO candidates (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("find or create candidate: %w", err)
	}

	const update = `
UPDATE candidates
SET email = $1, phone = $2, linkedin_url = $3, total_experience_years = $4, city = $5
WHERE id = $6`
	if _, err := tx.ExecContext(ctx, update,
		nullString(rec.Email),
		nullString(rec.Phone),
		nullString(rec.LinkedinURL),
		nullFloat(rec.TotalExperienceYears),
		nullString(rec.City),
		id,
	); err != nil {
		return 0, fmt.Errorf("update candidate fields: %w", err)
	}

	// Full replace: clear every relationship set, then rebuild from the record.
	clears := []string{
		`DELETE FROM candidate_skills WHERE candidate_id = $1`,
		`DELETE FROM candidate_certifications WHERE candidate_id = $1`,
		`DELETE FROM degrees WHERE candidate_id = $1`,
		`DELETE FROM experiences WHERE candidate_id = $1`,
	}
	for _, q := range clears {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return 0, fmt.Errorf("clear relationships: %w", err)
		}
	}

	resolver := newRefResolver(tx)

	if err := linkNames(ctx, tx, resolver, refSkills, rec.Skills,
		`INSERT INTO candidate_skills (candidate_id, skill_id) VALUES ($1, $2)`, id); err != nil {
		return 0, err
	}
	if err := linkNames(ctx, tx, resolver, refCertifications, rec.Certifications,
		`INSERT INTO candidate_certifications (candidate_id, certification_id) VALUES ($1, $2)`, id); err != nil {
		return 0, err
	}

	for _, d := range rec.Degrees {
		college := strings.TrimSpace(d.CollegeName)
		if college == "" {
			continue
		}
		collegeID, err := resolver.resolve(ctx, refColleges, college)
		if err != nil {
			return 0, err
		}
		const insert = `
INSERT INTO degrees (candidate_id, college_id, degree_name, passed_out_year)
VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, insert, id, collegeID, nullString(d.DegreeName), nullInt(d.PassedOutYear)); err != nil {
			return 0, fmt.Errorf("insert degree: %w", err)
		}
	}

	for _, e := range rec.Experience {
		company := strings.TrimSpace(e.CompanyName)
		if company == "" {
			continue
		}
		companyID, err := resolver.resolve(ctx, refCompanies, company)
		if err != nil {
			return 0, err
		}
		const insert = `
INSERT INTO experiences (candidate_id, company_id, role, total_years, description)
VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.ExecContext(ctx, insert, id, companyID, e.Role, nullFloat(e.TotalYears), nullString(e.Description)); err != nil {
			return 0, fmt.Errorf("insert experience: %w", err)
		}
	}

	return id, nil
}

// linkNames resolves each distinct trimmed name and inserts one join row per
// name. Dedup is exact-match after trimming.
func linkNames(ctx context.Context, tx *sql.Tx, resolver *refResolver, kind refKind, names []string, insert string, candidateID int64) error {
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		refID, err := resolver.resolve(ctx, kind, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, candidateID, refID); err != nil {
			return fmt.Errorf("link %s %q: %w", kind, name, err)
		}
	}
	return nil
}

// refKind names a reference-entity table.
type refKind string

const (
	refSkills         refKind = "skills"
	refCertifications refKind = "certifications"
	refCompanies      refKind = "companies"
	refColleges       refKind = "colleges"
)

// refResolver finds-or-creates reference entities by exact name within one
// transaction. The pending cache guarantees that resolving the same name
// twice yields the same row, so a single upsert never trips the uniqueness
// constraint on itself.
type refResolver struct {
	tx      *sql.Tx
	pending map[refKind]map[string]int64
}

func newRefResolver(tx *sql.Tx) *refResolver {
	return &refResolver{tx: tx, pending: make(map[refKind]map[string]int64)}
}

func (r *refResolver) resolve(ctx context.Context, kind refKind, name string) (int64, error) {
	if byName, ok := r.pending[kind]; ok {
		if id, ok := byName[name]; ok {
			return id, nil
		}
	}

	var id int64
	err := r.tx.QueryRowContext(ctx, `SELECT id FROM `+string(kind)+` WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.tx.QueryRowContext(ctx, `INSERT INTO `+string(kind)+` (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}

	byName, ok := r.pending[kind]
	if !ok {
		byName = make(map[string]int64)
		r.pending[kind] = byName
	}
	byName[name] = id
	return id, nil
}

// GetByID fetches the full candidate projection.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Detail, error) {
	const query = `
SELECT id, name, email, phone, linkedin_url, total_experience_years, city
FROM candidates
WHERE id = $1`
	var (
		det      Detail
		email    sql.NullString
		phone    sql.NullString
		linkedin sql.NullString
		totalExp sql.NullFloat64
		city     sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&det.ID, &det.Name, &email, &phone, &linkedin, &totalExp, &city)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, err
	}
	det.Email = fromNullString(email)
	det.Phone = fromNullString(phone)
	det.LinkedinURL = fromNullString(linkedin)
	det.TotalExperienceYears = fromNullFloat(totalExp)
	det.City = fromNullString(city)

	det.Skills, err = r.refNames(ctx, `
SELECT s.name FROM candidate_skills cs
JOIN skills s ON s.id = cs.skill_id
WHERE cs.candidate_id = $1
ORDER BY s.id`, id)
	if err != nil {
		return Detail{}, err
	}

	det.Certifications, err = r.refNames(ctx, `
SELECT c.name FROM candidate_certifications cc
JOIN certifications c ON c.id = cc.certification_id
WHERE cc.candidate_id = $1
ORDER BY c.id`, id)
	if err != nil {
		return Detail{}, err
	}

	det.Degrees, err = r.degreeDetails(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	det.Experiences, err = r.experienceDetails(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return det, nil
}

func (r *PGRepo) degreeDetails(ctx context.Context, candidateID int64) ([]DegreeDetail, error) {
	const query = `
SELECT COALESCE(c.name, $2), d.degree_name, d.passed_out_year
FROM degrees d
LEFT JOIN colleges c ON c.id = d.college_id
WHERE d.candidate_id = $1
ORDER BY d.id`
	rows, err := r.DB.QueryContext(ctx, query, candidateID, MissingOrgPlaceholder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DegreeDetail{}
	for rows.Next() {
		var (
			det        DegreeDetail
			degreeName sql.NullString
			year       sql.NullInt64
		)
		if err := rows.Scan(&det.CollegeName, &degreeName, &year); err != nil {
			return nil, err
		}
		det.DegreeName = fromNullString(degreeName)
		det.PassedOutYear = fromNullInt(year)
		out = append(out, det)
	}
	return out, rows.Err()
}

func (r *PGRepo) experienceDetails(ctx context.Context, candidateID int64) ([]ExperienceDetail, error) {
	const query = `
SELECT COALESCE(c.name, $2), e.role, e.total_years, e.description
FROM experiences e
LEFT JOIN companies c ON c.id = e.company_id
WHERE e.candidate_id = $1
ORDER BY e.id`
	rows, err := r.DB.QueryContext(ctx, query, candidateID, MissingOrgPlaceholder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExperienceDetail{}
	for rows.Next() {
		var (
			det         ExperienceDetail
			totalYears  sql.NullFloat64
			description sql.NullString
		)
		if err := rows.Scan(&det.CompanyName, &det.Role, &totalYears, &description); err != nil {
			return nil, err
		}
		det.TotalYears = fromNullFloat(totalYears)
		det.Description = fromNullString(description)
		out = append(out, det)
	}
	return out, rows.Err()
}

func (r *PGRepo) refNames(ctx context.Context, query string, candidateID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ListTable returns the flattened listing projection. Reference names are
// loaded eagerly per relation, not per candidate.
func (r *PGRepo) ListTable(ctx context.Context) ([]Row, error) {
	const query = `
SELECT id, name, email, phone, linkedin_url, total_experience_years, city
FROM candidates
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	index := map[int64]int{}
	for rows.Next() {
		var (
			row      Row
			email    sql.NullString
			phone    sql.NullString
			linkedin sql.NullString
			totalExp sql.NullFloat64
			city     sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Name, &email, &phone, &linkedin, &totalExp, &city); err != nil {
			return nil, err
		}
		row.Email = fromNullString(email)
		row.Phone = fromNullString(phone)
		row.Linkedin = fromNullString(linkedin)
		row.TotalExp = fromNullFloat(totalExp)
		row.City = fromNullString(city)
		row.Skills = []string{}
		row.Certifications = []string{}
		row.Companies = []string{}
		row.Colleges = []string{}
		index[row.ID] = len(out)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	relations := []struct {
		query  string
		assign func(row *Row, name string)
	}{
		{`
SELECT cs.candidate_id, s.name FROM candidate_skills cs
JOIN skills s ON s.id = cs.skill_id
ORDER BY cs.candidate_id, s.id`,
			func(row *Row, name string) { row.Skills = append(row.Skills, name) }},
		{`
SELECT cc.candidate_id, c.name FROM candidate_certifications cc
JOIN certifications c ON c.id = cc.certification_id
ORDER BY cc.candidate_id, c.id`,
			func(row *Row, name string) { row.Certifications = append(row.Certifications, name) }},
		{`
SELECT e.candidate_id, c.name FROM experiences e
JOIN companies c ON c.id = e.company_id
ORDER BY e.candidate_id, e.id`,
			func(row *Row, name string) { row.Companies = append(row.Companies, name) }},
		{`
SELECT d.candidate_id, c.name FROM degrees d
JOIN colleges c ON c.id = d.college_id
ORDER BY d.candidate_id, d.id`,
			func(row *Row, name string) { row.Colleges = append(row.Colleges, name) }},
	}

	for _, rel := range relations {
		if err := r.scanRelation(ctx, rel.query, func(candidateID int64, name string) {
			if i, ok := index[candidateID]; ok {
				rel.assign(&out[i], name)
			}
		}); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *PGRepo) scanRelation(ctx context.Context, query string, visit func(candidateID int64, name string)) error {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			candidateID int64
			name        string
		)
		if err := rows.Scan(&candidateID, &name); err != nil {
			return err
		}
		visit(candidateID, name)
	}
	return rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	val := s.String
	return &val
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	val := f.Float64
	return &val
}

func fromNullInt(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	val := int(i.Int64)
	return &val
}

var _ Repo = (*PGRepo)(nil)
