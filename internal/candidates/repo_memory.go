package candidates

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo used by tests. It mirrors the relational
// semantics: shared reference entities, full relationship replacement, and
// rejection of nameless records before any state changes.
type MemoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	byName     map[string]int64
	candidates map[int64]*memCandidate
	refs       map[refKind]*memRefTable
}

type memCandidate struct {
	id       int64
	name     string
	email    *string
	phone    *string
	linkedin *string
	totalExp *float64
	city     *string
	skills   []int64
	certs    []int64
	degrees  []memDegree
	exps     []memExperience
}

type memDegree struct {
	collegeID  int64
	degreeName *string
	year       *int
}

type memExperience struct {
	companyID   int64
	role        string
	totalYears  *float64
	description *string
}

type memRefTable struct {
	nextID int64
	byName map[string]int64
	names  map[int64]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	refs := make(map[refKind]*memRefTable)
	for _, kind := range []refKind{refSkills, refCertifications, refCompanies, refColleges} {
		refs[kind] = &memRefTable{byName: map[string]int64{}, names: map[int64]string{}}
	}
	return &MemoryRepo{
		byName:     map[string]int64{},
		candidates: map[int64]*memCandidate{},
		refs:       refs,
	}
}

func (t *memRefTable) resolve(name string) int64 {
	if id, ok := t.byName[name]; ok {
		return id
	}
	t.nextID++
	t.byName[name] = t.nextID
	t.names[t.nextID] = name
	return t.nextID
}

// Upsert implements Repo.
func (r *MemoryRepo) Upsert(ctx context.Context, rec Record) (int64, error) {
	_ = ctx
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return 0, ErrMissingName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		r.nextID++
		id = r.nextID
		r.byName[name] = id
		r.candidates[id] = &memCandidate{id: id, name: name}
	}
	cand := r.candidates[id]

	cand.email = copyString(rec.Email)
	cand.phone = copyString(rec.Phone)
	cand.linkedin = copyString(rec.LinkedinURL)
	cand.totalExp = copyFloat(rec.TotalExperienceYears)
	cand.city = copyString(rec.City)

	cand.skills = r.linkNames(refSkills, rec.Skills)
	cand.certs = r.linkNames(refCertifications, rec.Certifications)

	cand.degrees = nil
	for _, d := range rec.Degrees {
		college := strings.TrimSpace(d.CollegeName)
		if college == "" {
			continue
		}
		cand.degrees = append(cand.degrees, memDegree{
			collegeID:  r.refs[refColleges].resolve(college),
			degreeName: copyString(d.DegreeName),
			year:       copyInt(d.PassedOutYear),
		})
	}

	cand.exps = nil
	for _, e := range rec.Experience {
		company := strings.TrimSpace(e.CompanyName)
		if company == "" {
			continue
		}
		cand.exps = append(cand.exps, memExperience{
			companyID:   r.refs[refCompanies].resolve(company),
			role:        e.Role,
			totalYears:  copyFloat(e.TotalYears),
			description: copyString(e.Description),
		})
	}

	return id, nil
}

func (r *MemoryRepo) linkNames(kind refKind, names []string) []int64 {
	seen := make(map[string]struct{}, len(names))
	out := []int64{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, r.refs[kind].resolve(name))
	}
	return out
}

// GetByID implements Repo.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Detail, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	cand, ok := r.candidates[id]
	if !ok {
		return Detail{}, ErrNotFound
	}

	det := Detail{
		ID:                   cand.id,
		Name:                 cand.name,
		Email:                copyString(cand.email),
		Phone:                copyString(cand.phone),
		LinkedinURL:          copyString(cand.linkedin),
		TotalExperienceYears: copyFloat(cand.totalExp),
		City:                 copyString(cand.city),
		Skills:               r.refNameList(refSkills, cand.skills),
		Certifications:       r.refNameList(refCertifications, cand.certs),
		Degrees:              []DegreeDetail{},
		Experiences:          []ExperienceDetail{},
	}
	for _, d := range cand.degrees {
		det.Degrees = append(det.Degrees, DegreeDetail{
			CollegeName:   r.refNameOrPlaceholder(refColleges, d.collegeID),
			DegreeName:    copyString(d.degreeName),
			PassedOutYear: copyInt(d.year),
		})
	}
	for _, e := range cand.exps {
		det.Experiences = append(det.Experiences, ExperienceDetail{
			CompanyName: r.refNameOrPlaceholder(refCompanies, e.companyID),
			Role:        e.role,
			TotalYears:  copyFloat(e.totalYears),
			Description: copyString(e.description),
		})
	}
	return det, nil
}

// ListTable implements Repo.
func (r *MemoryRepo) ListTable(ctx context.Context) ([]Row, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Row{}
	for id := int64(1); id <= r.nextID; id++ {
		cand, ok := r.candidates[id]
		if !ok {
			continue
		}
		row := Row{
			ID:             cand.id,
			Name:           cand.name,
			Email:          copyString(cand.email),
			Phone:          copyString(cand.phone),
			Linkedin:       copyString(cand.linkedin),
			TotalExp:       copyFloat(cand.totalExp),
			City:           copyString(cand.city),
			Skills:         r.refNameList(refSkills, cand.skills),
			Certifications: r.refNameList(refCertifications, cand.certs),
			Companies:      []string{},
			Colleges:       []string{},
		}
		for _, e := range cand.exps {
			if name, ok := r.refs[refCompanies].names[e.companyID]; ok {
				row.Companies = append(row.Companies, name)
			}
		}
		for _, d := range cand.degrees {
			if name, ok := r.refs[refColleges].names[d.collegeID]; ok {
				row.Colleges = append(row.Colleges, name)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// RefCount reports how many distinct rows exist for a reference-entity kind.
// Test helper for duplicate-row assertions.
func (r *MemoryRepo) RefCount(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.refs[refKind(kind)]
	if !ok {
		return 0
	}
	return len(table.byName)
}

func (r *MemoryRepo) refNameList(kind refKind, ids []int64) []string {
	out := []string{}
	for _, id := range ids {
		if name, ok := r.refs[kind].names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (r *MemoryRepo) refNameOrPlaceholder(kind refKind, id int64) string {
	if name, ok := r.refs[kind].names[id]; ok {
		return name
	}
	return MissingOrgPlaceholder
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	val := *s
	return &val
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	val := *f
	return &val
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	val := *i
	return &val
}

var _ Repo = (*MemoryRepo)(nil)
