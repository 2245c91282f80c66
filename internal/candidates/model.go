package candidates

// Record is the structured resume schema produced by the external parser.
// Candidate name is the natural key; every other field is optional and a
// missing value clears the stored one on re-processing.
type Record struct {
	Name                 string            `json:"name"`
	Email                *string           `json:"email"`
	Phone                *string           `json:"phone"`
	LinkedinURL          *string           `json:"linkedin_url"`
	TotalExperienceYears *float64          `json:"total_experience_years"`
	City                 *string           `json:"city"`
	Degrees              []DegreeEntry     `json:"degrees"`
	Experience           []ExperienceEntry `json:"experience"`
	Skills               []string          `json:"skills"`
	Certifications       []string          `json:"certifications"`
}

// DegreeEntry is one education item in a Record. Entries without a college
// name are skipped at upsert time.
type DegreeEntry struct {
	CollegeName   string  `json:"college_name"`
	DegreeName    *string `json:"degree_name"`
	PassedOutYear *int    `json:"passed_out_year"`
}

// ExperienceEntry is one work item in a Record. Entries without a company
// name are skipped at upsert time.
type ExperienceEntry struct {
	CompanyName string   `json:"company_name"`
	TotalYears  *float64 `json:"total_years"`
	Role        string   `json:"role"`
	Description *string  `json:"description"`
}

// Row is the flattened listing projection. Reference entities surface as
// name lists only, never internal IDs.
type Row struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Linkedin       *string  `json:"linkedin"`
	TotalExp       *float64 `json:"total_exp"`
	City           *string  `json:"city"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Companies      []string `json:"companies"`
	Colleges       []string `json:"colleges"`
}

// Detail is the full candidate projection.
type Detail struct {
	ID                   int64              `json:"id"`
	Name                 string             `json:"name"`
	Email                *string            `json:"email"`
	Phone                *string            `json:"phone"`
	LinkedinURL          *string            `json:"linkedin_url"`
	TotalExperienceYears *float64           `json:"total_experience_years"`
	City                 *string            `json:"city"`
	Skills               []string           `json:"skills"`
	Certifications       []string           `json:"certifications"`
	Degrees              []DegreeDetail     `json:"degrees"`
	Experiences          []ExperienceDetail `json:"experiences"`
}

// DegreeDetail renders a stored degree; a missing college renders as the
// literal placeholder rather than null.
type DegreeDetail struct {
	CollegeName   string  `json:"college_name"`
	DegreeName    *string `json:"degree_name"`
	PassedOutYear *int    `json:"passed_out_year"`
}

// ExperienceDetail renders a stored experience; a missing company renders as
// the literal placeholder rather than null.
type ExperienceDetail struct {
	CompanyName string   `json:"company_name"`
	TotalYears  *float64 `json:"total_years"`
	Role        string   `json:"role"`
	Description *string  `json:"description"`
}

// MissingOrgPlaceholder is rendered for degrees/experiences whose reference
// entity is absent.
const MissingOrgPlaceholder = "N/A"
