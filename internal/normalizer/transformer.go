package normalizer

import (
	"errors"

	"jobnorm/internal/config"
	"jobnorm/internal/models"
)

// Transformer projects raw records into table rows. Every method is a pure
// function of its arguments; foreign keys are resolved by the caller and
// passed in.
type Transformer struct {
	industryKey         string
	workTypes           *CategoryNormalizer
	passwordPlaceholder string
	userRole            string
}

// NewTransformer creates a transformer for the given rules.
func NewTransformer(rules config.RulesConfig) *Transformer {
	return &Transformer{
		industryKey:         rules.IndustryKey,
		workTypes:           NewCategoryNormalizer(rules.WorkTypes, rules.DefaultWorkType),
		passwordPlaceholder: rules.PasswordPlaceholder,
		userRole:            rules.UserRole,
	}
}

// Industry extracts the industry label of a record's company profile.
// malformed is true when a non-empty profile could not be parsed.
func (t *Transformer) Industry(rec *models.RawJobRecord) (name string, ok, malformed bool) {
	name, ok, err := lookupField(rec.CompanyProfile, t.industryKey)

	return name, ok, errors.Is(err, ErrMalformedSubfield)
}

// Company builds the Companies row for the first record seen with a company name.
func (t *Transformer) Company(rec *models.RawJobRecord, id int64, cityID *int64) models.Company {
	return models.Company{
		CompanyID:   id,
		CompanyName: rec.Company,
		Size:        optional(rec.CompanySize),
		CityID:      cityID,
	}
}

// User builds the Users row for the first record seen with a contact.
func (t *Transformer) User(rec *models.RawJobRecord, id int64, cityID *int64) models.User {
	return models.User{
		UserID:       id,
		Phone:        rec.Contact,
		PasswordHash: t.passwordPlaceholder,
		UserName:     optional(rec.ContactPerson),
		CityID:       cityID,
		Role:         t.userRole,
	}
}

// PostingFields are the derived, non-key columns of a job posting.
type PostingFields struct {
	MinSalary       *int64
	MaxSalary       *int64
	WorkType        string
	UnparsableRange bool
	UnknownWorkType bool
}

// Posting derives salary bounds and the canonical work type of a record.
func (t *Transformer) Posting(rec *models.RawJobRecord) PostingFields {
	var f PostingFields

	var ok bool

	f.MinSalary, f.MaxSalary, ok = ParseRange(rec.SalaryRange)
	f.UnparsableRange = !ok && rec.SalaryRange != ""

	var known bool

	f.WorkType, known = t.workTypes.Normalize(rec.WorkType)
	f.UnknownWorkType = !known

	return f
}

// JobPosting assembles a JobPostings row. Postings are always created active.
func (t *Transformer) JobPosting(rec *models.RawJobRecord, id, employerID int64, cityID *int64, f PostingFields) models.JobPosting {
	return models.JobPosting{
		JobID:       id,
		EmployerID:  employerID,
		Title:       optional(rec.Role),
		Description: optional(rec.Description),
		MinSalary:   f.MinSalary,
		MaxSalary:   f.MaxSalary,
		WorkType:    f.WorkType,
		CityID:      cityID,
		IsActive:    true,
		PostDate:    optional(rec.PostDate),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
