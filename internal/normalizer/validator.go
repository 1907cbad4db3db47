package normalizer

import (
	"errors"
	"fmt"

	"jobnorm/internal/models"
)

// Validation errors.
var (
	ErrNilDataset        = errors.New("dataset is nil")
	ErrDanglingReference = errors.New("dangling foreign key")
)

// Validator checks the referential invariants of a finished dataset.
type Validator struct {
	role string
}

// NewValidator creates a validator that expects every employer to carry role.
func NewValidator(role string) *Validator {
	return &Validator{role: role}
}

// Validate returns every broken reference, joined and wrapped with ErrDanglingReference.
func (v *Validator) Validate(ds *Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}

	countries := idSet(ds.Countries, func(c models.Country) int64 { return c.CountryID })
	cities := idSet(ds.Cities, func(c models.City) int64 { return c.CityID })
	companies := idSet(ds.Companies, func(c models.Company) int64 { return c.CompanyID })

	users := make(map[int64]string, len(ds.Users))
	for _, u := range ds.Users {
		users[u.UserID] = u.Role
	}

	var errs []error

	dangling := func(table string, id int64, column string, ref int64) {
		errs = append(errs, fmt.Errorf("%w: %s %d: %s=%d", ErrDanglingReference, table, id, column, ref))
	}

	for _, c := range ds.Cities {
		if !countries[c.CountryID] {
			dangling("Cities", c.CityID, "CountryId", c.CountryID)
		}
	}

	for _, c := range ds.Companies {
		if c.CityID != nil && !cities[*c.CityID] {
			dangling("Companies", c.CompanyID, "CityId", *c.CityID)
		}
	}

	for _, u := range ds.Users {
		if u.CityID != nil && !cities[*u.CityID] {
			dangling("Users", u.UserID, "CityId", *u.CityID)
		}
	}

	for _, e := range ds.Employers {
		if _, ok := users[e.UserID]; !ok {
			dangling("Employers", e.UserID, "UserId", e.UserID)
		}

		if !companies[e.CompanyID] {
			dangling("Employers", e.UserID, "CompanyId", e.CompanyID)
		}
	}

	for _, j := range ds.JobPostings {
		role, ok := users[j.EmployerID]
		switch {
		case !ok:
			dangling("JobPostings", j.JobID, "EmployerId", j.EmployerID)
		case role != v.role:
			errs = append(errs, fmt.Errorf("%w: JobPostings %d: EmployerId=%d has role %q",
				ErrDanglingReference, j.JobID, j.EmployerID, role))
		}

		if j.CityID != nil && !cities[*j.CityID] {
			dangling("JobPostings", j.JobID, "CityId", *j.CityID)
		}
	}

	return errors.Join(errs...)
}

func idSet[T any](rows []T, id func(T) int64) map[int64]bool {
	set := make(map[int64]bool, len(rows))
	for _, row := range rows {
		set[id(row)] = true
	}

	return set
}
