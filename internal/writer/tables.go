// Package writer serializes a normalized dataset to CSV files and SQLite.
package writer

import (
	"strconv"

	"jobnorm/internal/models"
	"jobnorm/internal/normalizer"
)

// Output file names, one per table.
const (
	FileIndustries  = "Industry.csv"
	FileCountries   = "Countries.csv"
	FileCities      = "Cities.csv"
	FileCompanies   = "Companies.csv"
	FileUsers       = "Users.csv"
	FileEmployers   = "Employers.csv"
	FileJobPostings = "JobPostings.csv"
	FileErrors      = "JobPostingErrors.csv"
)

// table is one output table flattened to strings.
type table struct {
	name   string
	file   string
	header []string
	rows   [][]string
}

type cells struct {
	null string
}

func (c cells) id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (c cells) optID(v *int64) string {
	if v == nil {
		return c.null
	}

	return strconv.FormatInt(*v, 10)
}

func (c cells) optString(v *string) string {
	if v == nil {
		return c.null
	}

	return *v
}

func (c cells) flag(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

// tables flattens ds in the fixed output order.
func tables(ds *normalizer.Dataset, null string) []table {
	c := cells{null: null}

	industries := table{name: "Industry", file: FileIndustries, header: []string{"IndustryId", "IndustryName"}}
	for _, r := range ds.Industries {
		industries.rows = append(industries.rows, []string{c.id(r.IndustryID), r.IndustryName})
	}

	countries := table{name: "Countries", file: FileCountries, header: []string{"CountryId", "CountryName"}}
	for _, r := range ds.Countries {
		countries.rows = append(countries.rows, []string{c.id(r.CountryID), r.CountryName})
	}

	cities := table{name: "Cities", file: FileCities, header: []string{"CityId", "CityName", "CountryId"}}
	for _, r := range ds.Cities {
		cities.rows = append(cities.rows, []string{c.id(r.CityID), r.CityName, c.id(r.CountryID)})
	}

	companies := table{name: "Companies", file: FileCompanies, header: []string{"CompanyId", "CompanyName", "Size", "CityId"}}
	for _, r := range ds.Companies {
		companies.rows = append(companies.rows, []string{c.id(r.CompanyID), r.CompanyName, c.optString(r.Size), c.optID(r.CityID)})
	}

	users := table{name: "Users", file: FileUsers, header: []string{"UserId", "Phone", "PasswordHash", "UserName", "CityId", "Role"}}
	for _, r := range ds.Users {
		users.rows = append(users.rows, []string{c.id(r.UserID), r.Phone, r.PasswordHash, c.optString(r.UserName), c.optID(r.CityID), r.Role})
	}

	employers := table{name: "Employers", file: FileEmployers, header: []string{"UserId", "CompanyId"}}
	for _, r := range ds.Employers {
		employers.rows = append(employers.rows, []string{c.id(r.UserID), c.id(r.CompanyID)})
	}

	jobs := table{name: "JobPostings", file: FileJobPostings, header: []string{
		"JobId", "EmployerId", "Title", "Description", "MinSalary", "MaxSalary", "WorkType", "CityId", "IsActive", "PostDate",
	}}
	for _, r := range ds.JobPostings {
		jobs.rows = append(jobs.rows, []string{
			c.id(r.JobID),
			c.id(r.EmployerID),
			c.optString(r.Title),
			c.optString(r.Description),
			c.optID(r.MinSalary),
			c.optID(r.MaxSalary),
			r.WorkType,
			c.optID(r.CityID),
			c.flag(r.IsActive),
			c.optString(r.PostDate),
		})
	}

	return []table{industries, countries, cities, companies, users, employers, jobs}
}

func errorTable(errs []models.RecordError) table {
	t := table{name: "JobPostingErrors", file: FileErrors, header: []string{"Row", "Kind", "Field", "Value", "Message"}}
	for _, e := range errs {
		t.rows = append(t.rows, []string{strconv.Itoa(e.Row), string(e.Kind), e.Field, e.Value, e.Message})
	}

	return t
}
