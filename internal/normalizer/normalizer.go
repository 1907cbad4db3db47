// Package normalizer turns flat job-listing records into normalized tables
// with surrogate keys and resolved foreign keys.
package normalizer

import (
	"jobnorm/internal/config"
	"jobnorm/internal/logger"
	"jobnorm/internal/models"
)

// Dataset is the output of one normalization pass.
type Dataset struct {
	Industries  []models.Industry
	Countries   []models.Country
	Cities      []models.City
	Companies   []models.Company
	Users       []models.User
	Employers   []models.Employer
	JobPostings []models.JobPosting
	Errors      []models.RecordError
	Stats       Stats
}

// Stats counts the per-field defects that were absorbed during the pass.
type Stats struct {
	Records               int
	MalformedSubfields    int
	UnparsableRanges      int
	UnknownCategories     int
	UnresolvedForeignKeys int
}

// Normalizer drives one registry per entity type over the raw records.
type Normalizer struct {
	transformer *Transformer
	logger      *logger.Logger
}

// NewNormalizer creates a normalizer. A nil logger discards output.
func NewNormalizer(rules config.RulesConfig, log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Discard()
	}

	return &Normalizer{
		transformer: NewTransformer(rules),
		logger:      log,
	}
}

// Normalize builds every table from records, in input order. The same input
// always yields the same ids and row order.
func (n *Normalizer) Normalize(records []models.RawJobRecord) *Dataset {
	ds := &Dataset{}
	ds.Stats.Records = len(records)

	industries := n.buildIndustries(records, &ds.Stats)
	countries := buildCountries(records)
	cities := buildCities(records, countries)
	companies := n.buildCompanies(records, cities)
	users := n.buildUsers(records, cities, companies)
	postings := n.buildJobPostings(records, cities, users, &ds.Stats)

	ds.Industries = industries.rows
	ds.Countries = countries.rows
	ds.Cities = cities.rows
	ds.Companies = companies.rows
	ds.Users = users.rows
	ds.Employers = users.employers
	ds.JobPostings = postings.rows
	ds.Errors = postings.errors
	ds.Stats.UnresolvedForeignKeys = len(postings.errors)

	n.logger.Info("normalization complete",
		"records", len(records),
		"industries", len(ds.Industries),
		"countries", len(ds.Countries),
		"cities", len(ds.Cities),
		"companies", len(ds.Companies),
		"users", len(ds.Users),
		"employers", len(ds.Employers),
		"job_postings", len(ds.JobPostings),
		"errors", len(ds.Errors),
	)
	n.logger.Debug("absorbed field defects",
		"malformed_subfields", ds.Stats.MalformedSubfields,
		"unparsable_ranges", ds.Stats.UnparsableRanges,
		"unknown_categories", ds.Stats.UnknownCategories,
	)

	return ds
}

type industryTable struct {
	rows []models.Industry
	ids  *Registry[string]
}

func (n *Normalizer) buildIndustries(records []models.RawJobRecord, stats *Stats) industryTable {
	t := industryTable{ids: NewRegistry[string]()}

	for i := range records {
		name, ok, malformed := n.transformer.Industry(&records[i])
		if malformed {
			stats.MalformedSubfields++
		}

		if !ok {
			continue
		}

		if id, created := t.ids.AssignOrGet(name); created {
			t.rows = append(t.rows, models.Industry{IndustryID: id, IndustryName: name})
		}
	}

	return t
}

type countryTable struct {
	rows []models.Country
	ids  *Registry[string]
}

func buildCountries(records []models.RawJobRecord) countryTable {
	t := countryTable{ids: NewRegistry[string]()}

	for i := range records {
		name := records[i].Country
		if name == "" {
			continue
		}

		if id, created := t.ids.AssignOrGet(name); created {
			t.rows = append(t.rows, models.Country{CountryID: id, CountryName: name})
		}
	}

	return t
}

func (t countryTable) resolve(name string) (int64, bool) {
	if name == "" {
		return 0, false
	}

	return t.ids.Lookup(name)
}

type cityKey struct {
	name      string
	countryID int64
}

type cityTable struct {
	countries countryTable
	rows      []models.City
	ids       *Registry[cityKey]
}

func buildCities(records []models.RawJobRecord, countries countryTable) cityTable {
	t := cityTable{countries: countries, ids: NewRegistry[cityKey]()}

	for i := range records {
		key, ok := t.key(&records[i])
		if !ok {
			continue
		}

		if id, created := t.ids.AssignOrGet(key); created {
			t.rows = append(t.rows, models.City{CityID: id, CityName: key.name, CountryID: key.countryID})
		}
	}

	return t
}

func (t cityTable) key(rec *models.RawJobRecord) (cityKey, bool) {
	if rec.Location == "" {
		return cityKey{}, false
	}

	countryID, ok := t.countries.resolve(rec.Country)
	if !ok {
		return cityKey{}, false
	}

	return cityKey{name: rec.Location, countryID: countryID}, true
}

// resolve returns the CityId of a record's location, or nil.
func (t cityTable) resolve(rec *models.RawJobRecord) *int64 {
	key, ok := t.key(rec)
	if !ok {
		return nil
	}

	id, ok := t.ids.Lookup(key)
	if !ok {
		return nil
	}

	return &id
}

type companyTable struct {
	rows []models.Company
	ids  *Registry[string]
}

func (n *Normalizer) buildCompanies(records []models.RawJobRecord, cities cityTable) companyTable {
	t := companyTable{ids: NewRegistry[string]()}

	for i := range records {
		rec := &records[i]
		if rec.Company == "" {
			continue
		}

		// first occurrence wins; later rows for the same name are ignored
		if id, created := t.ids.AssignOrGet(rec.Company); created {
			t.rows = append(t.rows, n.transformer.Company(rec, id, cities.resolve(rec)))
		}
	}

	return t
}

func (t companyTable) resolve(name string) (int64, bool) {
	if name == "" {
		return 0, false
	}

	return t.ids.Lookup(name)
}

type userTable struct {
	rows      []models.User
	employers []models.Employer
	ids       *Registry[string]
}

func (n *Normalizer) buildUsers(records []models.RawJobRecord, cities cityTable, companies companyTable) userTable {
	t := userTable{ids: NewRegistry[string]()}

	for i := range records {
		rec := &records[i]
		if rec.Contact == "" {
			continue
		}

		id, created := t.ids.AssignOrGet(rec.Contact)
		if !created {
			continue
		}

		t.rows = append(t.rows, n.transformer.User(rec, id, cities.resolve(rec)))

		if companyID, ok := companies.resolve(rec.Company); ok {
			t.employers = append(t.employers, models.Employer{UserID: id, CompanyID: companyID})
		}
	}

	return t
}

func (t userTable) resolve(contact string) (int64, bool) {
	if contact == "" {
		return 0, false
	}

	return t.ids.Lookup(contact)
}

// postingKey is the full set of raw columns a posting is deduplicated on.
type postingKey struct {
	role          string
	description   string
	salaryRange   string
	workType      string
	location      string
	country       string
	postDate      string
	contactPerson string
	contact       string
	company       string
}

func newPostingKey(rec *models.RawJobRecord) postingKey {
	return postingKey{
		role:          rec.Role,
		description:   rec.Description,
		salaryRange:   rec.SalaryRange,
		workType:      rec.WorkType,
		location:      rec.Location,
		country:       rec.Country,
		postDate:      rec.PostDate,
		contactPerson: rec.ContactPerson,
		contact:       rec.Contact,
		company:       rec.Company,
	}
}

type postingTable struct {
	rows   []models.JobPosting
	errors []models.RecordError
}

func (n *Normalizer) buildJobPostings(records []models.RawJobRecord, cities cityTable, users userTable, stats *Stats) postingTable {
	var t postingTable

	ids := NewRegistry[postingKey]()
	rejected := make(map[postingKey]struct{})

	for i := range records {
		rec := &records[i]
		key := newPostingKey(rec)

		employerID, ok := users.resolve(rec.Contact)
		if !ok {
			if _, seen := rejected[key]; !seen {
				rejected[key] = struct{}{}
				t.errors = append(t.errors, models.RecordError{
					Row:     rec.Row,
					Kind:    models.ErrorKindUnresolvedForeignKey,
					Field:   models.ColumnContact,
					Value:   rec.Contact,
					Message: "contact does not resolve to a user",
				})
				n.logger.Warn("job posting rejected", "row", rec.Row, "contact", rec.Contact)
			}

			continue
		}

		id, created := ids.AssignOrGet(key)
		if !created {
			continue
		}

		fields := n.transformer.Posting(rec)
		if fields.UnparsableRange {
			stats.UnparsableRanges++
		}

		if fields.UnknownWorkType {
			stats.UnknownCategories++
		}

		t.rows = append(t.rows, n.transformer.JobPosting(rec, id, employerID, cities.resolve(rec), fields))
	}

	return t
}
