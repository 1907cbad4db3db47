// Package models defines the raw input record and the normalized table rows.
package models

// RawJobRecord is one denormalized input row. Empty strings mean the cell was missing.
type RawJobRecord struct {
	Row            int
	Role           string
	Description    string
	SalaryRange    string
	WorkType       string
	Location       string
	Country        string
	PostDate       string
	ContactPerson  string
	Contact        string
	Company        string
	CompanySize    string
	CompanyProfile string
}

// Input column names as they appear in the source CSV header.
const (
	ColumnRole           = "Role"
	ColumnDescription    = "Job Description"
	ColumnSalaryRange    = "Salary Range"
	ColumnWorkType       = "Work Type"
	ColumnLocation       = "location"
	ColumnCountry        = "Country"
	ColumnPostDate       = "Job Posting Date"
	ColumnContactPerson  = "Contact Person"
	ColumnContact        = "Contact"
	ColumnCompany        = "Company"
	ColumnCompanySize    = "Company Size"
	ColumnCompanyProfile = "Company Profile"
)

// RequiredColumns lists every column the loader must find in the header.
var RequiredColumns = []string{
	ColumnRole,
	ColumnDescription,
	ColumnSalaryRange,
	ColumnWorkType,
	ColumnLocation,
	ColumnCountry,
	ColumnPostDate,
	ColumnContactPerson,
	ColumnContact,
	ColumnCompany,
	ColumnCompanySize,
	ColumnCompanyProfile,
}

// JobPosting is one deduplicated job listing. EmployerID always names a User.
type JobPosting struct {
	JobID       int64   `json:"jobId" gorm:"column:JobId;primaryKey;autoIncrement:false"`
	EmployerID  int64   `json:"employerId" gorm:"column:EmployerId;index"`
	Title       *string `json:"title" gorm:"column:Title"`
	Description *string `json:"description" gorm:"column:Description"`
	MinSalary   *int64  `json:"minSalary" gorm:"column:MinSalary"`
	MaxSalary   *int64  `json:"maxSalary" gorm:"column:MaxSalary"`
	WorkType    string  `json:"workType" gorm:"column:WorkType"`
	CityID      *int64  `json:"cityId" gorm:"column:CityId"`
	IsActive    bool    `json:"isActive" gorm:"column:IsActive"`
	PostDate    *string `json:"postDate" gorm:"column:PostDate"`
}

// TableName implements gorm's tabler interface.
func (JobPosting) TableName() string { return "JobPostings" }
