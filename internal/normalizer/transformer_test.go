package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnorm/internal/config"
	"jobnorm/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestParseRange(t *testing.T) {
	tests := []struct {
		text     string
		wantLow  *int64
		wantHigh *int64
		wantOK   bool
	}{
		{"$59K-$99K", int64Ptr(59), int64Ptr(99), true},
		{"$40K", int64Ptr(40), nil, true},
		{"59-99", int64Ptr(59), int64Ptr(99), true},
		{"$56K-$116K", int64Ptr(56), int64Ptr(116), true},
		{"not a number", nil, nil, false},
		{"", nil, nil, false},
		{"$99999999999999999999K", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			low, high, ok := ParseRange(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLow, low)
			assert.Equal(t, tt.wantHigh, high)
		})
	}
}

func TestCategoryNormalizer(t *testing.T) {
	c := NewCategoryNormalizer([]string{"Full-time", "Part-time", "Contract", "Intern"}, "Full-time")

	label, known := c.Normalize("Freelance")
	assert.Equal(t, "Full-time", label)
	assert.False(t, known)

	label, known = c.Normalize("Intern")
	assert.Equal(t, "Intern", label)
	assert.True(t, known)

	label, known = c.Normalize("")
	assert.Equal(t, "Full-time", label)
	assert.False(t, known)

	// matching is exact
	label, _ = c.Normalize("intern")
	assert.Equal(t, "Full-time", label)
}

func TestTransformer_Industry(t *testing.T) {
	tr := NewTransformer(config.DefaultConfig().Rules)

	name, ok, malformed := tr.Industry(&models.RawJobRecord{CompanyProfile: `{'Industry': 'Retail'}`})
	assert.Equal(t, "Retail", name)
	assert.True(t, ok)
	assert.False(t, malformed)

	_, ok, malformed = tr.Industry(&models.RawJobRecord{CompanyProfile: "not-json"})
	assert.False(t, ok)
	assert.True(t, malformed)

	_, ok, malformed = tr.Industry(&models.RawJobRecord{})
	assert.False(t, ok)
	assert.False(t, malformed)
}

func TestTransformer_UserAndCompany(t *testing.T) {
	tr := NewTransformer(config.DefaultConfig().Rules)
	rec := &models.RawJobRecord{Contact: "555-0100", Company: "Acme", CompanySize: "26801"}

	user := tr.User(rec, 7, int64Ptr(3))
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "555-0100", user.Phone)
	assert.Equal(t, "####", user.PasswordHash)
	assert.Nil(t, user.UserName)
	assert.Equal(t, models.RoleEmployer, user.Role)
	assert.Equal(t, int64(3), *user.CityID)

	company := tr.Company(rec, 2, nil)
	assert.Equal(t, "Acme", company.CompanyName)
	require.NotNil(t, company.Size)
	assert.Equal(t, "26801", *company.Size)
	assert.Nil(t, company.CityID)
}

func TestTransformer_JobPosting(t *testing.T) {
	tr := NewTransformer(config.DefaultConfig().Rules)
	rec := &models.RawJobRecord{
		Role:        "Data Engineer",
		SalaryRange: "$59K-$99K",
		WorkType:    "Temporary",
		PostDate:    "2022-04-24",
	}

	fields := tr.Posting(rec)
	assert.False(t, fields.UnparsableRange)
	assert.True(t, fields.UnknownWorkType)

	job := tr.JobPosting(rec, 1, 4, nil, fields)
	assert.Equal(t, int64(4), job.EmployerID)
	assert.Equal(t, "Data Engineer", *job.Title)
	assert.Nil(t, job.Description)
	assert.Equal(t, int64(59), *job.MinSalary)
	assert.Equal(t, int64(99), *job.MaxSalary)
	assert.Equal(t, "Full-time", job.WorkType)
	assert.True(t, job.IsActive)
	assert.Equal(t, "2022-04-24", *job.PostDate)
}

func TestTransformer_Posting_UnparsableRange(t *testing.T) {
	tr := NewTransformer(config.DefaultConfig().Rules)

	fields := tr.Posting(&models.RawJobRecord{SalaryRange: "negotiable", WorkType: "Contract"})
	assert.True(t, fields.UnparsableRange)
	assert.False(t, fields.UnknownWorkType)
	assert.Nil(t, fields.MinSalary)
	assert.Nil(t, fields.MaxSalary)

	// a missing range is absent, not a defect
	fields = tr.Posting(&models.RawJobRecord{WorkType: "Contract"})
	assert.False(t, fields.UnparsableRange)
}
