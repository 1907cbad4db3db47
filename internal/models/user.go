package models

// RoleEmployer is the only role produced by the pipeline.
const RoleEmployer = "employer"

// User is keyed by contact identifier, stored in Phone.
type User struct {
	UserID       int64   `json:"userId" gorm:"column:UserId;primaryKey;autoIncrement:false"`
	Phone        string  `json:"phone" gorm:"column:Phone;uniqueIndex"`
	PasswordHash string  `json:"-" gorm:"column:PasswordHash"`
	UserName     *string `json:"userName" gorm:"column:UserName"`
	CityID       *int64  `json:"cityId" gorm:"column:CityId"`
	Role         string  `json:"role" gorm:"column:Role"`
}

// TableName implements gorm's tabler interface.
func (User) TableName() string { return "Users" }

// Employer links a User to the Company it posts for.
type Employer struct {
	UserID    int64 `json:"userId" gorm:"column:UserId;primaryKey;autoIncrement:false"`
	CompanyID int64 `json:"companyId" gorm:"column:CompanyId;index"`
}

// TableName implements gorm's tabler interface.
func (Employer) TableName() string { return "Employers" }
