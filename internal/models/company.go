package models

// Industry is a distinct industry label taken from company profiles.
type Industry struct {
	IndustryID   int64  `json:"industryId" gorm:"column:IndustryId;primaryKey;autoIncrement:false"`
	IndustryName string `json:"industryName" gorm:"column:IndustryName;uniqueIndex"`
}

// TableName implements gorm's tabler interface.
func (Industry) TableName() string { return "Industry" }

// Company is keyed by name only; the first row seen for a name decides Size and CityID.
type Company struct {
	CompanyID   int64   `json:"companyId" gorm:"column:CompanyId;primaryKey;autoIncrement:false"`
	CompanyName string  `json:"companyName" gorm:"column:CompanyName;uniqueIndex"`
	Size        *string `json:"size" gorm:"column:Size"`
	CityID      *int64  `json:"cityId" gorm:"column:CityId"`
}

// TableName implements gorm's tabler interface.
func (Company) TableName() string { return "Companies" }
