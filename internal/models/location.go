package models

// Country is a distinct country name.
type Country struct {
	CountryID   int64  `json:"countryId" gorm:"column:CountryId;primaryKey;autoIncrement:false"`
	CountryName string `json:"countryName" gorm:"column:CountryName;uniqueIndex"`
}

// TableName implements gorm's tabler interface.
func (Country) TableName() string { return "Countries" }

// City is a distinct (name, country) pair.
type City struct {
	CityID    int64  `json:"cityId" gorm:"column:CityId;primaryKey;autoIncrement:false"`
	CityName  string `json:"cityName" gorm:"column:CityName"`
	CountryID int64  `json:"countryId" gorm:"column:CountryId;index"`
}

// TableName implements gorm's tabler interface.
func (City) TableName() string { return "Cities" }
