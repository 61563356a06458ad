package models

type Location struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Country string `gorm:"size:100;uniqueIndex:idx_locations_country_city" json:"country"`
	City    string `gorm:"size:100;uniqueIndex:idx_locations_country_city" json:"city"`
}
