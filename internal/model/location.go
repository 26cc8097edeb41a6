package model

import "time"

// Location is a registered collection point. Image holds a stored
// filename, not a URL; it starts as a placeholder and is replaced once
// an image is uploaded.
type Location struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:120;not null"`
	Email     string    `gorm:"size:255;not null"`
	Whatsapp  string    `gorm:"size:32;not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	City      string    `gorm:"size:120;not null"`
	UF        string    `gorm:"column:uf;size:2;not null"`
	Image     *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Location) TableName() string {
	return "locations"
}
