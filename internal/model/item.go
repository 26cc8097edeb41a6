package model

import "time"

// Item is a recyclable material category. Rows are seeded reference data;
// the public API never creates them.
type Item struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:120;not null"`
	Image     string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
