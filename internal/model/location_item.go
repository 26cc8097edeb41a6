package model

import "time"

// LocationItem links a location to one item category it accepts.
// Rows only ever come into existence as a batch inside the transaction
// that creates their location.
type LocationItem struct {
	LocationID uint64    `gorm:"column:location_id;not null;primaryKey"`
	ItemID     uint64    `gorm:"column:item_id;not null;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (LocationItem) TableName() string {
	return "location_items"
}
