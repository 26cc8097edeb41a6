package repository

import (
	"context"

	"github.com/shinyyama/collecta-backend/internal/model"
	"gorm.io/gorm"
)

type LocationRepository interface {
	// CreateWithItems inserts the location and its full association batch
	// in one transaction. On any failure neither is persisted.
	CreateWithItems(ctx context.Context, loc *model.Location, itemIDs []uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	ListItemTitles(ctx context.Context, locationID uint64) ([]string, error)
	Search(ctx context.Context, city, uf string, itemIDs []uint64) ([]model.Location, error)
	SetDB(db *gorm.DB)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) CreateWithItems(ctx context.Context, loc *model.Location, itemIDs []uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loc).Error; err != nil {
			return err
		}
		if len(itemIDs) == 0 {
			return nil
		}
		rows := make([]model.LocationItem, 0, len(itemIDs))
		for _, itemID := range itemIDs {
			rows = append(rows, model.LocationItem{
				LocationID: loc.ID,
				ItemID:     itemID,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *locationRepository) FindByID(ctx context.Context, id uint64) (*model.Location, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var loc model.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) Update(ctx context.Context, loc *model.Location) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *locationRepository) ListItemTitles(ctx context.Context, locationID uint64) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var titles []string
	if err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Joins("JOIN location_items ON location_items.item_id = items.id").
		Where("location_items.location_id = ?", locationID).
		Pluck("items.title", &titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *locationRepository) Search(ctx context.Context, city, uf string, itemIDs []uint64) ([]model.Location, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).Model(&model.Location{})
	if len(itemIDs) > 0 {
		// A location accepting several matched items must still appear
		// once, hence the DISTINCT over the join.
		q = q.
			Joins("JOIN location_items ON location_items.location_id = locations.id").
			Where("location_items.item_id IN ?", itemIDs).
			Distinct("locations.*")
	}
	// Empty filter values produce LIKE '%%', which matches every row.
	q = q.
		Where("locations.city LIKE ?", "%"+city+"%").
		Where("locations.uf LIKE ?", "%"+uf+"%")

	var locs []model.Location
	if err := q.Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *locationRepository) SetDB(db *gorm.DB) {
	r.db = db
}
