package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shinyyama/collecta-backend/internal/model"
	"github.com/shinyyama/collecta-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// PlaceholderImage is assigned at registration time; the real image
// arrives later through the upload endpoint.
const PlaceholderImage = "fake_image.jpg"

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

type CreateLocationInput struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	Items     []uint64
}

type LocationService interface {
	Create(ctx context.Context, in CreateLocationInput) (*model.Location, error)
	Get(ctx context.Context, id uint64) (*model.Location, []string, error)
	SetImage(ctx context.Context, id uint64, image string) (*model.Location, error)
	Search(ctx context.Context, city, uf string, itemIDs []uint64) ([]model.Location, error)
}

type locationService struct {
	locRepo  repository.LocationRepository
	itemRepo repository.ItemRepository
}

func NewLocationService(locRepo repository.LocationRepository, itemRepo repository.ItemRepository) LocationService {
	return &locationService{locRepo: locRepo, itemRepo: itemRepo}
}

func (s *locationService) Create(ctx context.Context, in CreateLocationInput) (*model.Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Whatsapp = strings.TrimSpace(in.Whatsapp)
	in.City = strings.TrimSpace(in.City)
	in.UF = strings.TrimSpace(in.UF)

	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "is required"
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "must be a valid email"
	}
	if in.Whatsapp == "" {
		fields["whatsapp"] = "is required"
	}
	if in.City == "" {
		fields["city"] = "is required"
	}
	if in.UF == "" || len(in.UF) > 2 {
		fields["uf"] = "must be at most 2 characters"
	}
	if len(in.Items) == 0 {
		fields["items"] = "is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	itemIDs := dedupeIDs(in.Items)

	// Every submitted item must exist before the transaction opens;
	// unknown ids fail the whole create.
	found, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(itemIDs, found); len(missing) > 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"items": fmt.Sprintf("item not found: %s", joinIDs(missing)),
		}}
	}

	image := PlaceholderImage
	loc := &model.Location{
		Name:      in.Name,
		Email:     in.Email,
		Whatsapp:  in.Whatsapp,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		City:      in.City,
		UF:        in.UF,
		Image:     &image,
	}
	if err := s.locRepo.CreateWithItems(ctx, loc, itemIDs); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Get(ctx context.Context, id uint64) (*model.Location, []string, error) {
	loc, err := s.locRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	titles, err := s.locRepo.ListItemTitles(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return loc, titles, nil
}

func (s *locationService) SetImage(ctx context.Context, id uint64, image string) (*model.Location, error) {
	loc, err := s.locRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	loc.Image = &image
	if err := s.locRepo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Search(ctx context.Context, city, uf string, itemIDs []uint64) ([]model.Location, error) {
	return s.locRepo.Search(ctx, strings.TrimSpace(city), strings.TrimSpace(uf), dedupeIDs(itemIDs))
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(want []uint64, found []model.Item) []uint64 {
	have := make(map[uint64]struct{}, len(found))
	for _, it := range found {
		have[it.ID] = struct{}{}
	}
	var missing []uint64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uint64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ", ")
}
