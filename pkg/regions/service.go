package regions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages campaign target regions.
type Service struct {
	db *database.Client
}

func New(db *database.Client) *Service {
	return &Service{db: db}
}

// List returns active regions ordered by name.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]domain.Region, error) {
	q := s.db.DB.WithContext(ctx).Model(&domain.Region{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Region
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// Get returns one region by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	var r domain.Region
	err := s.db.DB.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("region")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &r, nil
}

// Create adds a new region.
func (s *Service) Create(ctx context.Context, req models.CreateRegionRequest) (*domain.Region, error) {
	r := &domain.Region{
		Name:     req.Name,
		Country:  req.Country,
		State:    req.State,
		City:     req.City,
		IsActive: true,
	}
	if err := s.db.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return r, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateRegionRequest) (*domain.Region, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Country != nil {
		r.Country = *req.Country
	}
	if req.State != nil {
		r.State = *req.State
	}
	if req.City != nil {
		r.City = *req.City
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}

	if err := s.db.DB.WithContext(ctx).Save(r).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return r, nil
}

// Delete deactivates a region.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	r.IsActive = false
	if err := s.db.DB.WithContext(ctx).Save(r).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}
