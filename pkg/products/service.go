package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages the product catalog.
type Service struct {
	db *database.Client
}

func New(db *database.Client) *Service {
	return &Service{db: db}
}

// List returns products, newest first. Inactive products are included only
// when includeInactive is set.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	q := s.db.DB.WithContext(ctx).Model(&domain.Product{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Product
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := s.db.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("product")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &p, nil
}

// Create adds a new product. Keywords are required since they drive lead
// matching.
func (s *Service) Create(ctx context.Context, req models.CreateProductRequest, createdBy uuid.UUID) (*domain.Product, error) {
	if len(req.Keywords) == 0 {
		return nil, domain.NewValidationError("at least one keyword is required")
	}

	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Keywords:    req.Keywords,
		IsActive:    true,
		CreatedBy:   createdBy,
	}
	if err := s.db.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return p, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Keywords != nil {
		if len(*req.Keywords) == 0 {
			return nil, domain.NewValidationError("at least one keyword is required")
		}
		p.Keywords = *req.Keywords
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.db.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return p, nil
}

// Delete deactivates a product. Products are never physically removed because
// campaigns keep referencing them.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = false
	if err := s.db.DB.WithContext(ctx).Save(p).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}
