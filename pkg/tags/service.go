package tags

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages lead tags.
type Service struct {
	db *database.Client
}

func New(db *database.Client) *Service {
	return &Service{db: db}
}

// List returns all tags ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.LeadTag, error) {
	var out []domain.LeadTag
	if err := s.db.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// Create adds a tag. Names are unique case-insensitively.
func (s *Service) Create(ctx context.Context, req models.CreateTagRequest, createdBy uuid.UUID) (*domain.LeadTag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("tag name is required")
	}

	var count int64
	err := s.db.DB.WithContext(ctx).Model(&domain.LeadTag{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if count > 0 {
		return nil, domain.NewConflictError("tag already exists")
	}

	tag := &domain.LeadTag{
		Name:        name,
		Color:       req.Color,
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	if err := s.db.DB.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return tag, nil
}

// Delete removes a tag.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.DB.WithContext(ctx).Delete(&domain.LeadTag{}, "id = ?", id)
	if res.Error != nil {
		return domain.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("tag")
	}
	return nil
}

// Get returns one tag.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.LeadTag, error) {
	var t domain.LeadTag
	err := s.db.DB.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("tag")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &t, nil
}
