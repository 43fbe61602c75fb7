package leadnote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages notes attached to auto and final leads.
type Service struct {
	db *database.Client
}

func New(db *database.Client) *Service {
	return &Service{db: db}
}

// ListForLead returns the notes of one lead, newest first, with authors.
func (s *Service) ListForLead(ctx context.Context, leadID uuid.UUID, leadType domain.LeadType) ([]domain.LeadNote, error) {
	var notes []domain.LeadNote
	err := s.db.DB.WithContext(ctx).
		Preload("User").
		Where("lead_id = ? AND lead_type = ?", leadID, leadType).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return notes, nil
}

// Create attaches a note to a lead. The lead must exist in the table named by
// lead_type.
func (s *Service) Create(ctx context.Context, req models.CreateNoteRequest, createdBy uuid.UUID) (*domain.LeadNote, error) {
	if err := s.checkLead(ctx, req.LeadID, req.LeadType); err != nil {
		return nil, err
	}

	n := &domain.LeadNote{
		LeadID:     req.LeadID,
		LeadType:   req.LeadType,
		Note:       req.Note,
		IsInternal: req.IsInternal,
		CreatedBy:  createdBy,
	}
	if err := s.db.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return n, nil
}

// Delete removes a note. Only the author or an admin may delete; the handler
// enforces that, this just removes the row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.DB.WithContext(ctx).Delete(&domain.LeadNote{}, "id = ?", id)
	if res.Error != nil {
		return domain.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("note")
	}
	return nil
}

// Get returns one note.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.LeadNote, error) {
	var n domain.LeadNote
	err := s.db.DB.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("note")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &n, nil
}

func (s *Service) checkLead(ctx context.Context, id uuid.UUID, leadType domain.LeadType) error {
	var (
		count int64
		err   error
	)
	switch leadType {
	case domain.LeadTypeAuto:
		err = s.db.DB.WithContext(ctx).Model(&domain.AutoLead{}).Where("id = ?", id).Count(&count).Error
	case domain.LeadTypeFinal:
		err = s.db.DB.WithContext(ctx).Model(&domain.FinalLead{}).Where("id = ?", id).Count(&count).Error
	default:
		return domain.NewValidationError("lead_type must be auto or final")
	}
	if err != nil {
		return domain.NewInternalError(err)
	}
	if count == 0 {
		return domain.NewNotFoundError("lead")
	}
	return nil
}
