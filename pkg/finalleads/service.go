package finalleads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/phone"
	"gorm.io/gorm"
)

// Notifier delivers assignment notifications. Satisfied by *email.Service;
// nil disables notifications.
type Notifier interface {
	SendLeadAssigned(ctx context.Context, toAddress, toName string, lead *domain.FinalLead) error
}

// Service manages the final (approved) lead pipeline.
type Service struct {
	db       *database.Client
	notifier Notifier
	log      logger.Logger
}

func New(db *database.Client, notifier Notifier, log logger.Logger) *Service {
	return &Service{db: db, notifier: notifier, log: log}
}

// List returns final leads matching the filters, newest first.
func (s *Service) List(ctx context.Context, filters models.FinalLeadFilters) (*models.FinalLeadListResponse, error) {
	page, pageSize := models.NormalizePage(filters.Page, filters.PageSize)

	q := s.db.DB.WithContext(ctx).Model(&domain.FinalLead{})
	if len(filters.Statuses) > 0 {
		q = q.Where("status IN ?", filters.Statuses)
	}
	if filters.Priority != nil {
		q = q.Where("priority = ?", *filters.Priority)
	}
	if filters.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filters.AssignedTo)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where(
			"LOWER(company_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(industry) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	var leads []domain.FinalLead
	err := q.Preload("AssignedUser").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&leads).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &models.FinalLeadListResponse{
		Leads:      leads,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

// Get returns one final lead with its assignee.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.FinalLead, error) {
	var l domain.FinalLead
	err := s.db.DB.WithContext(ctx).
		Preload("AssignedUser").
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("final lead")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &l, nil
}

// Create adds a manually entered final lead (no auto lead backing it). The
// phone number, when present, is validated and normalized to E.164.
func (s *Service) Create(ctx context.Context, req models.CreateFinalLeadRequest, createdBy uuid.UUID) (*domain.FinalLead, error) {
	normalized, err := phone.Normalize(req.Phone, "US")
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	l := &domain.FinalLead{
		CompanyName:   req.CompanyName,
		Website:       req.Website,
		LinkedinURL:   req.LinkedinURL,
		Email:         req.Email,
		Phone:         normalized,
		Address:       req.Address,
		Industry:      req.Industry,
		EmployeeCount: req.EmployeeCount,
		RevenueRange:  req.RevenueRange,
		Status:        domain.LeadStatusApproved,
		Priority:      priority,
		Notes:         req.Notes,
		ApprovedBy:    createdBy,
		ApprovedAt:    time.Now(),
	}
	if err := s.db.DB.WithContext(ctx).Create(l).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return l, nil
}

// Update patches pipeline fields of a final lead. Assigning the lead to a
// different profile notifies the new assignee by email.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateFinalLeadRequest) (*domain.FinalLead, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Priority != nil {
		l.Priority = *req.Priority
	}
	var newAssignee *domain.Profile
	if req.AssignedTo != nil {
		p, err := s.assigneeProfile(ctx, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if l.AssignedTo == nil || *l.AssignedTo != *req.AssignedTo {
			newAssignee = p
		}
		l.AssignedTo = req.AssignedTo
	}
	if req.LastContactDate != nil {
		l.LastContactDate = req.LastContactDate
	}
	if req.NextFollowUp != nil {
		l.NextFollowUp = req.NextFollowUp
	}
	if req.ConversionProbability != nil {
		if *req.ConversionProbability < 0 || *req.ConversionProbability > 100 {
			return nil, domain.NewValidationError("conversion_probability must be between 0 and 100")
		}
		l.ConversionProbability = req.ConversionProbability
	}
	if req.Notes != nil {
		l.Notes = *req.Notes
	}

	if err := s.db.DB.WithContext(ctx).Save(l).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	if newAssignee != nil {
		s.notifyAssignment(*newAssignee, *l)
	}

	return s.Get(ctx, l.ID)
}

// notifyAssignment emails the new assignee in the background. Delivery
// failures are logged, never surfaced to the caller.
func (s *Service) notifyAssignment(p domain.Profile, l domain.FinalLead) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.SendLeadAssigned(ctx, p.Email, p.FullName, &l); err != nil {
			s.log.Error("assignment email failed", "email", p.Email, "error", err)
		}
	}()
}

// Delete removes a final lead permanently. Unlike products, final leads are
// hard-deleted; the backing auto lead (if any) is untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.db.DB.WithContext(ctx).Delete(&domain.FinalLead{}, "id = ?", id).Error; err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

func (s *Service) assigneeProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.db.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("profile")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if !p.IsActive {
		return nil, domain.NewValidationError("cannot assign to an inactive profile")
	}
	return &p, nil
}
