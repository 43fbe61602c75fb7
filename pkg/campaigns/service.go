package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/leadgen"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages campaigns and drives lead generation for them.
type Service struct {
	db        *database.Client
	generator *leadgen.Generator
	auditor   *audit.Service
	metrics   *metrics.Metrics
	log       logger.Logger
	batchSize int
}

func New(db *database.Client, generator *leadgen.Generator, auditor *audit.Service, m *metrics.Metrics, log logger.Logger, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = 3
	}
	return &Service{
		db:        db,
		generator: generator,
		auditor:   auditor,
		metrics:   m,
		log:       log,
		batchSize: batchSize,
	}
}

// List returns all campaigns with product and region attached, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := s.db.DB.WithContext(ctx).
		Preload("Product").
		Preload("Region").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// Get returns one campaign with relations.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	var c domain.Campaign
	err := s.db.DB.WithContext(ctx).
		Preload("Product").
		Preload("Region").
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("campaign")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &c, nil
}

// Create adds a campaign. Keywords are snapshotted from the product at this
// moment; later product edits do not affect the campaign.
func (s *Service) Create(ctx context.Context, req models.CreateCampaignRequest, createdBy uuid.UUID) (*domain.Campaign, error) {
	product, err := s.activeProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRegion(ctx, req.RegionID); err != nil {
		return nil, err
	}
	if req.IsRecurring && req.RecurrencePattern == "" {
		return nil, domain.NewValidationError("recurrence_pattern is required for recurring campaigns")
	}

	c := &domain.Campaign{
		Name:              req.Name,
		Description:       req.Description,
		ProductID:         req.ProductID,
		RegionID:          req.RegionID,
		Keywords:          product.Keywords,
		Status:            domain.CampaignStatusScheduled,
		ScheduledAt:       req.ScheduledAt,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		CreatedBy:         createdBy,
	}
	if err := s.db.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return s.Get(ctx, c.ID)
}

// Update applies a partial update. Re-pointing the campaign at a different
// product re-snapshots its keywords from that product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateCampaignRequest) (*domain.Campaign, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductID != nil && *req.ProductID != c.ProductID {
		product, err := s.activeProduct(ctx, *req.ProductID)
		if err != nil {
			return nil, err
		}
		c.ProductID = *req.ProductID
		c.Keywords = product.Keywords
	}
	if req.RegionID != nil && *req.RegionID != c.RegionID {
		if err := s.checkRegion(ctx, *req.RegionID); err != nil {
			return nil, err
		}
		c.RegionID = *req.RegionID
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.ScheduledAt != nil {
		c.ScheduledAt = req.ScheduledAt
	}
	if req.IsRecurring != nil {
		c.IsRecurring = *req.IsRecurring
	}
	if req.RecurrencePattern != nil {
		c.RecurrencePattern = *req.RecurrencePattern
	}

	if err := s.db.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return s.Get(ctx, c.ID)
}

// Delete removes a campaign and its generated auto leads.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&domain.AutoLead{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Campaign{}, "id = ?", id).Error
	})
	if err != nil {
		return domain.NewInternalError(err)
	}
	return nil
}

// GenerateLeads produces a batch of auto leads for the campaign, bumps its
// counter and advances a scheduled campaign to active.
func (s *Service) GenerateLeads(ctx context.Context, campaignID, actor uuid.UUID) (*models.GenerateLeadsResponse, error) {
	c, err := s.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CampaignStatusPaused || c.Status == domain.CampaignStatusCompleted {
		return nil, domain.NewValidationError(fmt.Sprintf("cannot generate leads for a %s campaign", c.Status))
	}

	leads, err := s.generator.Generate(ctx, c, c.Region, s.batchSize)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	err = s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(leads) > 0 {
			if err := tx.Create(&leads).Error; err != nil {
				return err
			}
		}
		c.LeadsGenerated += len(leads)
		if c.Status == domain.CampaignStatusScheduled {
			c.Status = domain.CampaignStatusActive
		}
		return tx.Model(&domain.Campaign{}).
			Where("id = ?", c.ID).
			Updates(map[string]any{
				"leads_generated": c.LeadsGenerated,
				"status":          c.Status,
			}).Error
	})
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	if s.metrics != nil {
		s.metrics.CampaignRuns.Inc()
		s.metrics.LeadsGenerated.Add(float64(len(leads)))
	}
	if s.auditor != nil {
		s.auditor.Log(ctx, audit.Entry{
			UserID:       actor,
			ActivityType: domain.ActivityCreate,
			EntityType:   "campaign",
			EntityID:     c.ID.String(),
			Description:  fmt.Sprintf("generated %d leads for campaign %q", len(leads), c.Name),
			Metadata:     domain.JSONMap{"lead_count": len(leads)},
		})
	}
	s.log.Info("generated leads",
		"campaign_id", c.ID,
		"count", len(leads))

	return &models.GenerateLeadsResponse{Campaign: c, Leads: leads}, nil
}

// DueRecurring returns recurring campaigns whose next run time has passed.
func (s *Service) DueRecurring(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := s.db.DB.WithContext(ctx).
		Preload("Region").
		Where("is_recurring = ?", true).
		Where("status IN ?", []domain.CampaignStatus{domain.CampaignStatusScheduled, domain.CampaignStatusActive}).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Find(&out).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// AdvanceSchedule moves a recurring campaign's scheduled_at forward by its
// recurrence pattern.
func (s *Service) AdvanceSchedule(ctx context.Context, c *domain.Campaign, now time.Time) error {
	if c.ScheduledAt == nil {
		return nil
	}

	next := *c.ScheduledAt
	for !next.After(now) {
		switch c.RecurrencePattern {
		case domain.RecurrenceWeekly:
			next = next.AddDate(0, 0, 7)
		case domain.RecurrenceMonthly:
			next = next.AddDate(0, 1, 0)
		case domain.RecurrenceQuarterly:
			next = next.AddDate(0, 3, 0)
		default:
			return domain.NewValidationError("unknown recurrence pattern")
		}
	}

	err := s.db.DB.WithContext(ctx).Model(&domain.Campaign{}).
		Where("id = ?", c.ID).
		Update("scheduled_at", next).Error
	if err != nil {
		return domain.NewInternalError(err)
	}
	c.ScheduledAt = &next
	return nil
}

func (s *Service) activeProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := s.db.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("product")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if !p.IsActive {
		return nil, domain.NewValidationError("product is inactive")
	}
	return &p, nil
}

func (s *Service) checkRegion(ctx context.Context, id uuid.UUID) error {
	var r domain.Region
	err := s.db.DB.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError("region")
	}
	if err != nil {
		return domain.NewInternalError(err)
	}
	if !r.IsActive {
		return domain.NewValidationError("region is inactive")
	}
	return nil
}
