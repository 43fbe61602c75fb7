package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages auto leads and their promotion to final leads.
type Service struct {
	db      *database.Client
	auditor *audit.Service
	metrics *metrics.Metrics
	log     logger.Logger
}

func New(db *database.Client, auditor *audit.Service, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{db: db, auditor: auditor, metrics: m, log: log}
}

// List returns auto leads matching the filters, newest first. An empty status
// set places no status constraint; search matches company name, email or
// industry case-insensitively.
func (s *Service) List(ctx context.Context, filters models.LeadFilters) (*models.AutoLeadListResponse, error) {
	page, pageSize := models.NormalizePage(filters.Page, filters.PageSize)

	q := s.db.DB.WithContext(ctx).Model(&domain.AutoLead{})
	if filters.CampaignID != nil {
		q = q.Where("campaign_id = ?", *filters.CampaignID)
	}
	if len(filters.Statuses) > 0 {
		q = q.Where("status IN ?", filters.Statuses)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		q = q.Where(
			"LOWER(company_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(industry) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.MinScore != nil {
		q = q.Where("relevance_score >= ?", *filters.MinScore)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	var leads []domain.AutoLead
	err := q.Preload("Campaign").
		Preload("Campaign.Product").
		Preload("Campaign.Region").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&leads).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &models.AutoLeadListResponse{
		Leads:      leads,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

// Get returns one auto lead with its campaign.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.AutoLead, error) {
	var l domain.AutoLead
	err := s.db.DB.WithContext(ctx).
		Preload("Campaign").
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("lead")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &l, nil
}

// Update patches status and/or selection of an auto lead.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateAutoLeadRequest) (*domain.AutoLead, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.IsSelected != nil {
		l.IsSelected = *req.IsSelected
	}

	if err := s.db.DB.WithContext(ctx).Save(l).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return l, nil
}

// Promote copies the given auto leads into final leads and marks the sources
// approved and selected. The whole operation runs in one transaction: either
// every found lead promotes or none does. An empty id set is a no-op; ids that
// resolve to no auto lead are skipped, so the result count equals the number
// of leads actually found. Promoting a lead that already has a final lead
// fails with a conflict (unique index on final_leads.auto_lead_id).
func (s *Service) Promote(ctx context.Context, leadIDs []uuid.UUID, approver uuid.UUID) ([]domain.FinalLead, error) {
	if len(leadIDs) == 0 {
		return nil, nil
	}

	var created []domain.FinalLead
	now := time.Now()

	err := s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sources []domain.AutoLead
		if err := tx.Where("id IN ?", leadIDs).Find(&sources).Error; err != nil {
			return domain.NewInternalError(err)
		}

		for i := range sources {
			src := &sources[i]

			var existing int64
			if err := tx.Model(&domain.FinalLead{}).
				Where("auto_lead_id = ?", src.ID).
				Count(&existing).Error; err != nil {
				return domain.NewInternalError(err)
			}
			if existing > 0 {
				return domain.NewConflictError(fmt.Sprintf("lead %s is already promoted", src.ID))
			}

			autoID := src.ID
			fl := domain.FinalLead{
				AutoLeadID:      &autoID,
				CompanyName:     src.CompanyName,
				Website:         src.Website,
				LinkedinURL:     src.LinkedinURL,
				Email:           src.Email,
				Phone:           src.Phone,
				Address:         src.Address,
				Industry:        src.Industry,
				EmployeeCount:   src.EmployeeCount,
				RevenueRange:    src.RevenueRange,
				KeywordsMatched: src.KeywordsMatched,
				RelevanceScore:  src.RelevanceScore,
				Status:          domain.LeadStatusApproved,
				Priority:        domain.PriorityMedium,
				ApprovedBy:      approver,
				ApprovedAt:      now,
			}
			if err := tx.Create(&fl).Error; err != nil {
				return domain.NewInternalError(err)
			}
			created = append(created, fl)

			src.Status = domain.LeadStatusApproved
			src.IsSelected = true
			if err := tx.Save(src).Error; err != nil {
				return domain.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.NewInternalError(err)
	}

	if s.metrics != nil {
		s.metrics.LeadsPromoted.Add(float64(len(created)))
	}
	if s.auditor != nil {
		s.auditor.Log(ctx, audit.Entry{
			UserID:       approver,
			ActivityType: domain.ActivityApprove,
			EntityType:   "auto_lead",
			Description:  fmt.Sprintf("promoted %d leads to final", len(created)),
			Metadata:     domain.JSONMap{"lead_count": len(created)},
		})
	}
	s.log.Info("promoted leads", "count", len(created), "approver", approver)

	return created, nil
}
