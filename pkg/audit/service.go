package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
)

// Service records and queries user activity. Logging is best-effort: a failed
// write is reported to the logger but never fails the calling operation.
type Service struct {
	db  *database.Client
	log logger.Logger
}

func New(db *database.Client, log logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// Entry is one activity to record.
type Entry struct {
	UserID       uuid.UUID
	ActivityType domain.ActivityType
	EntityType   string
	EntityID     string
	Description  string
	Metadata     domain.JSONMap
	IPAddress    string
	UserAgent    string
}

// Log appends an activity record.
func (s *Service) Log(ctx context.Context, e Entry) {
	rec := &domain.ActivityLog{
		UserID:       e.UserID,
		ActivityType: e.ActivityType,
		EntityType:   e.EntityType,
		EntityID:     e.EntityID,
		Description:  e.Description,
		Metadata:     e.Metadata,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
	}
	if err := s.db.DB.WithContext(ctx).Create(rec).Error; err != nil {
		s.log.Error("failed to record activity",
			"user_id", e.UserID,
			"activity_type", e.ActivityType,
			"error", err)
	}
}

// List returns activity records, newest first.
func (s *Service) List(ctx context.Context, filters models.ActivityFilters) (*models.ActivityListResponse, error) {
	page, pageSize := models.NormalizePage(filters.Page, filters.PageSize)

	q := s.db.DB.WithContext(ctx).Model(&domain.ActivityLog{})
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.ActivityType != nil {
		q = q.Where("activity_type = ?", *filters.ActivityType)
	}
	if filters.EntityType != "" {
		q = q.Where("entity_type = ?", filters.EntityType)
	}
	if filters.From != nil {
		q = q.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("created_at <= ?", *filters.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	var activities []domain.ActivityLog
	err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &models.ActivityListResponse{
		Activities: activities,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, Total: total},
	}, nil
}
