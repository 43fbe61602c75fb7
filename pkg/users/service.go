package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/auth"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/email"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"gorm.io/gorm"
)

// Service manages profiles and authentication.
type Service struct {
	db           *database.Client
	blacklist    *auth.TokenBlacklist
	auditor      *audit.Service
	emailer      *email.Service
	metrics      *metrics.Metrics
	log          logger.Logger
	jwtSecret    string
	jwtExpHours  int
}

func New(db *database.Client, blacklist *auth.TokenBlacklist, auditor *audit.Service, emailer *email.Service, m *metrics.Metrics, log logger.Logger, jwtSecret string, jwtExpHours int) *Service {
	return &Service{
		db:          db,
		blacklist:   blacklist,
		auditor:     auditor,
		emailer:     emailer,
		metrics:     m,
		log:         log,
		jwtSecret:   jwtSecret,
		jwtExpHours: jwtExpHours,
	}
}

// Login authenticates a profile and returns a signed token. Failed attempts
// get the same error regardless of cause.
func (s *Service) Login(ctx context.Context, req models.LoginRequest, ip, userAgent string) (*models.LoginResponse, error) {
	var p domain.Profile
	err := s.db.DB.WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.countLogin("failed")
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	if !auth.CheckPassword(p.PasswordHash, req.Password) {
		s.countLogin("failed")
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	token, err := auth.GenerateJWT(p.ID, p.Email, p.Role, s.jwtSecret, s.jwtExpHours)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	s.countLogin("success")
	if s.auditor != nil {
		s.auditor.Log(ctx, audit.Entry{
			UserID:       p.ID,
			ActivityType: domain.ActivityLogin,
			EntityType:   "profile",
			EntityID:     p.ID.String(),
			Description:  "logged in",
			IPAddress:    ip,
			UserAgent:    userAgent,
		})
	}

	return &models.LoginResponse{Token: token, User: &p}, nil
}

// Logout revokes the token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, token string, claims *auth.Claims, ip, userAgent string) error {
	if s.blacklist != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.blacklist.Revoke(ctx, token, ttl); err != nil {
			return domain.NewInternalError(err)
		}
	}

	if s.auditor != nil {
		s.auditor.Log(ctx, audit.Entry{
			UserID:       claims.UserID,
			ActivityType: domain.ActivityLogout,
			EntityType:   "profile",
			EntityID:     claims.UserID.String(),
			Description:  "logged out",
			IPAddress:    ip,
			UserAgent:    userAgent,
		})
	}
	return nil
}

// Register creates a profile. Admin-only at the handler level. A welcome
// email goes out in the background.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*domain.Profile, error) {
	if !req.Role.Valid() {
		return nil, domain.NewValidationError("unknown role")
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.DB.WithContext(ctx).Model(&domain.Profile{}).Where("email = ?", emailAddr).Count(&count).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	if count > 0 {
		return nil, domain.NewConflictError("email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	p := &domain.Profile{
		Email:        emailAddr,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.db.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	if s.emailer != nil {
		go func(addr, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.emailer.SendWelcome(ctx, addr, name); err != nil {
				s.log.Error("welcome email failed", "email", addr, "error", err)
			}
		}(p.Email, p.FullName)
	}

	return p, nil
}

// List returns active profiles, newest first.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]domain.Profile, error) {
	q := s.db.DB.WithContext(ctx).Model(&domain.Profile{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Profile
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

// Get returns one profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.db.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("profile")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &p, nil
}

// Update patches name, role or active flag.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*domain.Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, domain.NewValidationError("unknown role")
		}
		p.Role = *req.Role
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.db.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	return p, nil
}

// Deactivate disables a profile. Profiles are never deleted so activity
// history keeps its author.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
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

func (s *Service) countLogin(status string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues(status).Inc()
	}
}
