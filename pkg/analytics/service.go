package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jordanlanch/leadcrm/pkg/cache"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey    = "dashboard:stats"
	dashboardCachePrefix = "dashboard:*"
	cacheLabel           = "dashboard"
	topLimit             = 5
	monthlyWindow        = 6
)

// Service computes dashboard aggregates.
type Service struct {
	db       *database.Client
	cache    *cache.Client
	metrics  *metrics.Metrics
	log      logger.Logger
	cacheTTL time.Duration
}

func New(db *database.Client, c *cache.Client, m *metrics.Metrics, log logger.Logger, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &Service{db: db, cache: c, metrics: m, log: log, cacheTTL: cacheTTL}
}

// DashboardStats returns the dashboard aggregate. The count queries run
// concurrently and the call fails as a whole if any of them fails. Results
// are cached in Redis.
func (s *Service) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats := &models.DashboardStats{}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	var approvedAuto int64

	wg.Add(5)
	go func() {
		defer wg.Done()
		if err := s.db.DB.WithContext(ctx).Model(&domain.AutoLead{}).Count(&stats.TotalLeads).Error; err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.db.DB.WithContext(ctx).Model(&domain.FinalLead{}).Count(&stats.TotalFinalLeads).Error; err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		err := s.db.DB.WithContext(ctx).Model(&domain.Campaign{}).
			Where("status = ?", domain.CampaignStatusActive).
			Count(&stats.ActiveCampaigns).Error
		if err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		err := s.db.DB.WithContext(ctx).Model(&domain.AutoLead{}).
			Where("status = ?", domain.LeadStatusApproved).
			Count(&approvedAuto).Error
		if err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		err := s.db.DB.WithContext(ctx).Model(&domain.ActivityLog{}).
			Preload("User").
			Order("created_at DESC").
			Limit(topLimit).
			Find(&stats.RecentActivity).Error
		if err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, domain.NewInternalError(firstErr)
	}

	if stats.TotalLeads > 0 {
		stats.ConversionRate = float64(approvedAuto) / float64(stats.TotalLeads) * 100
	}

	monthly, err := s.monthlyStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.MonthlyStats = monthly

	topRegions, err := s.topRegions(ctx)
	if err != nil {
		return nil, err
	}
	stats.TopRegions = topRegions

	topProducts, err := s.topProducts(ctx)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = topProducts

	s.toCache(ctx, stats)
	return stats, nil
}

// Invalidate drops all cached dashboard entries, forcing a recompute on
// next read.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, dashboardCachePrefix); err != nil {
		s.log.Warn("failed to invalidate dashboard cache", "error", err)
	}
}

// monthlyStats buckets lead creation and approval by calendar month over the
// trailing window, oldest first. Months with no activity still appear.
func (s *Service) monthlyStats(ctx context.Context) ([]models.MonthlyStat, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthlyWindow - 1), 0)

	var leads []domain.AutoLead
	err := s.db.DB.WithContext(ctx).
		Select("created_at", "status").
		Where("created_at >= ?", start).
		Find(&leads).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	byMonth := make(map[string]*models.MonthlyStat, monthlyWindow)
	out := make([]models.MonthlyStat, monthlyWindow)
	for i := 0; i < monthlyWindow; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		out[i] = models.MonthlyStat{Month: month}
		byMonth[month] = &out[i]
	}

	for _, l := range leads {
		stat, ok := byMonth[l.CreatedAt.Format("2006-01")]
		if !ok {
			continue
		}
		stat.Generated++
		if l.Status == domain.LeadStatusApproved {
			stat.Approved++
		}
	}
	return out, nil
}

func (s *Service) topRegions(ctx context.Context) ([]models.RegionStat, error) {
	var out []models.RegionStat
	err := s.db.DB.WithContext(ctx).Model(&domain.AutoLead{}).
		Select("regions.id AS region_id, regions.name AS region_name, COUNT(auto_leads.id) AS lead_count").
		Joins("JOIN campaigns ON campaigns.id = auto_leads.campaign_id").
		Joins("JOIN regions ON regions.id = campaigns.region_id").
		Group("regions.id, regions.name").
		Order("lead_count DESC").
		Limit(topLimit).
		Scan(&out).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

func (s *Service) topProducts(ctx context.Context) ([]models.ProductStat, error) {
	var out []models.ProductStat
	err := s.db.DB.WithContext(ctx).Model(&domain.AutoLead{}).
		Select("products.id AS product_id, products.name AS product_name, COUNT(auto_leads.id) AS lead_count").
		Joins("JOIN campaigns ON campaigns.id = auto_leads.campaign_id").
		Joins("JOIN products ON products.id = campaigns.product_id").
		Group("products.id, products.name").
		Order("lead_count DESC").
		Limit(topLimit).
		Scan(&out).Error
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return out, nil
}

func (s *Service) fromCache(ctx context.Context) *models.DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey)
	if err == redis.Nil {
		s.miss()
		return nil
	}
	if err != nil {
		s.log.Warn("dashboard cache read failed", "error", err)
		s.miss()
		return nil
	}

	var stats models.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		s.log.Warn("dashboard cache decode failed", "error", err)
		s.miss()
		return nil
	}
	s.hit()
	return &stats
}

func (s *Service) hit() {
	if s.metrics != nil {
		s.metrics.CacheHits.WithLabelValues(cacheLabel).Inc()
	}
}

func (s *Service) miss() {
	if s.metrics != nil {
		s.metrics.CacheMisses.WithLabelValues(cacheLabel).Inc()
	}
}

func (s *Service) toCache(ctx context.Context, stats *models.DashboardStats) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, string(b), s.cacheTTL); err != nil {
		s.log.Warn("dashboard cache write failed", "error", err)
	}
}
