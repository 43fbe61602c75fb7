package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/cache"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared across tests; promauto registers counters globally and panics on a
// second registration.
var testMetrics = metrics.New()

func setup(t *testing.T) (*Service, *database.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	db := database.NewTestClient(t)
	return New(db, cacheClient, testMetrics, logger.New("error"), time.Minute), db
}

func seed(t *testing.T, db *database.Client) {
	t.Helper()

	product := &domain.Product{Name: "Telematics", Keywords: domain.StringList{"k"}, IsActive: true}
	require.NoError(t, db.DB.Create(product).Error)
	region := &domain.Region{Name: "Texas", IsActive: true}
	require.NoError(t, db.DB.Create(region).Error)

	active := &domain.Campaign{Name: "Active", ProductID: product.ID, RegionID: region.ID, Status: domain.CampaignStatusActive}
	require.NoError(t, db.DB.Create(active).Error)
	paused := &domain.Campaign{Name: "Paused", ProductID: product.ID, RegionID: region.ID, Status: domain.CampaignStatusPaused}
	require.NoError(t, db.DB.Create(paused).Error)

	statuses := []domain.LeadStatus{
		domain.LeadStatusApproved,
		domain.LeadStatusGenerated,
		domain.LeadStatusGenerated,
		domain.LeadStatusRejected,
	}
	for _, st := range statuses {
		lead := &domain.AutoLead{CampaignID: active.ID, CompanyName: "L", Status: st}
		require.NoError(t, db.DB.Create(lead).Error)
	}

	fl := &domain.FinalLead{
		CompanyName: "Final", Status: domain.LeadStatusApproved,
		Priority: domain.PriorityMedium, ApprovedBy: product.CreatedBy, ApprovedAt: time.Now(),
	}
	require.NoError(t, db.DB.Create(fl).Error)
}

func TestDashboardStats(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalLeads)
	assert.EqualValues(t, 1, stats.TotalFinalLeads)
	assert.EqualValues(t, 1, stats.ActiveCampaigns)
	assert.InDelta(t, 25.0, stats.ConversionRate, 0.001)

	require.Len(t, stats.MonthlyStats, 6)
	current := stats.MonthlyStats[5]
	assert.Equal(t, time.Now().Format("2006-01"), current.Month)
	assert.EqualValues(t, 4, current.Generated)
	assert.EqualValues(t, 1, current.Approved)

	require.Len(t, stats.TopRegions, 1)
	assert.Equal(t, "Texas", stats.TopRegions[0].RegionName)
	assert.EqualValues(t, 4, stats.TopRegions[0].LeadCount)

	require.Len(t, stats.TopProducts, 1)
	assert.Equal(t, "Telematics", stats.TopProducts[0].ProductName)
}

func TestDashboardStatsEmpty(t *testing.T) {
	svc, _ := setup(t)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLeads)
	assert.Zero(t, stats.ConversionRate, "no division by zero on an empty database")
	assert.Len(t, stats.MonthlyStats, 6)
	assert.Empty(t, stats.TopRegions)
}

func TestDashboardStatsCached(t *testing.T) {
	svc, db := setup(t)
	seed(t, db)

	first, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	// Mutate the database; the cached copy should still be served
	require.NoError(t, db.DB.Create(&domain.AutoLead{
		CampaignID: firstCampaignID(t, db), CompanyName: "New", Status: domain.LeadStatusGenerated,
	}).Error)

	second, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.TotalLeads, second.TotalLeads)

	// After invalidation the fresh row is visible
	svc.Invalidate(context.Background())
	third, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.TotalLeads+1, third.TotalLeads)
}

func TestDashboardStatsCacheCounters(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	hits := testutil.ToFloat64(testMetrics.CacheHits.WithLabelValues("dashboard"))
	misses := testutil.ToFloat64(testMetrics.CacheMisses.WithLabelValues("dashboard"))

	// Cold cache counts a miss, the warm read right after counts a hit
	_, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	_, err = svc.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, hits+1, testutil.ToFloat64(testMetrics.CacheHits.WithLabelValues("dashboard")))
	assert.Equal(t, misses+1, testutil.ToFloat64(testMetrics.CacheMisses.WithLabelValues("dashboard")))
}

func firstCampaignID(t *testing.T, db *database.Client) uuid.UUID {
	t.Helper()
	var c domain.Campaign
	require.NoError(t, db.DB.First(&c).Error)
	return c.ID
}
