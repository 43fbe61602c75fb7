package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/leadgen"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Service, *database.Client, *domain.Product, *domain.Region) {
	db := database.NewTestClient(t)
	svc := New(db, leadgen.New(nil, 7), nil, nil, logger.New("error"), 3)

	product := &domain.Product{
		Name:     "Fleet Telematics",
		Keywords: domain.StringList{"logistics", "fleet"},
		IsActive: true,
	}
	require.NoError(t, db.DB.Create(product).Error)

	region := &domain.Region{Name: "Texas", Country: "US", State: "TX", IsActive: true}
	require.NoError(t, db.DB.Create(region).Error)

	return svc, db, product, region
}

func TestCreateSnapshotsKeywords(t *testing.T) {
	svc, db, product, region := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:      "Q3 Texas Push",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.StringList{"logistics", "fleet"}, c.Keywords)
	assert.Equal(t, domain.CampaignStatusScheduled, c.Status)
	require.NotNil(t, c.Product)
	assert.Equal(t, "Fleet Telematics", c.Product.Name)

	// Editing the product afterwards must not touch the campaign snapshot
	product.Keywords = domain.StringList{"changed"}
	require.NoError(t, db.DB.Save(product).Error)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StringList{"logistics", "fleet"}, got.Keywords)
}

func TestCreateRejectsInactiveProduct(t *testing.T) {
	svc, db, product, region := setup(t)

	product.IsActive = false
	require.NoError(t, db.DB.Save(product).Error)

	_, err := svc.Create(context.Background(), models.CreateCampaignRequest{
		Name:      "Dead Product",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestCreateRecurringNeedsPattern(t *testing.T) {
	svc, _, product, region := setup(t)

	_, err := svc.Create(context.Background(), models.CreateCampaignRequest{
		Name:        "Recurring Without Pattern",
		ProductID:   product.ID,
		RegionID:    region.ID,
		IsRecurring: true,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestUpdateResnapshotsOnProductChange(t *testing.T) {
	svc, db, product, region := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:      "Repoint",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.NoError(t, err)

	other := &domain.Product{
		Name:     "Warehouse Robots",
		Keywords: domain.StringList{"robotics", "warehouse"},
		IsActive: true,
	}
	require.NoError(t, db.DB.Create(other).Error)

	updated, err := svc.Update(ctx, c.ID, models.UpdateCampaignRequest{ProductID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StringList{"robotics", "warehouse"}, updated.Keywords)
}

func TestGenerateLeads(t *testing.T) {
	svc, db, product, region := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:      "Gen",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.NoError(t, err)

	resp, err := svc.GenerateLeads(ctx, c.ID, uuid.New())
	require.NoError(t, err)
	assert.Len(t, resp.Leads, 3)
	assert.Equal(t, 3, resp.Campaign.LeadsGenerated)
	assert.Equal(t, domain.CampaignStatusActive, resp.Campaign.Status)

	var count int64
	require.NoError(t, db.DB.Model(&domain.AutoLead{}).Where("campaign_id = ?", c.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// Second run accumulates
	resp, err = svc.GenerateLeads(ctx, c.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Campaign.LeadsGenerated)
}

func TestGenerateLeadsPausedCampaign(t *testing.T) {
	svc, _, product, region := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:      "Paused",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.NoError(t, err)

	paused := domain.CampaignStatusPaused
	_, err = svc.Update(ctx, c.ID, models.UpdateCampaignRequest{Status: &paused})
	require.NoError(t, err)

	_, err = svc.GenerateLeads(ctx, c.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestDeleteRemovesLeads(t *testing.T) {
	svc, db, product, region := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:      "Doomed",
		ProductID: product.ID,
		RegionID:  region.ID,
	}, uuid.New())
	require.NoError(t, err)

	_, err = svc.GenerateLeads(ctx, c.ID, uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))

	var count int64
	require.NoError(t, db.DB.Model(&domain.AutoLead{}).Where("campaign_id = ?", c.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.Get(ctx, c.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestDueRecurringAndAdvance(t *testing.T) {
	svc, _, product, region := setup(t)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	c, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name:              "Weekly",
		ProductID:         product.ID,
		RegionID:          region.ID,
		ScheduledAt:       &past,
		IsRecurring:       true,
		RecurrencePattern: domain.RecurrenceWeekly,
	}, uuid.New())
	require.NoError(t, err)

	due, err := svc.DueRecurring(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, c.ID, due[0].ID)

	require.NoError(t, svc.AdvanceSchedule(ctx, &due[0], time.Now()))
	assert.True(t, due[0].ScheduledAt.After(time.Now()))

	due, err = svc.DueRecurring(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)
}
