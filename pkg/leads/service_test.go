package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Service, *database.Client, *domain.Campaign) {
	db := database.NewTestClient(t)
	svc := New(db, nil, nil, logger.New("error"))

	product := &domain.Product{Name: "P", Keywords: domain.StringList{"k"}, IsActive: true}
	require.NoError(t, db.DB.Create(product).Error)
	region := &domain.Region{Name: "R", IsActive: true}
	require.NoError(t, db.DB.Create(region).Error)

	campaign := &domain.Campaign{
		Name:      "C",
		ProductID: product.ID,
		RegionID:  region.ID,
		Keywords:  domain.StringList{"k"},
		Status:    domain.CampaignStatusActive,
	}
	require.NoError(t, db.DB.Create(campaign).Error)

	return svc, db, campaign
}

func seedLead(t *testing.T, db *database.Client, campaignID uuid.UUID, company, email, industry string, status domain.LeadStatus) *domain.AutoLead {
	t.Helper()
	l := &domain.AutoLead{
		CampaignID:     campaignID,
		CompanyName:    company,
		Email:          email,
		Industry:       industry,
		Status:         status,
		RelevanceScore: 0.75,
		Source:         "test",
	}
	require.NoError(t, db.DB.Create(l).Error)
	return l
}

func TestListFilters(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	seedLead(t, db, c.ID, "Acme Robotics", "sales@acme.com", "Robotics", domain.LeadStatusGenerated)
	seedLead(t, db, c.ID, "Beta Foods", "info@betafoods.com", "Food", domain.LeadStatusReviewing)
	seedLead(t, db, c.ID, "Gamma Steel", "hello@gammasteel.com", "Manufacturing", domain.LeadStatusRejected)

	// Empty status set: no constraint
	resp, err := svc.List(ctx, models.LeadFilters{CampaignID: &c.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Leads, 3)
	assert.EqualValues(t, 3, resp.Pagination.Total)

	// Status membership
	resp, err = svc.List(ctx, models.LeadFilters{
		Statuses: []domain.LeadStatus{domain.LeadStatusGenerated, domain.LeadStatusReviewing},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Leads, 2)

	// Case-insensitive search across company/email/industry
	resp, err = svc.List(ctx, models.LeadFilters{Search: "ACME"})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "Acme Robotics", resp.Leads[0].CompanyName)

	resp, err = svc.List(ctx, models.LeadFilters{Search: "manufact"})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "Gamma Steel", resp.Leads[0].CompanyName)

	resp, err = svc.List(ctx, models.LeadFilters{Search: "betafoods.com"})
	require.NoError(t, err)
	assert.Len(t, resp.Leads, 1)
}

func TestListPreloadsCampaign(t *testing.T) {
	svc, db, c := setup(t)

	seedLead(t, db, c.ID, "Acme", "", "", domain.LeadStatusGenerated)

	resp, err := svc.List(context.Background(), models.LeadFilters{})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	require.NotNil(t, resp.Leads[0].Campaign)
	assert.Equal(t, c.ID, resp.Leads[0].Campaign.ID)
	require.NotNil(t, resp.Leads[0].Campaign.Product)
}

func TestPromoteEmptySetIsNoop(t *testing.T) {
	svc, db, _ := setup(t)

	created, err := svc.Promote(context.Background(), nil, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, created)

	var count int64
	require.NoError(t, db.DB.Model(&domain.FinalLead{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPromoteCopiesFields(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	src := seedLead(t, db, c.ID, "Copy Me Inc", "copy@me.com", "Software", domain.LeadStatusReviewing)
	src.Website = "https://copy.me"
	src.KeywordsMatched = domain.StringList{"k"}
	require.NoError(t, db.DB.Save(src).Error)

	approver := uuid.New()
	created, err := svc.Promote(ctx, []uuid.UUID{src.ID}, approver)
	require.NoError(t, err)
	require.Len(t, created, 1)

	fl := created[0]
	require.NotNil(t, fl.AutoLeadID)
	assert.Equal(t, src.ID, *fl.AutoLeadID)
	assert.Equal(t, "Copy Me Inc", fl.CompanyName)
	assert.Equal(t, "copy@me.com", fl.Email)
	assert.Equal(t, "https://copy.me", fl.Website)
	assert.Equal(t, domain.StringList{"k"}, fl.KeywordsMatched)
	assert.Equal(t, 0.75, fl.RelevanceScore)
	assert.Equal(t, domain.LeadStatusApproved, fl.Status)
	assert.Equal(t, domain.PriorityMedium, fl.Priority)
	assert.Equal(t, approver, fl.ApprovedBy)
	assert.False(t, fl.ApprovedAt.IsZero())

	// Source marked approved and selected
	got, err := svc.Get(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusApproved, got.Status)
	assert.True(t, got.IsSelected)
}

func TestPromoteCountEquality(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 4)
	for i := 0; i < 4; i++ {
		l := seedLead(t, db, c.ID, "Batch", "", "", domain.LeadStatusGenerated)
		ids = append(ids, l.ID)
	}

	created, err := svc.Promote(ctx, ids, uuid.New())
	require.NoError(t, err)
	assert.Len(t, created, 4)

	var count int64
	require.NoError(t, db.DB.Model(&domain.FinalLead{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestPromoteSkipsUnknownLeads(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	known := seedLead(t, db, c.ID, "Known", "", "", domain.LeadStatusGenerated)

	created, err := svc.Promote(ctx, []uuid.UUID{known.ID, uuid.New()}, uuid.New())
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.NotNil(t, created[0].AutoLeadID)
	assert.Equal(t, known.ID, *created[0].AutoLeadID)

	var count int64
	require.NoError(t, db.DB.Model(&domain.FinalLead{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := svc.Get(ctx, known.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusApproved, got.Status)
}

func TestPromoteTwiceConflicts(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	src := seedLead(t, db, c.ID, "Once", "", "", domain.LeadStatusGenerated)

	_, err := svc.Promote(ctx, []uuid.UUID{src.ID}, uuid.New())
	require.NoError(t, err)

	_, err = svc.Promote(ctx, []uuid.UUID{src.ID}, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	var count int64
	require.NoError(t, db.DB.Model(&domain.FinalLead{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateSelection(t *testing.T) {
	svc, db, c := setup(t)
	ctx := context.Background()

	l := seedLead(t, db, c.ID, "Sel", "", "", domain.LeadStatusGenerated)

	sel := true
	reviewing := domain.LeadStatusReviewing
	got, err := svc.Update(ctx, l.ID, models.UpdateAutoLeadRequest{Status: &reviewing, IsSelected: &sel})
	require.NoError(t, err)
	assert.True(t, got.IsSelected)
	assert.Equal(t, domain.LeadStatusReviewing, got.Status)
}
