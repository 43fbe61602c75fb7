package leadnote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, db *database.Client) (*domain.AutoLead, *domain.Profile) {
	t.Helper()

	product := &domain.Product{Name: "P", Keywords: domain.StringList{"k"}, IsActive: true}
	require.NoError(t, db.DB.Create(product).Error)
	region := &domain.Region{Name: "R", IsActive: true}
	require.NoError(t, db.DB.Create(region).Error)
	campaign := &domain.Campaign{Name: "C", ProductID: product.ID, RegionID: region.ID}
	require.NoError(t, db.DB.Create(campaign).Error)

	lead := &domain.AutoLead{CampaignID: campaign.ID, CompanyName: "Acme", Status: domain.LeadStatusGenerated}
	require.NoError(t, db.DB.Create(lead).Error)

	user := &domain.Profile{Email: "rev@x.com", FullName: "Rev", PasswordHash: "h", Role: domain.RoleReviewer, IsActive: true}
	require.NoError(t, db.DB.Create(user).Error)

	return lead, user
}

func TestCreateAndListForLead(t *testing.T) {
	db := database.NewTestClient(t)
	svc := New(db)
	ctx := context.Background()

	lead, user := seed(t, db)

	n, err := svc.Create(ctx, models.CreateNoteRequest{
		LeadID:   lead.ID,
		LeadType: domain.LeadTypeAuto,
		Note:     "Called, asked to follow up next week",
	}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, n.CreatedBy)

	notes, err := svc.ListForLead(ctx, lead.ID, domain.LeadTypeAuto)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].User)
	assert.Equal(t, "Rev", notes[0].User.FullName)

	// Same id under the other lead type is a different lead
	notes, err = svc.ListForLead(ctx, lead.ID, domain.LeadTypeFinal)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCreateUnknownLead(t *testing.T) {
	db := database.NewTestClient(t)
	svc := New(db)
	_, user := seed(t, db)

	_, err := svc.Create(context.Background(), models.CreateNoteRequest{
		LeadID:   uuid.New(),
		LeadType: domain.LeadTypeFinal,
		Note:     "orphan",
	}, user.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	db := database.NewTestClient(t)
	svc := New(db)
	ctx := context.Background()

	lead, user := seed(t, db)
	n, err := svc.Create(ctx, models.CreateNoteRequest{
		LeadID: lead.ID, LeadType: domain.LeadTypeAuto, Note: "x",
	}, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.ID))
	err = svc.Delete(ctx, n.ID)
	assert.True(t, domain.IsNotFound(err))
}
