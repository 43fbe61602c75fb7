package finalleads

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignment struct {
	toAddress string
	toName    string
	company   string
}

// fakeNotifier records assignment notifications on a channel.
type fakeNotifier struct {
	sent chan assignment
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan assignment, 4)}
}

func (f *fakeNotifier) SendLeadAssigned(_ context.Context, toAddress, toName string, lead *domain.FinalLead) error {
	f.sent <- assignment{toAddress: toAddress, toName: toName, company: lead.CompanyName}
	return nil
}

func (f *fakeNotifier) wait(t *testing.T) assignment {
	t.Helper()
	select {
	case a := <-f.sent:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("no assignment notification sent")
		return assignment{}
	}
}

func (f *fakeNotifier) quiet(t *testing.T) {
	t.Helper()
	select {
	case a := <-f.sent:
		t.Fatalf("unexpected notification to %s", a.toAddress)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc := New(database.NewTestClient(t), nil, logger.New("error"))

	l, err := svc.Create(context.Background(), models.CreateFinalLeadRequest{
		CompanyName: "Manual Entry Co",
		Phone:       "(212) 555-0175",
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "+12125550175", l.Phone)
	assert.Nil(t, l.AutoLeadID)
	assert.Equal(t, domain.LeadStatusApproved, l.Status)
	assert.Equal(t, domain.PriorityMedium, l.Priority)
	assert.False(t, l.ApprovedAt.IsZero())
}

func TestCreateRejectsBadPhone(t *testing.T) {
	svc := New(database.NewTestClient(t), nil, logger.New("error"))

	_, err := svc.Create(context.Background(), models.CreateFinalLeadRequest{
		CompanyName: "Bad Phone",
		Phone:       "12",
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestListFilters(t *testing.T) {
	db := database.NewTestClient(t)
	svc := New(db, nil, logger.New("error"))
	ctx := context.Background()

	user := &domain.Profile{Email: "bdm@x.com", FullName: "B", PasswordHash: "h", Role: domain.RoleBDM, IsActive: true}
	require.NoError(t, db.DB.Create(user).Error)

	high, err := svc.Create(ctx, models.CreateFinalLeadRequest{
		CompanyName: "High Steel", Industry: "Manufacturing", Priority: domain.PriorityHigh,
	}, uuid.New())
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.CreateFinalLeadRequest{
		CompanyName: "Low Foods", Industry: "Food", Priority: domain.PriorityLow,
	}, uuid.New())
	require.NoError(t, err)

	_, err = svc.Update(ctx, high.ID, models.UpdateFinalLeadRequest{AssignedTo: &user.ID})
	require.NoError(t, err)

	p := domain.PriorityHigh
	resp, err := svc.List(ctx, models.FinalLeadFilters{Priority: &p})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "High Steel", resp.Leads[0].CompanyName)

	resp, err = svc.List(ctx, models.FinalLeadFilters{AssignedTo: &user.ID})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	require.NotNil(t, resp.Leads[0].AssignedUser)
	assert.Equal(t, "bdm@x.com", resp.Leads[0].AssignedUser.Email)

	resp, err = svc.List(ctx, models.FinalLeadFilters{Search: "manufact"})
	require.NoError(t, err)
	assert.Len(t, resp.Leads, 1)
}

func TestUpdateValidation(t *testing.T) {
	svc := New(database.NewTestClient(t), nil, logger.New("error"))
	ctx := context.Background()

	l, err := svc.Create(ctx, models.CreateFinalLeadRequest{CompanyName: "X"}, uuid.New())
	require.NoError(t, err)

	bad := 120.0
	_, err = svc.Update(ctx, l.ID, models.UpdateFinalLeadRequest{ConversionProbability: &bad})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))

	_, err = svc.Update(ctx, l.ID, models.UpdateFinalLeadRequest{AssignedTo: ptr(uuid.New())})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteIsHard(t *testing.T) {
	svc := New(database.NewTestClient(t), nil, logger.New("error"))
	ctx := context.Background()

	l, err := svc.Create(ctx, models.CreateFinalLeadRequest{CompanyName: "Gone"}, uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, l.ID))

	_, err = svc.Get(ctx, l.ID)
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, l.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateAssignmentNotifies(t *testing.T) {
	db := database.NewTestClient(t)
	notifier := newFakeNotifier()
	svc := New(db, notifier, logger.New("error"))
	ctx := context.Background()

	bdm := &domain.Profile{Email: "bdm@x.com", FullName: "Bea", PasswordHash: "h", Role: domain.RoleBDM, IsActive: true}
	require.NoError(t, db.DB.Create(bdm).Error)

	l, err := svc.Create(ctx, models.CreateFinalLeadRequest{CompanyName: "Assign Co"}, uuid.New())
	require.NoError(t, err)

	got, err := svc.Update(ctx, l.ID, models.UpdateFinalLeadRequest{AssignedTo: &bdm.ID})
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)

	sent := notifier.wait(t)
	assert.Equal(t, "bdm@x.com", sent.toAddress)
	assert.Equal(t, "Bea", sent.toName)
	assert.Equal(t, "Assign Co", sent.company)

	// Re-assigning the same profile does not notify again
	_, err = svc.Update(ctx, l.ID, models.UpdateFinalLeadRequest{AssignedTo: &bdm.ID})
	require.NoError(t, err)
	notifier.quiet(t)

	// Updates that do not touch assignment stay silent
	p := domain.PriorityHigh
	_, err = svc.Update(ctx, l.ID, models.UpdateFinalLeadRequest{Priority: &p})
	require.NoError(t, err)
	notifier.quiet(t)
}

func ptr[T any](v T) *T { return &v }
