package products

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

func newService(t *testing.T) *Service {
	return New(database.NewTestClient(t))
}

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, models.CreateProductRequest{
		Name:        "Industrial Sensors",
		Description: "IoT sensors for factories",
		Keywords:    []string{"iot", "sensors", "manufacturing"},
	}, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.True(t, p.IsActive)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Industrial Sensors", got.Name)
	assert.Equal(t, domain.StringList{"iot", "sensors", "manufacturing"}, got.Keywords)
}

func TestCreateRequiresKeywords(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), models.CreateProductRequest{
		Name: "No Keywords",
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestGetNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdatePartial(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, models.CreateProductRequest{
		Name:     "Original",
		Keywords: []string{"a"},
	}, uuid.New())
	require.NoError(t, err)

	newName := "Renamed"
	updated, err := svc.Update(ctx, p.ID, models.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, domain.StringList{"a"}, updated.Keywords, "unset fields are untouched")

	empty := []string{}
	_, err = svc.Update(ctx, p.ID, models.UpdateProductRequest{Keywords: &empty})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}

func TestDeleteIsSoft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, models.CreateProductRequest{
		Name:     "Doomed",
		Keywords: []string{"x"},
	}, uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	// Still fetchable directly, just inactive
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
