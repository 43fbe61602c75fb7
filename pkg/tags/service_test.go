package tags

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

func TestCreateListDelete(t *testing.T) {
	svc := New(database.NewTestClient(t))
	ctx := context.Background()

	for _, name := range []string{"warm", "enterprise", "callback"} {
		_, err := svc.Create(ctx, models.CreateTagRequest{Name: name, Color: "#ff0000"}, uuid.New())
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "callback", list[0].Name)
	assert.Equal(t, "enterprise", list[1].Name)
	assert.Equal(t, "warm", list[2].Name)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, list[0].ID)))
}

func TestCreateDuplicateName(t *testing.T) {
	svc := New(database.NewTestClient(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateTagRequest{Name: "Warm"}, uuid.New())
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.CreateTagRequest{Name: "warm"}, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBlankName(t *testing.T) {
	svc := New(database.NewTestClient(t))

	_, err := svc.Create(context.Background(), models.CreateTagRequest{Name: "   "}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}
