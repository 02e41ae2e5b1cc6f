package contact

import (
	"context"
	"testing"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_StatusTriage(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(testdb.Pool(t))

	c, err := repo.Create(ctx, domain.Contact{Name: "Asha", Email: "asha@example.com", Message: "Where is my order?", Status: domain.ContactNew})
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, c.ID, domain.ContactResolved))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ContactResolved, list[0].Status)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.SetStatus(ctx, c.ID, domain.ContactRead), domain.ErrNotFound)
}
