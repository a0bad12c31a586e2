package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket/internal/domain"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &domain.User{Username: "  alice ", Password: "hash"}
	require.NoError(t, f.users.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)

	byID, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.Password)

	_, err = f.users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err := f.users.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_UsernameIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")

	err := f.users.Create(ctx, &domain.User{Username: "alice", Password: "other"})
	require.Error(t, err)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "users.create", storageErr.Op)
}
