package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowbook/salon-api/internal/models"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AccessToken{}))

	u := &models.User{
		Username:     "maria",
		FirstName:    "Maria",
		LastName:     "Silva",
		Email:        "maria@example.com",
		PasswordHash: "x",
		Role:         "client",
	}
	require.NoError(t, db.Create(u).Error)

	return NewStore(db), db, u
}

func TestIsWellFormed(t *testing.T) {
	store, _, user := newTestStore(t)

	bearer, err := store.Issue(context.Background(), user, "api", 0)
	require.NoError(t, err)
	assert.True(t, IsWellFormed(bearer))

	assert.False(t, IsWellFormed(""))
	assert.False(t, IsWellFormed("short"))
	assert.False(t, IsWellFormed(bearer[:63]))
	assert.False(t, IsWellFormed(bearer+"a"))
	assert.False(t, IsWellFormed("A"+bearer[1:]), "uppercase is not ours")
	assert.False(t, IsWellFormed("z"+bearer[1:]), "not hex")
}

func TestIssueAndAuthenticate(t *testing.T) {
	store, db, user := newTestStore(t)
	ctx := context.Background()

	bearer, err := store.Issue(ctx, user, "api", time.Hour)
	require.NoError(t, err)

	// the presented string and the stored hash are one and the same
	var rec models.AccessToken
	require.NoError(t, db.Where("token_hash = ?", bearer).First(&rec).Error)
	assert.Equal(t, user.ID, rec.UserID)
	assert.Nil(t, rec.LastUsedAt)
	require.NotNil(t, rec.ExpiresAt)

	got, err := store.Authenticate(ctx, bearer)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)

	// use is stamped
	require.NoError(t, db.First(&rec, rec.ID).Error)
	assert.NotNil(t, rec.LastUsedAt)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	store, _, user := newTestStore(t)
	ctx := context.Background()

	a, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)
	b, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAuthenticate_Malformed(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Authenticate(context.Background(), "Bearer nonsense")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAuthenticate_Unknown(t *testing.T) {
	store, _, user := newTestStore(t)
	ctx := context.Background()

	bearer, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, bearer))

	_, err = store.Authenticate(ctx, bearer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_ExpiredIsDeleted(t *testing.T) {
	store, db, user := newTestStore(t)
	ctx := context.Background()

	bearer, err := store.Issue(ctx, user, "api", time.Hour)
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.AccessToken{}).
		Where("token_hash = ?", bearer).
		Update("expires_at", past).Error)

	_, err = store.Authenticate(ctx, bearer)
	assert.ErrorIs(t, err, ErrExpired)

	// the row is gone, so a retry is an unknown token
	_, err = store.Authenticate(ctx, bearer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_NoExpiry(t *testing.T) {
	store, _, user := newTestStore(t)
	ctx := context.Background()

	bearer, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)

	got, err := store.Authenticate(ctx, bearer)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRevokeAllForUser(t *testing.T) {
	store, db, user := newTestStore(t)
	ctx := context.Background()

	other := &models.User{
		Username:     "joao",
		FirstName:    "Joao",
		LastName:     "Souza",
		Email:        "joao@example.com",
		PasswordHash: "x",
		Role:         "client",
	}
	require.NoError(t, db.Create(other).Error)

	mineA, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)
	mineB, err := store.Issue(ctx, user, "api", 0)
	require.NoError(t, err)
	theirs, err := store.Issue(ctx, other, "api", 0)
	require.NoError(t, err)

	require.NoError(t, store.RevokeAllForUser(ctx, user.ID))

	_, err = store.Authenticate(ctx, mineA)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Authenticate(ctx, mineB)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Authenticate(ctx, theirs)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)
}
