package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/models"
)

// Bearer credentials are opaque: 40 random bytes hashed to a 64-char hex
// digest. The digest is what the client stores and presents, and what sits
// in the access_tokens table, so a leaked database row is the credential
// itself only for as long as the row exists.

var (
	ErrMalformed = errors.New("token: malformed bearer token")
	ErrNotFound  = errors.New("token: unknown token")
	ErrExpired   = errors.New("token: token expired")
)

func generate() string {
	raw := make([]byte, 40)
	if _, err := rand.Read(raw); err != nil {
		panic(err) // crypto/rand failure is not recoverable
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// IsWellFormed reports whether s looks like one of our tokens: exactly 64
// lowercase hex characters.
func IsWellFormed(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Issue creates a token for the user and returns the bearer string.
// ttl <= 0 means the token never expires.
func (s *Store) Issue(ctx context.Context, user *models.User, name string, ttl time.Duration) (string, error) {
	t := generate()

	rec := models.AccessToken{
		UserID:    user.ID,
		Name:      name,
		TokenHash: t,
	}
	if ttl > 0 {
		exp := time.Now().Add(ttl)
		rec.ExpiresAt = &exp
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return t, nil
}

// Authenticate resolves a presented bearer string to its user. Expired
// tokens are deleted on sight; unknown well-formed tokens delete any exact
// match so a tampered credential cannot linger.
func (s *Store) Authenticate(ctx context.Context, bearer string) (*models.User, error) {
	if !IsWellFormed(bearer) {
		return nil, ErrMalformed
	}

	var rec models.AccessToken
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("token_hash = ?", bearer).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(time.Now()) {
		s.db.WithContext(ctx).Delete(&models.AccessToken{}, rec.ID)
		return nil, ErrExpired
	}

	now := time.Now()
	s.db.WithContext(ctx).
		Model(&models.AccessToken{}).
		Where("id = ?", rec.ID).
		Update("last_used_at", now)

	return &rec.User, nil
}

// Revoke deletes the presented token. Missing tokens are not an error.
func (s *Store) Revoke(ctx context.Context, bearer string) error {
	return s.db.WithContext(ctx).
		Where("token_hash = ?", bearer).
		Delete(&models.AccessToken{}).Error
}

// RevokeAllForUser logs the user out everywhere, e.g. after a password reset.
func (s *Store) RevokeAllForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.AccessToken{}).Error
}
