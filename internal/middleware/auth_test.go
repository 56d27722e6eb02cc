package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/token"
)

func newAuthRig(t *testing.T) (*gin.Engine, *token.Store, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AccessToken{}))

	tokens := token.NewStore(db)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		actor := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": string(actor.Role)})
	})
	r.GET("/admin", AuthMiddleware(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/verified", AuthMiddleware(tokens), RequireVerifiedEmail(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r, tokens, db
}

func seedAuthUser(t *testing.T, db *gorm.DB, role string, verified bool) *models.User {
	t.Helper()

	u := &models.User{
		Username:     role + "1",
		FirstName:    "Test",
		LastName:     "User",
		Email:        role + "1@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if verified {
		now := time.Now()
		u.EmailVerifiedAt = &now
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingAndMalformedHeader(t *testing.T) {
	r, _, _ := newAuthRig(t)

	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")
}

func TestAuthMiddleware_TokenErrors(t *testing.T) {
	r, tokens, db := newAuthRig(t)
	user := seedAuthUser(t, db, "client", true)

	w := doGet(r, "/me", "not-hex-at-all")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_format")

	bearer, err := tokens.Issue(t.Context(), user, "api", time.Hour)
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(t.Context(), bearer))

	w = doGet(r, "/me", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")

	bearer, err = tokens.Issue(t.Context(), user, "api", time.Hour)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.AccessToken{}).
		Where("token_hash = ?", bearer).
		Update("expires_at", past).Error)

	w = doGet(r, "/me", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_expired")
}

func TestAuthMiddleware_ResolvesActor(t *testing.T) {
	r, tokens, db := newAuthRig(t)
	user := seedAuthUser(t, db, string(identity.RoleAesthetician), true)

	bearer, err := tokens.Issue(t.Context(), user, "api", time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/me", bearer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"aesthetician"`)
}

func TestRequireAdmin(t *testing.T) {
	r, tokens, db := newAuthRig(t)

	client := seedAuthUser(t, db, "client", true)
	bearer, err := tokens.Issue(t.Context(), client, "api", time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/admin", bearer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin_only")

	admin := seedAuthUser(t, db, "admin", true)
	bearer, err = tokens.Issue(t.Context(), admin, "api", time.Hour)
	require.NoError(t, err)

	w = doGet(r, "/admin", bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireVerifiedEmail(t *testing.T) {
	r, tokens, db := newAuthRig(t)

	unverified := seedAuthUser(t, db, "client", false)
	bearer, err := tokens.Issue(t.Context(), unverified, "api", time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/verified", bearer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "email_not_verified")

	verified := seedAuthUser(t, db, "aesthetician", true)
	bearer, err = tokens.Issue(t.Context(), verified, "api", time.Hour)
	require.NoError(t, err)

	w = doGet(r, "/verified", bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
