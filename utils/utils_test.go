package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "granit-noir-zimbabwe", GenerateSlug("  Granit Noir (Zimbabwé) "))
	assert.Equal(t, "general", GenerateSlug("Général"))
	assert.Equal(t, "", GenerateSlug("!!!"))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := GenerateSessionToken("abc", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.UserID)
	assert.Equal(t, "admin", claims.Username)

	_, err = ValidateToken(tok, "other")
	assert.Error(t, err)

	expired, err := GenerateSessionToken("abc", "admin", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "s3cret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("00000000")
	require.NoError(t, err)
	assert.NotEqual(t, "00000000", hash)
	assert.NoError(t, CheckPassword(hash, "00000000"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestSessionCookieAttributes(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetSessionCookie(c, "tok", CookieOptions{Secure: true, TTL: 30 * 24 * time.Hour})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 30*24*3600, ck.MaxAge)
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query   string
		enabled bool
		page    int
		limit   int
	}{
		{"", false, 1, DefaultPageLimit},
		{"page=2", true, 2, DefaultPageLimit},
		{"limit=500", true, 1, MaxPageLimit},
		{"page=-3&limit=abc", true, 1, DefaultPageLimit},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		p := ParsePagination(c)
		assert.Equal(t, tc.enabled, p.Enabled, tc.query)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.limit, p.Limit, tc.query)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807&limit=100", nil)
	huge := ParsePagination(c)
	assert.Equal(t, math.MaxInt/100, huge.Page)
	assert.GreaterOrEqual(t, huge.Skip(), int64(0))

	page := NewPage([]int(nil), Pagination{Enabled: true, Page: 1, Limit: 20}, 41)
	assert.Equal(t, 3, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{NewValidationError("name is required"), http.StatusBadRequest, "name is required"},
		{OrNotFound(database.ErrNotFound, "project"), http.StatusNotFound, "project not found"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{fmt.Errorf("insert: %w", database.ErrDuplicateKey), http.StatusConflict, "already exists"},
		{&UpstreamError{Service: "upload", Err: errors.New("bucket gone")}, http.StatusBadGateway, "upload unavailable"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		RespondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tc.msg), w.Body.String())
	}
}

func TestBindJSONMessages(t *testing.T) {
	RegisterJSONTagNames()
	type body struct {
		Email  string `json:"email" binding:"required,email"`
		Rating int    `json:"rating" binding:"required,min=1,max=5"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","rating":9}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var b body
	assert.False(t, BindJSON(c, &b))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email")
	assert.Contains(t, w.Body.String(), "rating must be at most 5")
}

func TestSyncAdminUser(t *testing.T) {
	ctx := context.Background()
	users := database.NewMemoryRepository[models.User]("username")

	created, err := SyncAdminUser(ctx, users, "admin", "first-pass", true)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SyncAdminUser(ctx, users, "admin", "second-pass", false)
	require.NoError(t, err)
	assert.False(t, created)
	u, err := users.FindOne(ctx, bson.M{"username": "admin"})
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(u.PasswordHash, "first-pass"), "insert-only mode keeps the stored hash")

	_, err = SyncAdminUser(ctx, users, "admin", "second-pass", true)
	require.NoError(t, err)
	u, err = users.FindOne(ctx, bson.M{"username": "admin"})
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(u.PasswordHash, "second-pass"))

	n, _ := users.Count(ctx, nil)
	assert.Equal(t, int64(1), n)

	_, err = SyncAdminUser(ctx, users, "", "x", true)
	assert.Error(t, err)
}

func TestSyncAdminUserAfterRename(t *testing.T) {
	ctx := context.Background()
	users := database.NewMemoryRepository[models.User]("username")

	_, err := SyncAdminUser(ctx, users, "admin", "first-pass", true)
	require.NoError(t, err)
	u, err := users.FindOne(ctx, bson.M{"username": "admin"})
	require.NoError(t, err)
	_, err = users.UpdateByID(ctx, u.ID, bson.M{"username": "patron"})
	require.NoError(t, err)

	created, err := SyncAdminUser(ctx, users, "admin", "second-pass", true)
	require.NoError(t, err)
	assert.False(t, created)

	n, _ := users.Count(ctx, nil)
	assert.Equal(t, int64(1), n, "a renamed admin is not duplicated")
	u, err = users.FindOne(ctx, bson.M{"username": "patron"})
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(u.PasswordHash, "second-pass"))
}
