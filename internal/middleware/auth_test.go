package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/auth"
)

func newTokenService() *auth.TokenService {
	return auth.NewTokenService("access-secret", 15*time.Minute, "refresh-secret", time.Hour)
}

func newTestServer(tokens *auth.TokenService) *echo.Echo {
	e := echo.New()

	authenticated := Authenticate(tokens)
	e.GET("/me", func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, claims)
	}, authenticated)
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, authenticated, RequireRole(auth.RoleAdmin))
	e.GET("/any", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, authenticated, RequireRole(auth.RoleUser, auth.RoleAdmin))
	// Misconfigured on purpose: authorize without authenticate.
	e.GET("/orphan", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RequireRole(auth.RoleAdmin))

	return e
}

func doRequest(e *echo.Echo, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	e := newTestServer(newTokenService())

	rec := doRequest(e, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	e := newTestServer(newTokenService())

	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		rec := doRequest(e, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	e := newTestServer(newTokenService())

	rec := doRequest(e, "/me", "Bearer not-a-valid-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	tokens := newTokenService()
	expired := auth.NewTokenService("access-secret", -time.Minute, "refresh-secret", time.Hour)
	e := newTestServer(tokens)

	token, err := expired.IssueAccessToken(1, "bob", "bob@example.com", auth.RoleUser)
	require.NoError(t, err)

	rec := doRequest(e, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(tokens)

	// A refresh token must not authorize requests.
	refreshToken, err := tokens.IssueRefreshToken(1, "bob", "bob@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	rec := doRequest(e, "/me", "Bearer "+refreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_StripsBearerScheme(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(tokens)

	token, err := tokens.IssueAccessToken(2, "alice", "alice@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	// The scheme must be cut before verification; only the raw JWT parses.
	rec := doRequest(e, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_BindsClaims(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(tokens)

	token, err := tokens.IssueAccessToken(7, "carol", "carol@example.com", auth.RoleUser)
	require.NoError(t, err)

	rec := doRequest(e, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carol@example.com")
}

func TestRequireRole(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(tokens)

	userToken, err := tokens.IssueAccessToken(1, "bob", "bob@example.com", auth.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.IssueAccessToken(2, "alice", "alice@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{name: "user denied on admin route", path: "/admin", token: userToken, wantCode: http.StatusForbidden},
		{name: "admin allowed on admin route", path: "/admin", token: adminToken, wantCode: http.StatusOK},
		{name: "user allowed on any-role route", path: "/any", token: userToken, wantCode: http.StatusOK},
		{name: "admin allowed on any-role route", path: "/any", token: adminToken, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.path, "Bearer "+tt.token)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(tokens)

	adminToken, err := tokens.IssueAccessToken(2, "alice", "alice@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	// Claims never reach the context without the Authenticate stage, so the
	// role check rejects with 401 even for a valid admin token.
	rec := doRequest(e, "/orphan", "Bearer "+adminToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
