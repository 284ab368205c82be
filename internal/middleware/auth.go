package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"bookshop/internal/auth"
)

// claimsContextKey is where Authenticate binds the decoded claims on the
// per-request context.
const claimsContextKey = "user"

// Authenticate extracts the Bearer token from the Authorization header,
// verifies it against the access secret and binds the decoded claims to the
// request context. Any failed stage short-circuits with 401.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		// The "Bearer " suffix is the cut-prefix echo-jwt strips before
		// handing the raw token to ParseTokenFunc.
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return tokens.VerifyAccessToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			case errors.Is(err, auth.ErrTokenMalformed),
				errors.Is(err, auth.ErrTokenSignature),
				errors.Is(err, auth.ErrTokenInvalid):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}
		},
	})
}

// RequireRole authorizes requests whose claims carry one of the given roles.
// It must be composed after Authenticate; without claims in context it
// rejects with 401.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	allowed := auth.NewRoleSet(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !allowed.Contains(claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden: insufficient role")
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims bound by Authenticate, if any.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	return claims, ok
}
