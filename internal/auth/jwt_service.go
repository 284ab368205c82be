package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Verification failures are returned as values so the middleware can map
// them to responses without a panic ever crossing the trust boundary.
var (
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned when a token is not a parseable JWT.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenSignature is returned when the signature does not verify,
	// covering both forged tokens and tokens signed with the wrong secret.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenInvalid is returned for any other verification failure.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrMissingSecret is returned when issuing without a configured secret.
	ErrMissingSecret = errors.New("signing secret not configured")
)

// Claims is the identity payload embedded in both token kinds. It is a
// projection of the user row at issuance time and is never re-validated
// against live user state beyond signature and expiry.
type Claims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// TokenService issues and verifies access and refresh tokens. The two kinds
// use independent secrets and TTLs.
type TokenService struct {
	access  signingKey
	refresh signingKey
}

// NewTokenService creates a token service from the two (secret, ttl) pairs.
func NewTokenService(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		access:  signingKey{secret: []byte(accessSecret), ttl: accessTTL},
		refresh: signingKey{secret: []byte(refreshSecret), ttl: refreshTTL},
	}
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(userID uint, name, email string, role Role) (string, error) {
	return s.issue(s.access, userID, name, email, role)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefreshToken(userID uint, name, email string, role Role) (string, error) {
	return s.issue(s.refresh, userID, name, email, role)
}

// VerifyAccessToken checks signature and expiry under the access secret.
func (s *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	return s.verify(s.access, token)
}

// VerifyRefreshToken checks signature and expiry under the refresh secret.
func (s *TokenService) VerifyRefreshToken(token string) (*Claims, error) {
	return s.verify(s.refresh, token)
}

func (s *TokenService) issue(key signingKey, userID uint, name, email string, role Role) (string, error) {
	if len(key.secret) == 0 {
		// A missing secret must fail loudly, never yield an empty token
		// that a caller could hand out as a credential.
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key.secret)
}

func (s *TokenService) verify(key signingKey, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenInvalid
	}
}
