package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"bookshop/internal/auth"
	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/repository"
)

// Matches the registration email shape: non-empty local part and domain,
// no whitespace, one @, at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Profile  model.Profile
}

// TokenPair bundles the two credentials issued at login and registration.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login and the refresh token lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a user and issues a token pair. The user row is persisted
// before issuance so the claims always carry the generated id.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, TokenPair, error) {
	if input.Username == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if input.Email == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if input.Password == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, TokenPair{}, fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}

	email := strings.ToLower(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, TokenPair{}, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, TokenPair{}, fmt.Errorf("check email uniqueness: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         auth.RoleUser.String(),
		Profile:      input.Profile,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Login authenticates by email and password and issues a fresh token pair,
// overwriting the stored refresh token. A single error covers unknown email
// and wrong password so responses do not reveal which one failed.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, apperrors.ErrInvalidCredentials
		}
		return nil, TokenPair{}, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The token
// must match the single active refresh token stored on the user row.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Email, auth.Role(user.Role))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes the stored refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshToken != refreshToken {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.users.SetRefreshToken(ctx, user.ID, "")
}

func (s *authService) issuePair(ctx context.Context, user *model.User) (TokenPair, error) {
	role := auth.Role(user.Role)

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Email, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Username, user.Email, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	user.RefreshToken = refreshToken

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
