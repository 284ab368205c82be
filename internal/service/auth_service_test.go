package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookshop/internal/auth"
	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/pagination"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1 // simulate the generated primary key
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListPage(ctx context.Context, req pagination.Request) ([]model.User, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id uint, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService("access-secret", 15*time.Minute, "refresh-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Username: "a", Email: "a@b.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				m.On("SetRefreshToken", mock.Anything, uint(1), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:  "duplicate email",
			input: RegisterInput{Username: "a", Email: "a@b.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{Email: "a@b.com"}, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
		{
			name:  "upper-cased duplicate email",
			input: RegisterInput{Username: "a", Email: "A@B.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{Email: "a@b.com"}, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
		{
			name:      "missing username",
			input:     RegisterInput{Email: "a@b.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "missing password",
			input:     RegisterInput{Username: "a", Email: "a@b.com"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "email without at sign",
			input:     RegisterInput{Username: "a", Email: "ab.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "email without domain dot",
			input:     RegisterInput{Username: "a", Email: "a@bcom", Password: "pw"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "email with whitespace",
			input:     RegisterInput{Username: "a", Email: "a b@c.com", Password: "pw"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, newTestTokens())
			user, pair, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				mockRepo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, "a@b.com", user.Email)
			assert.Equal(t, auth.RoleUser.String(), user.Role)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_TokenCarriesGeneratedID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockRepo.On("SetRefreshToken", mock.Anything, uint(1), mock.AnythingOfType("string")).Return(nil)

	tokens := newTestTokens()
	svc := NewAuthService(mockRepo, tokens)

	_, pair, err := svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	// The user row is persisted before issuance, so claims carry the id.
	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	stored := &model.User{ID: 7, Username: "a", Email: "a@b.com", PasswordHash: hash, Role: "user"}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "a@b.com",
			password: "pw",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(stored, nil)
				m.On("SetRefreshToken", mock.Anything, uint(7), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "missing@b.com",
			password: "pw",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "missing@b.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "a@b.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(stored, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := newTestTokens()
			svc := NewAuthService(mockRepo, tokens)
			user, pair, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, pair.AccessToken)
				mockRepo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)

			claims, err := tokens.VerifyAccessToken(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, uint(7), claims.UserID)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	tokens := newTestTokens()
	refreshToken, err := tokens.IssueRefreshToken(7, "a", "a@b.com", auth.RoleUser)
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Username: "a", Email: "a@b.com", Role: "user", RefreshToken: refreshToken}, nil)

		svc := NewAuthService(mockRepo, tokens)
		accessToken, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)

		claims, err := tokens.VerifyAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("token not matching stored one", func(t *testing.T) {
		other, err := tokens.IssueRefreshToken(7, "a", "a@b.com", auth.RoleUser)
		require.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, RefreshToken: "a-different-stored-token"}, nil)

		svc := NewAuthService(mockRepo, tokens)
		_, err = svc.Refresh(context.Background(), other)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		accessToken, err := tokens.IssueAccessToken(7, "a", "a@b.com", auth.RoleUser)
		require.NoError(t, err)

		svc := NewAuthService(new(MockUserRepository), tokens)
		_, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), tokens)
		_, err := svc.Refresh(context.Background(), "garbage")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	tokens := newTestTokens()
	refreshToken, err := tokens.IssueRefreshToken(7, "a", "a@b.com", auth.RoleUser)
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&model.User{ID: 7, RefreshToken: refreshToken}, nil)
	mockRepo.On("SetRefreshToken", mock.Anything, uint(7), "").Return(nil)

	svc := NewAuthService(mockRepo, tokens)
	require.NoError(t, svc.Logout(context.Background(), refreshToken))
	mockRepo.AssertExpectations(t)
}
