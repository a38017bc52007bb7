package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/auth"
	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
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

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newAuthServiceForTest(repo *MockUserRepository, store *MockTokenStore) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"), store)
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, token, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)

	// stored hash must verify and must not be the plaintext
	assert.NotEqual(t, "pw1secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1secret")))

	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{Email: "a@x.com"}, nil)

	_, _, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1secret")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(repo, jwtService, store)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(stored, nil)

	user, token, err := svc.Login(context.Background(), "a@x.com", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, stored.ID.String(), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: string(hash),
	}, nil)

	_, _, err := svc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	repo.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)

	// same error kind as a wrong password, so emails cannot be probed
	_, _, err := svc.Login(context.Background(), "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGetUserNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetUser(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogoutRevokesRemainingValidity(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(repo, jwtService, store)

	token, tokenID, err := jwtService.GenerateToken(uuid.New())
	assert.NoError(t, err)

	store.On("RevokeToken", mock.Anything, tokenID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 29*24*time.Hour && ttl <= auth.TokenExpiry
	})).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), token))
	store.AssertExpectations(t)
}

func TestLogoutInvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := newAuthServiceForTest(repo, store)

	err := svc.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	store.AssertNotCalled(t, "RevokeToken", mock.Anything, mock.Anything, mock.Anything)
}
