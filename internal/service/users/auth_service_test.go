package users

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/tablebook/internal/auth"
	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newService(repo *MockUserRepository) *AuthService {
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens, 4)
}

func TestAuthService_Signup(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := service.Signup(ctx, SignupInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, auth.VerifyPassword(user.PasswordHash, "s3cret"))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newService(mockRepo)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Email: "alice@example.com"}
	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(existing, nil).Once()

	user, err := service.Signup(ctx, SignupInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newService(mockRepo)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "alice@example.com", PasswordHash: hash, Role: domain.RoleUser}
	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	result, err := service.Login(ctx, "alice@example.com", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(7), result.User.ID)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newService(mockRepo)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "alice@example.com", PasswordHash: hash}
	mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

	result, err := service.Login(ctx, "alice@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := newService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()

	result, err := service.Login(ctx, "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}
