package sessions

import (
	"context"
	"testing"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) List(ctx context.Context) ([]domain.SessionView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SessionView), args.Error(1)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetSessions(ctx context.Context) ([]domain.SessionView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionView), args.Error(1)
}

func (m *MockCache) SetSessions(ctx context.Context, views []domain.SessionView) error {
	args := m.Called(ctx, views)
	return args.Error(0)
}

func TestSessionQueryService_List_CacheHit(t *testing.T) {
	mockRepo := &MockSessionRepository{}
	mockCache := &MockCache{}
	service := NewSessionQueryService(mockRepo, nil, mockCache)

	ctx := context.Background()
	cached := []domain.SessionView{{ID: 1, Name: "Friday Dinner", MaxGuests: 10, AvailableSlots: 4, IsAvailable: true}}

	mockCache.On("GetSessions", ctx).Return(cached, nil).Once()

	views, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, views)
	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
}

func TestSessionQueryService_List_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockSessionRepository{}
	mockCache := &MockCache{}
	service := NewSessionQueryService(mockRepo, nil, mockCache)

	ctx := context.Background()
	fromDB := []domain.SessionView{{ID: 2, Name: "Sunday Brunch", MaxGuests: 20, AvailableSlots: 20, IsAvailable: true}}

	mockCache.On("GetSessions", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(fromDB, nil).Once()
	mockCache.On("SetSessions", ctx, fromDB).Return(nil).Once()

	views, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fromDB, views)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSessionQueryService_List_NoCache(t *testing.T) {
	mockRepo := &MockSessionRepository{}
	service := NewSessionQueryService(mockRepo, nil, nil)

	ctx := context.Background()
	fromDB := []domain.SessionView{{ID: 3, Name: "Tasting Menu"}}

	mockRepo.On("List", ctx).Return(fromDB, nil).Once()

	views, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fromDB, views)
	mockRepo.AssertExpectations(t)
}
