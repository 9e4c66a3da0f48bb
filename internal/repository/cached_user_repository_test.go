package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusai/internal/cache"
	apperrors "campusai/internal/errors"
	"campusai/internal/model"
	"campusai/internal/testutil"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByRollNo(ctx context.Context, rollNo string) (*model.User, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newCache(t *testing.T) (*miniredis.Miniredis, *cache.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCachedUserRepository_HitAfterFirstLookup(t *testing.T) {
	mr, c := newCache(t)
	inner := new(MockUserRepository)
	stored := &model.User{ID: 7, Name: "Asha", Role: "student", RollNo: "23ABC12345", PasswordHash: "$2a$10$hash"}
	inner.On("FindByRollNo", mock.Anything, "23ABC12345").Return(stored, nil).Once()

	repo := NewCachedUserRepository(inner, c)
	ctx := context.Background()

	first, err := repo.FindByRollNo(ctx, "23ABC12345")
	require.NoError(t, err)
	assert.Equal(t, stored, first)
	assert.True(t, mr.Exists("user:rollno:23ABC12345"))

	second, err := repo.FindByRollNo(ctx, "23ABC12345")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, uint(7), second.ID)
	assert.Equal(t, "Asha", second.Name)
	assert.Equal(t, "$2a$10$hash", second.PasswordHash)

	inner.AssertExpectations(t)
}

func TestCachedUserRepository_MissIsNotCached(t *testing.T) {
	mr, c := newCache(t)
	inner := new(MockUserRepository)
	inner.On("FindByRollNo", mock.Anything, "23ABC12345").Return(nil, nil).Twice()

	repo := NewCachedUserRepository(inner, c)
	for i := 0; i < 2; i++ {
		found, err := repo.FindByRollNo(context.Background(), "23ABC12345")
		require.NoError(t, err)
		assert.Nil(t, found)
	}
	assert.False(t, mr.Exists("user:rollno:23ABC12345"))
	inner.AssertExpectations(t)
}

func TestCachedUserRepository_StoreErrorPropagates(t *testing.T) {
	_, c := newCache(t)
	inner := new(MockUserRepository)
	storeErr := errors.New("disk I/O error")
	inner.On("FindByRollNo", mock.Anything, "23ABC12345").Return(nil, storeErr)

	repo := NewCachedUserRepository(inner, c)
	found, err := repo.FindByRollNo(context.Background(), "23ABC12345")
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, found)
}

func TestCachedUserRepository_CreateEvictsKey(t *testing.T) {
	mr, c := newCache(t)
	require.NoError(t, mr.Set("user:rollno:23ABC12345", "stale"))
	inner := new(MockUserRepository)
	inner.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	repo := NewCachedUserRepository(inner, c)
	require.NoError(t, repo.Create(context.Background(), newUser("23ABC12345")))
	assert.False(t, mr.Exists("user:rollno:23ABC12345"))
}

func TestCachedUserRepository_CreateErrorPassesThrough(t *testing.T) {
	_, c := newCache(t)
	inner := new(MockUserRepository)
	inner.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrDuplicateKey)

	repo := NewCachedUserRepository(inner, c)
	err := repo.Create(context.Background(), newUser("23ABC12345"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestCachedUserRepository_CorruptEntryFallsThrough(t *testing.T) {
	mr, c := newCache(t)
	require.NoError(t, mr.Set("user:rollno:23ABC12345", "{not json"))
	inner := new(MockUserRepository)
	stored := newUser("23ABC12345")
	inner.On("FindByRollNo", mock.Anything, "23ABC12345").Return(stored, nil).Once()

	repo := NewCachedUserRepository(inner, c)
	found, err := repo.FindByRollNo(context.Background(), "23ABC12345")
	require.NoError(t, err)
	assert.Equal(t, stored, found)
	inner.AssertExpectations(t)
}

func TestCachedUserRepository_WorksWithoutRedis(t *testing.T) {
	repo := NewCachedUserRepository(NewUserRepository(testutil.NewDB(t)), cache.New("", "", 0))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("23ABC12345")))
	found, err := repo.FindByRollNo(ctx, "23ABC12345")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "23ABC12345", found.RollNo)
}
