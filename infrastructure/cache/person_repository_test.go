package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"people-service/domain/models"
	"people-service/mocks"
	"people-service/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(filepath.Join(os.TempDir(), "people-service-test-logs"), false)
	os.Exit(m.Run())
}

func newCachedRepository(t *testing.T) (*PersonRepository, *mocks.MockPersonRepository, *mocks.MockPersonListCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockPersonRepository(ctrl)
	list := mocks.NewMockPersonListCache(ctrl)
	return NewPersonRepository(inner, list).(*PersonRepository), inner, list
}

func TestFindAll_CacheHitSkipsStore(t *testing.T) {
	repo, _, list := newCachedRepository(t)
	cached := []models.Person{{ID: uuid.New()}}
	list.EXPECT().GetAll(gomock.Any()).Return(cached, true, nil)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, cached, got)
}

func TestFindAll_CacheMissLoadsAndStores(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	stored := []models.Person{{ID: uuid.New()}, {ID: uuid.New()}}

	gomock.InOrder(
		list.EXPECT().GetAll(gomock.Any()).Return(nil, false, nil),
		list.EXPECT().Generation(gomock.Any()).Return(int64(4), nil),
		inner.EXPECT().FindAll(gomock.Any()).Return(stored, nil),
		list.EXPECT().SetAll(gomock.Any(), int64(4), stored).Return(true, nil),
	)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestFindAll_CacheErrorFallsBackToStore(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	stored := []models.Person{{ID: uuid.New()}}

	list.EXPECT().GetAll(gomock.Any()).Return(nil, false, errors.New("redis down"))
	list.EXPECT().Generation(gomock.Any()).Return(int64(0), nil)
	inner.EXPECT().FindAll(gomock.Any()).Return(stored, nil)
	list.EXPECT().SetAll(gomock.Any(), int64(0), stored).Return(false, errors.New("redis down"))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestFindAll_StoreErrorPropagates(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	storeErr := errors.New("pg down")

	list.EXPECT().GetAll(gomock.Any()).Return(nil, false, nil)
	list.EXPECT().Generation(gomock.Any()).Return(int64(0), nil)
	inner.EXPECT().FindAll(gomock.Any()).Return(nil, storeErr)

	_, err := repo.FindAll(context.Background())
	require.ErrorIs(t, err, storeErr)
}

func TestWrites_InvalidateAfterSuccess(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	ctx := context.Background()
	id := uuid.New()
	p := &models.Person{ID: id}

	inner.EXPECT().Save(gomock.Any(), p).Return(nil)
	inner.EXPECT().DeleteByID(gomock.Any(), id).Return(nil)
	inner.EXPECT().UpdateAvatar(gomock.Any(), id, nil, nil, "url").Return(true, nil)
	list.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(3)

	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.DeleteByID(ctx, id))
	written, err := repo.UpdateAvatar(ctx, id, nil, nil, "url")
	require.NoError(t, err)
	require.True(t, written)
}

func TestUpdateAvatar_SkippedWriteKeepsCache(t *testing.T) {
	repo, inner, _ := newCachedRepository(t)
	id := uuid.New()

	// No Invalidate expectation
	inner.EXPECT().UpdateAvatar(gomock.Any(), id, nil, nil, "url").Return(false, nil)

	written, err := repo.UpdateAvatar(context.Background(), id, nil, nil, "url")
	require.NoError(t, err)
	require.False(t, written)
}

func TestFindAll_GenerationErrorSkipsStore(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	stored := []models.Person{{ID: uuid.New()}}

	// No SetAll expectation
	list.EXPECT().GetAll(gomock.Any()).Return(nil, false, nil)
	list.EXPECT().Generation(gomock.Any()).Return(int64(0), errors.New("redis down"))
	inner.EXPECT().FindAll(gomock.Any()).Return(stored, nil)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

// memoryListCache applies the same generation rule as the Redis cache.
type memoryListCache struct {
	mu         sync.Mutex
	people     []models.Person
	found      bool
	generation int64
}

func (c *memoryListCache) GetAll(ctx context.Context) ([]models.Person, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.people, c.found, nil
}

func (c *memoryListCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *memoryListCache) SetAll(ctx context.Context, generation int64, people []models.Person) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false, nil
	}
	c.people, c.found = people, true
	return true, nil
}

func (c *memoryListCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.people, c.found = nil, false
	return nil
}

func TestFindAll_CreateDuringLoadIsVisibleAfterwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockPersonRepository(ctrl)
	repo := NewPersonRepository(inner, &memoryListCache{})
	ctx := context.Background()
	created := &models.Person{ID: uuid.New()}

	inner.EXPECT().Save(gomock.Any(), created).Return(nil)
	gomock.InOrder(
		inner.EXPECT().FindAll(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]models.Person, error) {
			// The create completes after this load read the store
			require.NoError(t, repo.Save(ctx, created))
			return []models.Person{}, nil
		}),
		inner.EXPECT().FindAll(gomock.Any()).Return([]models.Person{*created}, nil),
	)

	first, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Empty(t, first)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, created.ID, all[0].ID)

	// Now cached; the store is not read again
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestWrites_FailedWriteKeepsCache(t *testing.T) {
	repo, inner, _ := newCachedRepository(t)
	storeErr := errors.New("constraint violation")
	p := &models.Person{}

	// No Invalidate expectation
	inner.EXPECT().Save(gomock.Any(), p).Return(storeErr)

	require.ErrorIs(t, repo.Save(context.Background(), p), storeErr)
}

func TestWrites_InvalidateErrorIsSwallowed(t *testing.T) {
	repo, inner, list := newCachedRepository(t)
	id := uuid.New()

	inner.EXPECT().DeleteByID(gomock.Any(), id).Return(nil)
	list.EXPECT().Invalidate(gomock.Any()).Return(errors.New("redis down"))

	require.NoError(t, repo.DeleteByID(context.Background(), id))
}

func TestReadsPassThrough(t *testing.T) {
	repo, inner, _ := newCachedRepository(t)
	id := uuid.New()
	p := &models.Person{ID: id}

	inner.EXPECT().FindByID(gomock.Any(), id).Return(p, nil)
	inner.EXPECT().ExistsByID(gomock.Any(), id).Return(true, nil)

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Same(t, p, got)

	exists, err := repo.ExistsByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, exists)
}
