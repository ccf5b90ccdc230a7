package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/repository"
)

type memoryCache struct {
	mu       sync.Mutex
	items    map[string][]byte
	failGet  bool
	failSet  bool
	failIncr bool
	setCalls int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("connection refused")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	c.setCalls++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failIncr {
		return 0, errors.New("connection refused")
	}
	var n int64
	if raw, ok := c.items[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	raw, _ := json.Marshal(n)
	c.items[key] = raw
	return n, nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// countingStore is an in-memory RepositoryInterface that counts List calls.
// afterSnapshot, when set, runs once between taking the rows and returning
// them, to interleave a concurrent mutation.
type countingStore struct {
	authors       []model.Author
	listCalls     int
	failList      error
	afterSnapshot func()
}

func (s *countingStore) List(context.Context) ([]model.Author, error) {
	s.listCalls++
	if s.failList != nil {
		return nil, s.failList
	}
	out := make([]model.Author, len(s.authors))
	copy(out, s.authors)
	if hook := s.afterSnapshot; hook != nil {
		s.afterSnapshot = nil
		hook()
	}
	return out, nil
}

func (s *countingStore) Create(_ context.Context, in *model.NewAuthor) (*model.Author, error) {
	a := model.Author{ID: uuid.New(), Name: *in.Name, Biography: *in.Biography}
	s.authors = append(s.authors, a)
	return &a, nil
}

func (s *countingStore) Update(_ context.Context, patch *model.AuthorPatch) (*model.Author, error) {
	for i := range s.authors {
		if s.authors[i].ID == patch.ID {
			if v, ok := patch.Value("name"); ok && v != nil {
				s.authors[i].Name = *v
			}
			a := s.authors[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *countingStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.authors {
		if s.authors[i].ID == id {
			s.authors = append(s.authors[:i], s.authors[i+1:]...)
			break
		}
	}
	return nil
}

func str(s string) *string { return &s }

func ids(authors []model.Author) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ID)
	}
	return out
}

func TestCachedRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("SecondListServedFromCache", func(t *testing.T) {
		store := &countingStore{authors: []model.Author{{ID: uuid.New(), Name: "Abai", Biography: "poet"}}}
		c := newMemoryCache()
		repo := repository.NewCachedRepository(store, c, time.Minute)

		first, err := repo.List(ctx)
		require.NoError(t, err)
		second, err := repo.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, store.listCalls)
		assert.True(t, c.has(repository.ListKey(1)))
	})

	t.Run("CacheFailureFallsThrough", func(t *testing.T) {
		store := &countingStore{authors: []model.Author{{ID: uuid.New(), Name: "Abai", Biography: "poet"}}}
		c := newMemoryCache()
		c.failGet = true
		c.failSet = true
		repo := repository.NewCachedRepository(store, c, time.Minute)

		authors, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, authors, 1)

		_, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, store.listCalls)
	})

	t.Run("StoreErrorIsNotCached", func(t *testing.T) {
		store := &countingStore{failList: errors.New("boom")}
		c := newMemoryCache()
		repo := repository.NewCachedRepository(store, c, time.Minute)

		_, err := repo.List(ctx)
		assert.EqualError(t, err, "boom")
		assert.Zero(t, c.setCalls)
	})
}

func TestCachedRepository_MutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{}
	c := newMemoryCache()
	repo := repository.NewCachedRepository(store, c, time.Minute)

	_, err := repo.List(ctx)
	require.NoError(t, err)

	created, err := repo.Create(ctx, &model.NewAuthor{Name: str("Abai"), Biography: str("poet")})
	require.NoError(t, err)

	authors, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	require.Equal(t, 2, store.listCalls)

	// A patch that matches nothing leaves the cached list alone.
	missing, err := repo.Update(ctx, &model.AuthorPatch{
		ID:     uuid.New(),
		Fields: []model.FieldValue{{Column: "name", Value: str("x")}},
	})
	require.NoError(t, err)
	assert.Nil(t, missing)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)

	_, err = repo.Update(ctx, &model.AuthorPatch{
		ID:     created.ID,
		Fields: []model.FieldValue{{Column: "name", Value: str("Abai Qunanbaiuly")}},
	})
	require.NoError(t, err)

	authors, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Abai Qunanbaiuly", authors[0].Name)

	require.NoError(t, repo.Delete(ctx, created.ID))

	authors, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestCachedRepository_DeleteThenList(t *testing.T) {
	ctx := context.Background()

	t.Run("ListRacingDelete", func(t *testing.T) {
		victim := model.Author{ID: uuid.New(), Name: "Abai", Biography: "poet"}
		store := &countingStore{authors: []model.Author{victim}}
		repo := repository.NewCachedRepository(store, newMemoryCache(), time.Minute)

		// the delete completes after the list has read its rows
		store.afterSnapshot = func() {
			require.NoError(t, repo.Delete(ctx, victim.ID))
		}
		racing, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids(racing), victim.ID, "the racing read still saw the row")

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids(after), victim.ID)
	})

	t.Run("InvalidationFailure", func(t *testing.T) {
		victim := model.Author{ID: uuid.New(), Name: "Abai", Biography: "poet"}
		store := &countingStore{authors: []model.Author{victim}}
		c := newMemoryCache()
		repo := repository.NewCachedRepository(store, c, time.Minute)

		_, err := repo.List(ctx)
		require.NoError(t, err)

		c.failIncr = true
		require.NoError(t, repo.Delete(ctx, victim.ID))

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, after, "the cache is bypassed while it may be stale")

		// once the cache recovers the next list moves to a fresh generation
		c.failIncr = false
		after, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, after)
		calls := store.listCalls

		_, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, calls, store.listCalls, "served from cache again")
	})
}
