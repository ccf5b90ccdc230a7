package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/pkg/cache"
)

// ListGenerationKey holds a counter bumped after every mutation. The cached
// list lives under ListKey(generation), so a list read before a mutation can
// only ever be stored under a generation nobody reads any more.
const ListGenerationKey = "authors:list:generation"

// ListKey is the cache key of the list snapshot taken at generation gen.
func ListKey(gen int64) string {
	return fmt.Sprintf("authors:list:%d", gen)
}

// cachedRepository serves List from the cache. Cache failures never fail a
// request: reads fall through to the store.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
	ttl   time.Duration

	// stale is set when bumping the generation failed after a mutation.
	// Until a bump succeeds, List bypasses the cache.
	stale atomic.Bool
	// bumpMu keeps stale in step with the order of the bumps.
	bumpMu sync.Mutex
}

// NewCachedRepository wraps next with a read-through list cache.
func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedRepository) List(ctx context.Context) ([]model.Author, error) {
	if r.stale.Load() && !r.invalidateList(ctx) {
		return r.next.List(ctx)
	}

	gen, ok := r.generation(ctx)
	if !ok {
		return r.next.List(ctx)
	}
	key := ListKey(gen)

	var authors []model.Author
	found, err := r.cache.Get(ctx, key, &authors)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found && authors != nil {
		return authors, nil
	}

	authors, err = r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, authors, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return authors, nil
}

func (r *cachedRepository) Create(ctx context.Context, a *model.NewAuthor) (*model.Author, error) {
	created, err := r.next.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	r.invalidateList(ctx)
	return created, nil
}

func (r *cachedRepository) Update(ctx context.Context, patch *model.AuthorPatch) (*model.Author, error) {
	updated, err := r.next.Update(ctx, patch)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		r.invalidateList(ctx)
	}
	return updated, nil
}

func (r *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidateList(ctx)
	return nil
}

// generation reads the current list generation, creating the counter when
// it is missing.
func (r *cachedRepository) generation(ctx context.Context) (int64, bool) {
	var gen int64
	found, err := r.cache.Get(ctx, ListGenerationKey, &gen)
	if err == nil && !found {
		gen, err = r.cache.Incr(ctx, ListGenerationKey)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", ListGenerationKey).Msg("cache generation unavailable")
		return 0, false
	}
	return gen, true
}

// invalidateList moves readers to a fresh generation and reports whether it
// succeeded.
func (r *cachedRepository) invalidateList(ctx context.Context) bool {
	r.bumpMu.Lock()
	defer r.bumpMu.Unlock()

	if _, err := r.cache.Incr(ctx, ListGenerationKey); err != nil {
		r.stale.Store(true)
		log.Warn().Err(err).Str("key", ListGenerationKey).Msg("cache invalidation failed, bypassing cache")
		return false
	}
	r.stale.Store(false)
	return true
}
