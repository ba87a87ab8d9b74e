//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aperture-dining/web-service/internal/models"
	"github.com/aperture-dining/web-service/internal/repository"
	"github.com/aperture-dining/web-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T, ttl time.Duration) repository.StateRepository

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"postgres": func(t *testing.T, ttl time.Duration) repository.StateRepository {
			return repository.NewStateRepository(requirePostgres(t), ttl)
		},
		"redis": func(t *testing.T, ttl time.Duration) repository.StateRepository {
			return repository.NewRedisStateRepository(requireRedis(t), ttl)
		},
	}
}

func TestStateStore_SetGetDelete(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t, time.Hour)

			_, err := store.Get(ctx, "s1", service.CartKey)
			assert.ErrorIs(t, err, repository.ErrStateNotFound)

			require.NoError(t, store.Set(ctx, "s1", service.CartKey, `[]`))
			require.NoError(t, store.Set(ctx, "s1", service.CartKey, `[{"id":"m1"}]`))
			require.NoError(t, store.Set(ctx, "s2", service.CartKey, `[{"id":"m2"}]`))

			v, err := store.Get(ctx, "s1", service.CartKey)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"m1"}]`, v)

			require.NoError(t, store.Delete(ctx, "s1", service.CartKey, service.OrderTypeKey))
			_, err = store.Get(ctx, "s1", service.CartKey)
			assert.ErrorIs(t, err, repository.ErrStateNotFound)

			v, err = store.Get(ctx, "s2", service.CartKey)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"m2"}]`, v, "other sessions are untouched")
		})
	}
}

func TestStateStore_ExpiredValuesAreGone(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t, time.Second)

			require.NoError(t, store.Set(ctx, "s1", service.UserKey, `{"id":"u1"}`))
			time.Sleep(1500 * time.Millisecond)

			_, err := store.Get(ctx, "s1", service.UserKey)
			assert.ErrorIs(t, err, repository.ErrStateNotFound)
		})
	}
}

func TestStateStore_IncrIsAtomic(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t, time.Hour)

			var wg sync.WaitGroup
			seen := make(chan int64, 20)
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					n, err := store.Incr(ctx, "s1", service.BookingGenKey)
					assert.NoError(t, err)
					seen <- n
				}()
			}
			wg.Wait()
			close(seen)

			unique := map[int64]bool{}
			for n := range seen {
				unique[n] = true
			}
			assert.Len(t, unique, 20, "every caller gets its own generation")

			v, err := store.Get(ctx, "s1", service.BookingGenKey)
			require.NoError(t, err)
			assert.Equal(t, "20", v)
		})
	}
}

func TestPurgeExpired(t *testing.T) {
	db := requirePostgres(t)
	ctx := context.Background()

	require.NoError(t, repository.NewStateRepository(db, -time.Minute).Set(ctx, "old", service.CartKey, `[]`))
	require.NoError(t, repository.NewStateRepository(db, time.Hour).Set(ctx, "new", service.CartKey, `[]`))

	n, err := repository.PurgeExpired(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int64
	db.Model(&models.StoredValue{}).Count(&left)
	assert.Equal(t, int64(1), left)
}

func TestCartAndSession_SurviveAcrossServices(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t, time.Hour)

			sessions := repository.NewSessionRepository(store)
			sess := &models.Session{ID: "5b0c7f0e-1b1e-4c55-9e39-1f5f0f3f6a10", Cookies: map[string]string{"token": "abc"}}
			require.NoError(t, sessions.Save(ctx, sess))

			service.NewCartService(store).AddItem(ctx, sess.ID, models.CartItem{ID: "m1", Name: "Margherita", Price: 12.5, Quantity: 2})

			// a fresh service over the same store sees the same state
			items := service.NewCartService(store).LoadCart(ctx, sess.ID)
			require.Len(t, items, 1)
			assert.Equal(t, 2, items[0].Quantity)

			found, err := sessions.Find(ctx, sess.ID)
			require.NoError(t, err)
			assert.True(t, found.Authenticated())
		})
	}
}
