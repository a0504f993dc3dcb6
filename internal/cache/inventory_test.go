package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAsideCachesFetchResult(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{Name: "ann", Count: 7}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "test:key", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "ann", first.Name)

	// Second read is served from the cache.
	var second payload
	require.NoError(t, Aside(ctx, "test:key", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAsideDropsCorruptEntry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:key", "{not json"))

	var got payload
	err := Aside(ctx, "test:key", &got, time.Minute, func() error {
		got = payload{Name: "fresh"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)

	// The corrupt entry was replaced with the fetched value.
	stored, err := mr.Get("test:key")
	require.NoError(t, err)
	assert.Contains(t, stored, "fresh")
}

func TestAsideWithoutClientFallsThrough(t *testing.T) {
	SetClient(nil)

	fetched := false
	var got payload
	require.NoError(t, Aside(context.Background(), "k", &got, time.Minute, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)
}

func TestInvalidateRemovesKeys(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var v payload
	require.NoError(t, Aside(ctx, UserKey(1), &v, time.Minute, func() error {
		v = payload{Name: "ann"}
		return nil
	}))
	assert.True(t, mr.Exists(UserKey(1)))

	InvalidateUser(ctx, 1)
	assert.False(t, mr.Exists(UserKey(1)))
}

func TestInvalidateProfileAlsoDropsList(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(ProfileKey(3), `{}`))
	require.NoError(t, mr.Set(ProfilesListKey, `[]`))

	InvalidateProfile(ctx, 3)
	assert.False(t, mr.Exists(ProfileKey(3)))
	assert.False(t, mr.Exists(ProfilesListKey))
}
