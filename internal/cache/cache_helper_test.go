package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) *CacheHelper {
	t.Helper()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, prefix)
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "students:total", int64(12), time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	var got int64
	if err := helper.Get(ctx, "students:total", &got); err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper := newTestHelper(t, "stats:")

	var got int64
	err := helper.Get(context.Background(), "missing", &got)
	if err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Exists(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	found, err := helper.Exists(ctx, "students:total")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}
	if found {
		t.Error("Expected key to be absent")
	}

	if err := helper.Set(ctx, "students:total", int64(3), time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	found, err = helper.Exists(ctx, "students:total")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}
	if !found {
		t.Error("Expected key to be present")
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper := newTestHelper(t, "student:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", "a", time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	var got string
	if err := helper.Get(ctx, "id:1", &got); err != ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	keys := []string{"students:total", "students:course:go", "students:monthly:6"}
	for _, k := range keys {
		if err := helper.Set(ctx, k, int64(1), time.Minute); err != nil {
			t.Fatalf("Failed to set %s: %v", k, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "students:*"); err != nil {
		t.Fatalf("Failed to invalidate: %v", err)
	}

	for _, k := range keys {
		var got int64
		if err := helper.Get(ctx, k, &got); err != ErrCacheNotFound {
			t.Errorf("Expected %s to be invalidated, got %v", k, err)
		}
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	t.Run("executes on miss", func(t *testing.T) {
		calls := 0
		var got int64
		err := helper.CacheOrExecute(ctx, "total", &got, time.Minute, func() (interface{}, error) {
			calls++
			return int64(7), nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if got != 7 {
			t.Errorf("Expected 7, got %d", got)
		}
		if calls != 1 {
			t.Errorf("Expected 1 fetch call, got %d", calls)
		}
	})

	t.Run("serves from cache on hit", func(t *testing.T) {
		if err := helper.Set(ctx, "cached", int64(99), time.Minute); err != nil {
			t.Fatalf("Failed to seed cache: %v", err)
		}

		var got int64
		err := helper.CacheOrExecute(ctx, "cached", &got, time.Minute, func() (interface{}, error) {
			t.Error("Fetch must not run on cache hit")
			return nil, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if got != 99 {
			t.Errorf("Expected 99, got %d", got)
		}
	})
}

// An invalidation issued after a fill must win: the fill's write-back
// is synchronous, so a delete that follows it can never be overwritten
// by a late write and resurrect removed counts for the full TTL.
func TestCacheHelper_InvalidationAfterFillWins(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		var got int64
		err := helper.CacheOrExecute(ctx, "students:total", &got, time.Minute, func() (interface{}, error) {
			return int64(1), nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}

		if err := helper.InvalidatePattern(ctx, "*"); err != nil {
			t.Fatalf("Failed to invalidate: %v", err)
		}

		var stale int64
		if err := helper.Get(ctx, "students:total", &stale); err != ErrCacheNotFound {
			t.Fatalf("Stale fill survived invalidation on iteration %d: got %v", i, err)
		}
	}
}

// A nil client degrades gracefully: writes are no-ops and reads report
// the cache as unavailable.
func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set with nil client must be a no-op, got %v", err)
	}

	var got int64
	if err := helper.Get(ctx, "k", &got); err != ErrCacheNotAvailable {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}

	err := helper.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		return int64(5), nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute with nil client failed: %v", err)
	}
	if got != 5 {
		t.Errorf("Expected fetch result 5, got %d", got)
	}
}

func TestCacheManager_InvalidateStudent(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client)
	ctx := context.Background()

	if err := cm.Student.Set(ctx, "id:5", "cached-student", time.Minute); err != nil {
		t.Fatalf("Failed to seed student cache: %v", err)
	}
	if err := cm.Stats.Set(ctx, "students:total", int64(10), time.Minute); err != nil {
		t.Fatalf("Failed to seed stats cache: %v", err)
	}

	if err := cm.InvalidateStudent(ctx, 5); err != nil {
		t.Fatalf("Failed to invalidate: %v", err)
	}

	var str string
	if err := cm.Student.Get(ctx, "id:5", &str); err != ErrCacheNotFound {
		t.Errorf("Expected student cache cleared, got %v", err)
	}
	var n int64
	if err := cm.Stats.Get(ctx, "students:total", &n); err != ErrCacheNotFound {
		t.Errorf("Expected stats cache cleared, got %v", err)
	}
}
