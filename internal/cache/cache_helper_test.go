package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, "account:"), mr
}

type cachedValue struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCacheHelper_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	original := cachedValue{ID: 7, Name: "Ada"}
	if err := helper.Set(ctx, "7", original, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var loaded cachedValue
	if err := helper.Get(ctx, "7", &loaded); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded != original {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}

	if err := helper.Delete(ctx, "7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := helper.Get(ctx, "7", &loaded); err != ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper, mr := newTestHelper(t)

	for _, key := range []string{"email:a@x.com", "email:b@x.com", "id:1"} {
		if err := helper.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "email:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("account:email:a@x.com") || mr.Exists("account:email:b@x.com") {
		t.Error("pattern keys survived invalidation")
	}
	if !mr.Exists("account:id:1") {
		t.Error("unrelated key was invalidated")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	ctx := context.Background()
	helper, mr := newTestHelper(t)

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedValue{ID: 1, Name: "fresh"}, nil
	}

	var first cachedValue
	if err := helper.CacheOrExecute(ctx, "id:1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 || first.Name != "fresh" {
		t.Fatalf("expected one fetch, got %d (%+v)", calls, first)
	}

	// The write-back is asynchronous; wait for the key to land
	deadline := time.Now().Add(2 * time.Second)
	for !mr.Exists("account:id:1") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !mr.Exists("account:id:1") {
		t.Fatal("cache write-back never landed")
	}

	var second cachedValue
	if err := helper.CacheOrExecute(ctx, "id:1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cache hit on second call, fetch ran %d times", calls)
	}
}

func TestCacheManager_NilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	cm := NewCacheManager(nil)

	if err := cm.Account.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set on nil client must be a noop, got %v", err)
	}
	if err := cm.Account.Get(ctx, "k", new(string)); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}

	// CacheOrExecute must still serve the fetched value
	var out string
	err := cm.Account.CacheOrExecute(ctx, "k", &out, time.Minute, func() (interface{}, error) {
		return "direct", nil
	})
	if err != nil || out != "direct" {
		t.Errorf("expected direct fetch, got (%q, %v)", out, err)
	}

	if err := cm.HealthCheck(ctx); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable from health check, got %v", err)
	}
}
