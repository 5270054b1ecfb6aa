package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisRateLimiter
		if !l.Allow("10.0.0.1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("nil client returns nil limiter", func(t *testing.T) {
		if NewRedisRateLimiter(nil, "chat:", time.Minute, 3) != nil {
			t.Fatalf("expected nil limiter without client")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := newRedisRateLimiter(&mockRedisEvaler{result: 1}, "chat:", time.Minute, 3)
		if l.Allow("   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 3}
		l := newRedisRateLimiter(mock, "chat:", 2*time.Minute, 3)
		if !l.Allow(" 10.0.0.1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "chat:10.0.0.1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != int64(120000) {
			t.Fatalf("expected TTL ms=120000, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisRateLimitScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := newRedisRateLimiter(&mockRedisEvaler{result: 4}, "chat:", time.Minute, 3)
		if l.Allow("10.0.0.1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := newRedisRateLimiter(&mockRedisEvaler{err: errors.New("redis down")}, "chat:", time.Minute, 3)
		if !l.Allow("10.0.0.1") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}

func TestMemoryRateLimiterAllow(t *testing.T) {
	l := NewRateLimiter(time.Minute, 2).(*memoryRateLimiter)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatalf("expected first two hits allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("expected third hit denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("expected other keys unaffected")
	}
	if l.Allow("") {
		t.Fatalf("expected empty key rejected")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatalf("expected hit allowed after window")
	}
}

func TestMemoryRateLimiter_PrunesIdleKeys(t *testing.T) {
	l := NewRateLimiter(time.Minute, 5).(*memoryRateLimiter)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if len(l.hits) != 50 {
		t.Fatalf("expected 50 tracked keys, got %d", len(l.hits))
	}

	now = now.Add(2 * time.Minute)
	if !l.Allow("10.0.1.1") {
		t.Fatalf("expected new key allowed")
	}
	if len(l.hits) != 1 {
		t.Fatalf("expected idle keys pruned, got %d", len(l.hits))
	}
	if _, ok := l.hits["10.0.1.1"]; !ok {
		t.Fatalf("expected current key kept")
	}
}
