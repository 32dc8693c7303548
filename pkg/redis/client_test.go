package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetGetDelLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.Set(ctx, "smartshop:cart:v1", `[{"product_id":"p1"}]`, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, "smartshop:cart:v1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `[{"product_id":"p1"}]` {
		t.Fatalf("expected stored payload, got %q", value)
	}

	if err := client.Del(ctx, "smartshop:cart:v1"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "smartshop:cart:v1"); err == nil || err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestCartKeyBuilder(t *testing.T) {
	client := &Client{}
	if got := client.CartKey("v1"); got != "smartshop:cart:v1" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.CartKey(""); got != "smartshop:cart" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	ctx := context.Background()
	client := &Client{}

	if err := client.Set(ctx, "k", "v", 0); err == nil {
		t.Fatal("expected error for uninitialized set")
	}
	if _, err := client.Get(ctx, "k"); err == nil {
		t.Fatal("expected error for uninitialized get")
	}
	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected error for uninitialized ping")
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	default:
		cmd.SetErr(redis.ErrClosed)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	value, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}
