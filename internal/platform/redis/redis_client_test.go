package redis

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	if got := (Config{Host: "cache"}).Addr(); got != "cache:6379" {
		t.Errorf("expected default port, got %q", got)
	}
	if got := (Config{Host: "cache", Port: 6380}).Addr(); got != "cache:6380" {
		t.Errorf("expected configured port, got %q", got)
	}
	if (Config{}).Enabled() {
		t.Error("empty host must disable redis")
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	p, _ := strconv.Atoi(port)

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = rdb.Close() }()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("expected value to reach the server, got %q", got)
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	p, _ := strconv.Atoi(port)
	mr.Close()

	if _, err := NewRedisClient(context.Background(), Config{Host: host, Port: p}); err == nil {
		t.Error("expected error for a closed server")
	}
}
