package ratelimit

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

func TestLimiterBlocksAfterMax(t *testing.T) {
	app := fiber.New()
	app.Post("/submit", New(nil, 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	want := []int{fiber.StatusCreated, fiber.StatusCreated, fiber.StatusTooManyRequests}
	for i, code := range want {
		resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != code {
			t.Fatalf("request %d: status = %d, want %d", i+1, resp.StatusCode, code)
		}
	}
}

// Runs only against a real server: REDIS_ADDR=localhost:6379 go test ./pkg/ratelimit
func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	s := NewRedisStorage(client, "nerdyjobs-test:")
	defer s.Reset()

	if v, err := s.Get("missing"); err != nil || v != nil {
		t.Fatalf("Get(missing) = %v, %v", v, err)
	}
	if err := s.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get("k"); string(v) != "v" {
		t.Fatalf("Get(k) = %q", v)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get("k"); v != nil {
		t.Fatalf("deleted key still present: %q", v)
	}
}
