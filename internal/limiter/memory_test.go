package limiter

import (
	"context"
	"testing"
	"time"
)

func TestMemory_BlocksAfterMaxFails(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 3, 5*time.Minute)
	ip := HashIP("10.0.0.1")

	for i := 0; i < 2; i++ {
		blocked, _, err := m.Failure(ctx, "a@b.com", ip)
		if err != nil || blocked {
			t.Fatalf("attempt %d: blocked=%v err=%v", i, blocked, err)
		}
	}
	blocked, retry, err := m.Failure(ctx, "a@b.com", ip)
	if err != nil || !blocked || retry != 5*time.Minute {
		t.Fatalf("third failure: blocked=%v retry=%v err=%v", blocked, retry, err)
	}

	ok, _, _ := m.Allow(ctx, "a@b.com", ip)
	if ok {
		t.Fatal("blocked pair must not be allowed")
	}

	// other identities unaffected
	if ok, _, _ := m.Allow(ctx, "c@d.com", ip); !ok {
		t.Fatal("other email must be allowed")
	}
	if ok, _, _ := m.Allow(ctx, "a@b.com", HashIP("10.0.0.2")); !ok {
		t.Fatal("other ip must be allowed")
	}
}

func TestMemory_SuccessResets(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 2, time.Minute)
	ip := HashIP("10.0.0.1")

	_, _, _ = m.Failure(ctx, "a@b.com", ip)
	if err := m.Success(ctx, "a@b.com", ip); err != nil {
		t.Fatal(err)
	}
	if blocked, _, _ := m.Failure(ctx, "a@b.com", ip); blocked {
		t.Fatal("counter must reset after success")
	}
}

func TestMemory_BlockExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 1, time.Minute)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	ip := HashIP("10.0.0.1")

	if blocked, _, _ := m.Failure(ctx, "a@b.com", ip); !blocked {
		t.Fatal("want immediate block with maxFails=1")
	}
	now = now.Add(2 * time.Minute)
	if ok, _, _ := m.Allow(ctx, "a@b.com", ip); !ok {
		t.Fatal("block must expire")
	}
}
