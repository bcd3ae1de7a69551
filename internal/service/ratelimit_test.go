package service_test

import (
	"testing"

	"github.com/campushub/campushub/internal/service"
)

func TestLoginLimiter_AllowsUpToCapacity(t *testing.T) {
	l := service.NewLoginLimiter(1, 3) // rate=1/s, capacity=3

	// Should allow 3 attempts immediately (full bucket).
	for i := 0; i < 3; i++ {
		if !l.Allow("203.0.113.9") {
			t.Fatalf("attempt %d should be allowed (bucket not yet empty)", i+1)
		}
	}

	// 4th attempt should be denied (bucket empty).
	if l.Allow("203.0.113.9") {
		t.Fatal("4th attempt should be denied (bucket empty)")
	}
}

func TestLoginLimiter_DifferentKeysAreIndependent(t *testing.T) {
	l := service.NewLoginLimiter(1, 1) // capacity=1

	if !l.Allow("ip-a") {
		t.Fatal("ip-a first attempt should be allowed")
	}
	if l.Allow("ip-a") {
		t.Fatal("ip-a second attempt should be denied")
	}

	// ip-b has its own bucket.
	if !l.Allow("ip-b") {
		t.Fatal("ip-b first attempt should be allowed (independent bucket)")
	}
}

func TestLoginLimiter_ZeroRateNeverRefills(t *testing.T) {
	l := service.NewLoginLimiter(0, 2) // never refills

	if !l.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if !l.Allow("k") {
		t.Fatal("second attempt should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("third attempt should be denied (no refill)")
	}
}
