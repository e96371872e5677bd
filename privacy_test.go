package main

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestHashIP(t *testing.T) {
	th := newThrottle(1, time.Minute)

	a := th.hashIP("192.0.2.1")
	if len(a) != 16 {
		t.Errorf("expected a 16 character hash, got %q", a)
	}
	if a != th.hashIP("192.0.2.1") {
		t.Error("hash should be stable for one address")
	}
	if a == th.hashIP("192.0.2.2") {
		t.Error("different addresses should hash differently")
	}
	if strings.Contains(a, "192") {
		t.Error("hash leaks the address")
	}
	if a == newThrottle(1, time.Minute).hashIP("192.0.2.1") {
		t.Error("hashes should be salted per process")
	}
}

func TestThrottleWindow(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	th := newThrottle(2, time.Hour)
	th.now = func() time.Time { return now }

	if th.limited("a") {
		t.Fatal("a new client should not be limited")
	}
	th.record("a")
	th.record("a")
	if !th.limited("a") {
		t.Error("client should be limited after reaching the limit inside the window")
	}
	if th.limited("b") {
		t.Error("clients are limited independently")
	}

	now = now.Add(time.Hour + time.Second)
	if th.limited("a") {
		t.Error("client should be free again once the window has passed")
	}
}

func TestThrottleCheckDoesNotCount(t *testing.T) {
	th := newThrottle(1, time.Hour)
	for i := 0; i < 5; i++ {
		if th.limited("a") {
			t.Fatalf("check %d counted as a submission", i)
		}
	}
	th.record("a")
	if !th.limited("a") {
		t.Error("expected the recorded submission to count")
	}
}

func TestThrottleSweep(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	th := newThrottle(5, time.Minute)
	th.now = func() time.Time { return now }

	th.record("a")
	now = now.Add(30 * time.Second)
	th.record("b")

	now = now.Add(45 * time.Second)
	if n := th.sweep(); n != 1 {
		t.Errorf("expected one stale client, got %d", n)
	}
	if len(th.hits) != 1 {
		t.Errorf("expected one client left, got %d", len(th.hits))
	}
}

func TestStreamLimit(t *testing.T) {
	th := newThrottle(1, time.Minute)
	l := newStreamLimit(3, 2, th.hashIP)

	relA1, _, ok := l.acquire("a")
	if !ok {
		t.Fatal("first stream should be accepted")
	}
	if _, _, ok := l.acquire("a"); !ok {
		t.Fatal("second stream from the same client should be accepted")
	}
	if _, status, ok := l.acquire("a"); ok || status != http.StatusTooManyRequests {
		t.Errorf("third stream from one client: ok=%v status=%d, want 429", ok, status)
	}

	if _, _, ok := l.acquire("b"); !ok {
		t.Fatal("another client should get the last slot")
	}
	if _, status, ok := l.acquire("c"); ok || status != http.StatusServiceUnavailable {
		t.Errorf("stream over the total cap: ok=%v status=%d, want 503", ok, status)
	}

	relA1()
	relA1()
	if _, _, ok := l.acquire("c"); !ok {
		t.Error("a released slot should be reusable")
	}
	if _, _, ok := l.acquire("d"); ok {
		t.Error("releasing twice must free only one slot")
	}
}
