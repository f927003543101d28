package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("first two hits should pass")
	}
	if l.Allow("a") {
		t.Fatalf("third hit inside window should be limited")
	}
	if !l.Allow("b") {
		t.Fatalf("other keys are independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Fatalf("hit after window should pass")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Fatalf("ip=%q", got)
	}

	r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Fatalf("ip=%q", got)
	}
}
