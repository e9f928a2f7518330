// ABOUTME: Tests for the host screening done before each request
// ABOUTME: Swaps in a stub resolver to check private-range rejection and bounded lookups

package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

type stubResolver struct {
	addrs []net.IPAddr
	block bool
}

func (s stubResolver) LookupIPAddr(ctx context.Context, _ string) ([]net.IPAddr, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.addrs, nil
}

func TestFetch_RejectsPrivateAddress(t *testing.T) {
	f := NewWithClient(&http.Client{Timeout: time.Second})
	f.resolver = stubResolver{addrs: []net.IPAddr{{IP: net.ParseIP("10.1.2.3")}}}

	_, err := f.Fetch(context.Background(), "https://intranet.example/feed")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !strings.Contains(err.Error(), "private IP") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetch_SlowLookupHonoursContext(t *testing.T) {
	f := NewWithClient(&http.Client{Timeout: time.Minute})
	f.resolver = stubResolver{block: true}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Fetch(ctx, "https://slow-dns.example/feed")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("lookup was not bounded by the context: took %v", elapsed)
	}
}

func TestFetch_SlowLookupHonoursClientTimeout(t *testing.T) {
	f := NewWithClient(&http.Client{Timeout: 50 * time.Millisecond})
	f.resolver = stubResolver{block: true}

	start := time.Now()
	_, err := f.Fetch(context.Background(), "https://slow-dns.example/feed")
	if err == nil {
		t.Fatal("expected an error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("lookup was not bounded by the client timeout: took %v", elapsed)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := map[string]bool{
		"127.0.0.1":     false,
		"::1":           false,
		"10.0.0.1":      true,
		"192.168.1.1":   true,
		"169.254.1.1":   true,
		"93.184.216.34": false,
	}
	for in, want := range tests {
		if got := isPrivateIP(net.ParseIP(in)); got != want {
			t.Errorf("isPrivateIP(%s) = %v, want %v", in, got, want)
		}
	}
}
