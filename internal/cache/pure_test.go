package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestFilterFingerprint_Deterministic(t *testing.T) {
	t.Parallel()

	a := FilterFingerprint("last30", "out-1", "Willow Lake")
	b := FilterFingerprint("last30", "out-1", "Willow Lake")

	if a != b {
		t.Error("same filter tuple should produce the same fingerprint")
	}
}

func TestFilterFingerprint_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
	}{
		{"empty", nil},
		{"single", []string{"all"}},
		{"full tuple", []string{"custom", "2023-01-01", "2023-06-30", "out-1", "River Derwent"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fp := FilterFingerprint(tt.parts...)
			// First 16 bytes of SHA256, encoded as 32 hex chars
			if len(fp) != 32 {
				t.Errorf("FilterFingerprint(%v) length = %d, want 32", tt.parts, len(fp))
			}
		})
	}
}

func TestFilterFingerprint_PartBoundaries(t *testing.T) {
	t.Parallel()

	// "ab"+"c" and "a"+"bc" must not collide.
	if FilterFingerprint("ab", "c") == FilterFingerprint("a", "bc") {
		t.Error("part boundaries must affect the fingerprint")
	}

	if FilterFingerprint("all") == FilterFingerprint("last30") {
		t.Error("different scopes must produce different fingerprints")
	}
}

func TestReportKey_Shape(t *testing.T) {
	t.Parallel()

	key := ReportKey("angler-1", 7, "deadbeef")
	if !strings.HasPrefix(key, "report:angler-1:7:") {
		t.Errorf("ReportKey() = %q, want report:angler-1:7: prefix", key)
	}

	if ReportKey("angler-1", 7, "x") == ReportKey("angler-1", 8, "x") {
		t.Error("bumping the version must change the key")
	}
}

func TestRecordsVersion_ReadFailurePropagates(t *testing.T) {
	t.Parallel()

	// A client pointed at a dead address makes every command fail, which
	// must surface as an error so callers skip memoization instead of
	// treating the outage as version 0.
	c := &Cache{client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(func() { c.Close() })

	if _, err := c.RecordsVersion(context.Background(), "angler-1"); err == nil {
		t.Error("RecordsVersion should return the Redis error, not read as version 0")
	}
}
