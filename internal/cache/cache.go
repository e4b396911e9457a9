package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cache defines the interface for caching verification results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the deterministic cache key for a verification request.
// The claim text is trimmed (case preserved) and the journal names are
// deduplicated and sorted, so journal order and repeats never change the
// key while differing journal sets always do.
func Key(claim string, journals []string) string {
	seen := make(map[string]struct{}, len(journals))
	names := make([]string, 0, len(journals))
	for _, j := range journals {
		j = strings.TrimSpace(j)
		if j == "" {
			continue
		}
		if _, ok := seen[j]; ok {
			continue
		}
		seen[j] = struct{}{}
		names = append(names, j)
	}
	sort.Strings(names)

	// Length-prefix every element so delimiter characters in the claim or
	// in journal names cannot make distinct inputs collide
	h := sha256.New()
	claim = strings.TrimSpace(claim)
	fmt.Fprintf(h, "%d:%s", len(claim), claim)
	for _, name := range names {
		fmt.Fprintf(h, "%d:%s", len(name), name)
	}

	return "claimlens:v1:" + hex.EncodeToString(h.Sum(nil))
}
