// Package bloom tracks already-discovered URLs with a Bloom filter so
// repeated sitemap walks don't re-process the same pages.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenFilter remembers URLs observed during discovery. Membership tests can
// report false positives but never false negatives, so a "seen" answer may
// occasionally skip a genuinely new URL.
type SeenFilter struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewSeenFilter sizes a filter for n expected URLs at the given false
// positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		filter: bloom.NewWithEstimates(n, fpRate),
	}
}

// MarkSeen records the URL and reports whether it had been seen before.
func (f *SeenFilter) MarkSeen(url string) bool {
	key := canonical(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter.TestAndAddString(key)
}

// Seen reports whether the URL has (probably) been recorded.
func (f *SeenFilter) Seen(url string) bool {
	key := canonical(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter.TestString(key)
}

// FilterNew returns the subset of urls not yet seen, marking each as seen.
// Order is preserved and duplicates within the input collapse to one entry.
func (f *SeenFilter) FilterNew(urls []string) []string {
	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		if !f.MarkSeen(u) {
			fresh = append(fresh, u)
		}
	}
	return fresh
}

// ApproxCount returns the approximate number of URLs recorded.
func (f *SeenFilter) ApproxCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.filter.ApproximatedSize())
}

// canonical normalizes a URL so trivial variants dedupe to one key.
func canonical(url string) string {
	url = strings.TrimSuffix(url, "/")
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		url = rest
	} else if rest, ok := strings.CutPrefix(url, "http://"); ok {
		url = rest
	}
	return strings.ToLower(url)
}
