package naming

import (
	"fmt"
	"path"
	"strings"
	"sync"
)

// Uniquifier maps requested output filenames to guaranteed-unique ones
// within a single extraction run. Duplicates get a "_N" suffix before the
// extension. The counter map is keyed by the originally requested filename,
// so suffixes are stable and deterministic for a given request order.
// All methods are goroutine-safe.
type Uniquifier struct {
	mu       sync.Mutex
	claimed  map[string]bool // filename → already handed out
	counters map[string]int  // requested filename → next dup counter
}

// NewUniquifier creates a ready-to-use uniquifier.
func NewUniquifier() *Uniquifier {
	return &Uniquifier{
		claimed:  make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Uniquify returns filename unchanged on first request and a "_N" variant on
// subsequent requests for the same name. Candidate suffixes are resolved in
// an iterative loop, so adversarial inputs with many pre-existing "_N" names
// cannot blow the stack.
func (u *Uniquifier) Uniquify(filename string) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.claimed[filename] {
		u.claimed[filename] = true
		u.counters[filename] = 1
		return filename
	}

	ext := path.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	counter := u.counters[filename]
	for {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		counter++
		if !u.claimed[candidate] {
			u.counters[filename] = counter
			u.claimed[candidate] = true
			u.counters[candidate] = 1
			return candidate
		}
	}
}
