// Package fingerprint derives a stable identifier for the shape of a
// scanned tree. Two scans of an unchanged tree produce the same fingerprint,
// which is how persisted scan history makes the determinism of the pipeline
// observable.
package fingerprint

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"

	"jdisco/internal/walker"
)

// Accumulator collects file records during a walk and digests them into a
// tree fingerprint. Entries are sorted before hashing, so the result is
// independent of visit order. Safe for concurrent use.
//
// The fingerprint covers relative paths and sizes, not file contents; it
// identifies tree shape, which is enough to pair scan-history rows with the
// tree they describe.
type Accumulator struct {
	mu    sync.Mutex
	lines []string
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add records one file.
func (a *Accumulator) Add(rec walker.FileRecord) {
	line := fmt.Sprintf("%s\x00%d\n", rec.RelativePath, rec.Size)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, line)
}

// Sum returns the hex-encoded BLAKE2b-256 digest of the sorted entries.
func (a *Accumulator) Sum() string {
	a.mu.Lock()
	lines := make([]string, len(a.lines))
	copy(lines, a.lines)
	a.mu.Unlock()

	sort.Strings(lines)

	h, _ := blake2b.New256(nil)
	for _, line := range lines {
		h.Write([]byte(line))
	}
	return hex.EncodeToString(h.Sum(nil))
}
