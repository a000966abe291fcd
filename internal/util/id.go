// Package util provides small process-wide helpers shared by the merge
// core and the CLI. New returns a ULID (Universally Unique
// Lexicographically Sortable Identifier) suitable as a correlation ID for
// the log lines emitted by a single MergeProcesses invocation.
package util

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

var entropy *ulid.MonotonicEntropy

func init() {
	var seed int64
	_ = binary.Read(rand.Reader, binary.BigEndian, &seed)
	entropy = ulid.Monotonic(mrand.New(mrand.NewSource(seed)), 0)
}

// New returns a new ULID string, or an error if reading entropy failed.
func New() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// MustNew panics on failure; failures are only possible on exotic entropy
// read errors, so callers that can't meaningfully recover use this.
func MustNew() string {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}
