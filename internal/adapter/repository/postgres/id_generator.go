package postgres

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs that sort by creation time, even
// within the same millisecond.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
