package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Purge limits
const (
	// MaxPurgeHours caps the older_than_hours filter (one year).
	MaxPurgeHours = 24 * 365
)

// nowFunc is the clock used by session operations; tests override it.
var nowFunc = time.Now

// generateULID creates a new ULID string.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(nowFunc()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
