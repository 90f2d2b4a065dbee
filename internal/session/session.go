package session

import (
	"time"

	"github.com/hpungsan/nexascope/internal/diagnosis"
)

// Session is one "analyze" action of the presentation layer.
// It keeps the submitted snapshot and the unlock flag; the diagnosis itself
// is recomputed from the snapshot whenever the session is viewed.
type Session struct {
	// ID is a ULID that uniquely identifies this session
	ID string

	// Snapshot is the validated input (stored as JSON in DB)
	Snapshot diagnosis.Snapshot

	// Unlocked reports whether the full analysis may be shown
	Unlocked bool

	// CreatedAt is the Unix timestamp when the session was created
	CreatedAt int64

	// UnlockedAt is the Unix timestamp of the unlock (nullable)
	UnlockedAt *int64
}

// Expired reports whether the session is older than ttl at now.
// A non-positive ttl never expires.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Unix()-s.CreatedAt >= int64(ttl/time.Second)
}

// Analyze recomputes the diagnosis of the stored snapshot.
func (s *Session) Analyze() diagnosis.Result {
	return diagnosis.ClassifyAndPlan(s.Snapshot)
}
