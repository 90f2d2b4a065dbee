package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/db"
	"github.com/hpungsan/nexascope/internal/errors"
)

// PurgeInput contains parameters for the PurgeSessions operation.
type PurgeInput struct {
	OlderThanHours *int // optional, defaults to the configured session TTL
}

// PurgeOutput contains the result of the PurgeSessions operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// PurgeSessions permanently deletes sessions older than the given age.
func PurgeSessions(ctx context.Context, database *sql.DB, cfg *config.Config, input PurgeInput) (*PurgeOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	hours := cfg.SessionTTLHours
	if input.OlderThanHours != nil {
		hours = *input.OlderThanHours
	}
	if hours < 0 || hours > MaxPurgeHours {
		return nil, errors.NewInvalidField("older_than_hours", hours,
			fmt.Sprintf("must be between 0 and %d", MaxPurgeHours))
	}

	cutoff := nowFunc().Add(-time.Duration(hours) * time.Hour).Unix()
	count, err := db.PurgeSessions(ctx, database, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, hours),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count, hours int) string {
	if count == 0 {
		return "No sessions to purge"
	}

	sessionWord := "session"
	if count > 1 {
		sessionWord = "sessions"
	}

	msg := fmt.Sprintf("Permanently deleted %d %s", count, sessionWord)
	if hours > 0 {
		msg += fmt.Sprintf(" (created more than %d hours ago)", hours)
	}
	return msg
}
