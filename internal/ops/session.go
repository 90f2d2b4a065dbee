package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/db"
	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/intake"
	"github.com/hpungsan/nexascope/internal/report"
	"github.com/hpungsan/nexascope/internal/session"
)

// SessionOutput is the view of a session returned by every session operation.
// Full is only populated once the session is unlocked.
type SessionOutput struct {
	SessionID string               `json:"session_id"`
	Unlocked  bool                 `json:"unlocked"`
	CreatedAt int64                `json:"created_at"`
	Snapshot  diagnosis.Snapshot   `json:"snapshot"`
	Preview   diagnosis.Preview    `json:"preview"`
	Full      *diagnosis.Diagnosis `json:"full,omitempty"`
}

// StartSessionInput contains parameters for the StartSession operation.
type StartSessionInput struct {
	Raw intake.RawInput
}

// StartSession validates the answers and stores a new, locked session.
// Every call creates a new session, so unlocking never carries over to a
// later analysis.
func StartSession(ctx context.Context, database *sql.DB, cfg *config.Config, input StartSessionInput) (*SessionOutput, error) {
	snap, err := intake.Build(input.Raw)
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	s := &session.Session{
		ID:        id,
		Snapshot:  snap,
		CreatedAt: nowFunc().Unix(),
	}
	if err := db.InsertSession(ctx, database, s); err != nil {
		return nil, err
	}

	return sessionOutput(s), nil
}

// SessionRef addresses a stored session.
type SessionRef struct {
	ID string
}

// ViewSession returns the preview of a session and, when unlocked, the full diagnosis.
func ViewSession(ctx context.Context, database *sql.DB, cfg *config.Config, input SessionRef) (*SessionOutput, error) {
	s, err := loadSession(ctx, database, cfg, input.ID)
	if err != nil {
		return nil, err
	}
	return sessionOutput(s), nil
}

// UnlockSession marks a session as unlocked and returns the full diagnosis.
// Unlocking twice is allowed.
func UnlockSession(ctx context.Context, database *sql.DB, cfg *config.Config, input SessionRef) (*SessionOutput, error) {
	s, err := loadSession(ctx, database, cfg, input.ID)
	if err != nil {
		return nil, err
	}

	if !s.Unlocked {
		now := nowFunc().Unix()
		if err := db.MarkUnlocked(ctx, database, s.ID, now); err != nil {
			return nil, err
		}
		s.Unlocked = true
		s.UnlockedAt = &now
	}

	return sessionOutput(s), nil
}

// SessionReportOutput contains the rendered markdown of an unlocked session.
type SessionReportOutput struct {
	SessionID string `json:"session_id"`
	Markdown  string `json:"markdown"`
}

// SessionReport renders the full diagnosis of an unlocked session as markdown.
// A locked session yields SESSION_LOCKED.
func SessionReport(ctx context.Context, database *sql.DB, cfg *config.Config, input SessionRef) (*SessionReportOutput, error) {
	s, err := loadSession(ctx, database, cfg, input.ID)
	if err != nil {
		return nil, err
	}
	if !s.Unlocked {
		return nil, errors.NewSessionLocked(s.ID)
	}

	res := s.Analyze()
	return &SessionReportOutput{
		SessionID: s.ID,
		Markdown:  report.Preview(res.Preview) + "\n" + report.Full(res.Full),
	}, nil
}

// loadSession fetches a session and rejects it when it outlived the TTL.
func loadSession(ctx context.Context, database *sql.DB, cfg *config.Config, id string) (*session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewInvalidRequest("session id is required")
	}

	s, err := db.GetSession(ctx, database, id)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if s.Expired(nowFunc(), cfg.SessionTTL()) {
		return nil, errors.NewSessionExpired(id)
	}

	return s, nil
}

func sessionOutput(s *session.Session) *SessionOutput {
	res := s.Analyze()
	out := &SessionOutput{
		SessionID: s.ID,
		Unlocked:  s.Unlocked,
		CreatedAt: s.CreatedAt,
		Snapshot:  s.Snapshot,
		Preview:   res.Preview,
	}
	if s.Unlocked {
		full := res.Full
		out.Full = &full
	}
	return out
}
