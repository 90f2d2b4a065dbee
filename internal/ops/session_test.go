package ops

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hpungsan/nexascope/internal/config"
	"github.com/hpungsan/nexascope/internal/db"
	"github.com/hpungsan/nexascope/internal/diagnosis"
	"github.com/hpungsan/nexascope/internal/errors"
)

func TestStartSession_Locked(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	out, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if out.SessionID == "" {
		t.Fatal("SessionID should be set")
	}
	if out.Unlocked {
		t.Error("new session should be locked")
	}
	if out.Full != nil {
		t.Error("locked session must not expose the full diagnosis")
	}
	if out.Preview != diagnosis.PreviewFor(diagnosis.CodeStrongReconsider) {
		t.Errorf("Preview = %+v", out.Preview)
	}

	stored, err := db.GetSession(ctx, database, out.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if stored.Snapshot != out.Snapshot {
		t.Errorf("stored snapshot = %+v, want %+v", stored.Snapshot, out.Snapshot)
	}
}

func TestStartSession_InvalidInputStoresNothing(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	raw := rawAnswers()
	raw.Tenure = "un rato"
	_, err := StartSession(ctx, database, config.DefaultConfig(), StartSessionInput{Raw: raw})
	if !errors.Is(err, errors.ErrInvalidDuration) {
		t.Fatalf("StartSession() error = %v, want INVALID_DURATION", err)
	}

	n, err := db.CountSessions(ctx, database)
	if err != nil {
		t.Fatalf("CountSessions() error = %v", err)
	}
	if n != 0 {
		t.Errorf("sessions stored = %d, want 0", n)
	}
}

func TestViewAndUnlockSession(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	started, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	ref := SessionRef{ID: started.SessionID}

	viewed, err := ViewSession(ctx, database, cfg, ref)
	if err != nil {
		t.Fatalf("ViewSession() error = %v", err)
	}
	if viewed.Unlocked || viewed.Full != nil {
		t.Error("view before unlock should only show the preview")
	}

	unlocked, err := UnlockSession(ctx, database, cfg, ref)
	if err != nil {
		t.Fatalf("UnlockSession() error = %v", err)
	}
	if !unlocked.Unlocked || unlocked.Full == nil {
		t.Fatal("unlock should return the full diagnosis")
	}
	if unlocked.Full.Code != diagnosis.CodeStrongReconsider {
		t.Errorf("Code = %s, want %s", unlocked.Full.Code, diagnosis.CodeStrongReconsider)
	}

	// Unlock is idempotent.
	if _, err := UnlockSession(ctx, database, cfg, ref); err != nil {
		t.Fatalf("second UnlockSession() error = %v", err)
	}

	viewed, err = ViewSession(ctx, database, cfg, ref)
	if err != nil {
		t.Fatalf("ViewSession() error = %v", err)
	}
	if !viewed.Unlocked || viewed.Full == nil {
		t.Error("view after unlock should include the full diagnosis")
	}
}

func TestStartSession_NewAnalysisIsLockedAgain(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	first, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := UnlockSession(ctx, database, cfg, SessionRef{ID: first.SessionID}); err != nil {
		t.Fatalf("UnlockSession() error = %v", err)
	}

	second, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if second.SessionID == first.SessionID {
		t.Error("each analysis should get its own session")
	}
	if second.Unlocked {
		t.Error("a new analysis must start locked")
	}
}

func TestViewSession_Errors(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	if _, err := ViewSession(ctx, database, cfg, SessionRef{ID: ""}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty id error = %v, want INVALID_REQUEST", err)
	}
	if _, err := ViewSession(ctx, database, cfg, SessionRef{ID: "01MISSING"}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing id error = %v, want NOT_FOUND", err)
	}
	if _, err := UnlockSession(ctx, database, cfg, SessionRef{ID: "01MISSING"}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unlock missing id error = %v, want NOT_FOUND", err)
	}
}

func TestSession_Expired(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	clock := setClock(t, time.Unix(1_700_000_000, 0))
	started, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	*clock = clock.Add(cfg.SessionTTL() + time.Minute)

	ref := SessionRef{ID: started.SessionID}
	if _, err := ViewSession(ctx, database, cfg, ref); !errors.Is(err, errors.ErrSessionExpired) {
		t.Errorf("ViewSession() error = %v, want SESSION_EXPIRED", err)
	}
	if _, err := UnlockSession(ctx, database, cfg, ref); !errors.Is(err, errors.ErrSessionExpired) {
		t.Errorf("UnlockSession() error = %v, want SESSION_EXPIRED", err)
	}
}

func TestSessionReport(t *testing.T) {
	database := setupTestDB(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	started, err := StartSession(ctx, database, cfg, StartSessionInput{Raw: rawAnswers()})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	ref := SessionRef{ID: started.SessionID}

	if _, err := SessionReport(ctx, database, cfg, ref); !errors.Is(err, errors.ErrSessionLocked) {
		t.Fatalf("SessionReport() on locked session error = %v, want SESSION_LOCKED", err)
	}

	unlocked, err := UnlockSession(ctx, database, cfg, ref)
	if err != nil {
		t.Fatalf("UnlockSession() error = %v", err)
	}

	out, err := SessionReport(ctx, database, cfg, ref)
	if err != nil {
		t.Fatalf("SessionReport() error = %v", err)
	}
	if !strings.Contains(out.Markdown, unlocked.Full.Headline) {
		t.Errorf("report missing headline %q", unlocked.Full.Headline)
	}
	if !strings.Contains(out.Markdown, diagnosis.PreviewTitle) {
		t.Error("report should start with the preview")
	}
}
