package ops

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hpungsan/nexascope/internal/db"
	"github.com/hpungsan/nexascope/internal/intake"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// setClock pins nowFunc for the duration of the test.
func setClock(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	prev := nowFunc
	nowFunc = func() time.Time { return current }
	t.Cleanup(func() { nowFunc = prev })
	return &current
}

// rawAnswers is a two-year service business with conversations and offers
// but no sales: the strong reconsider case.
func rawAnswers() intake.RawInput {
	return intake.RawInput{
		Tenure:           "2 años",
		ActivityLevel:    "ACTIVE_WEEKLY",
		Sales90d:         0,
		Visits30d:        120,
		Conversations30d: 12,
		Offers30d:        15,
		BusinessType:     "Servicio",
		SaleFlow:         "TALK_BEFORE_CLOSE",
		OutboundLevel:    "NONE",
	}
}

func intPtr(v int) *int { return &v }
