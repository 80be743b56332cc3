package syncx_test

import (
	"context"
	"testing"

	"github.com/knolage/knolage/internal/db"
	syncx "github.com/knolage/knolage/internal/sync"
)

func TestAppend(t *testing.T) {
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:eventlog_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer dbh.Close()

	repo := syncx.NewEventRepo(dbh)
	e := syncx.Event{
		Type:     syncx.TypeAttemptRecorded,
		Key:      "42",
		DataJSON: `{"test_id":"t1","score":2,"max_score":3}`,
	}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	var n int
	var siteID string
	if err := dbh.QueryRow(
		`SELECT COUNT(*), MAX(site_id) FROM event_log WHERE typ=$1 AND key=$2`,
		syncx.TypeAttemptRecorded, "42").Scan(&n, &siteID); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("event rows = %d", n)
	}
	if siteID != "local" {
		t.Fatalf("site_id default = %q", siteID)
	}
}
