package database

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// PruneBefore deletes samples captured before t together with finished
// sessions that no longer own any sample. It returns the number of
// samples removed.
func (db *DB) PruneBefore(t time.Time) (int64, error) {
	cutoff := t.UnixMilli()

	res, err := db.Exec(`DELETE FROM samples WHERE captured_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	removed, _ := res.RowsAffected()

	deleteSessions := `
        DELETE FROM sessions
        WHERE stopped_at IS NOT NULL
        AND stopped_at < ?
        AND NOT EXISTS (SELECT 1 FROM samples WHERE samples.session_id = sessions.id)
    `
	if _, err := db.Exec(deleteSessions, cutoff); err != nil {
		return removed, fmt.Errorf("prune sessions: %w", err)
	}

	return removed, nil
}

// MaintenanceWorker prunes rows older than retention once at start and
// then every hour until ctx is done. A non-positive retention disables it.
func (db *DB) MaintenanceWorker(ctx context.Context, retention time.Duration) {
	if retention <= 0 {
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	db.performMaintenance(retention)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.performMaintenance(retention)
		}
	}
}

func (db *DB) performMaintenance(retention time.Duration) {
	removed, err := db.PruneBefore(time.Now().Add(-retention))
	if err != nil {
		log.Errorf("Journal maintenance failed: %v", err)
		return
	}
	if removed > 0 {
		log.Infof("Journal maintenance removed %d samples older than %v", removed, retention)
	}
}
