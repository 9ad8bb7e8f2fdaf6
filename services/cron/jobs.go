package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/hackagra/mindverse-api/model"
)

// ReconcileAverageRatings re-derives senior average ratings from the review
// ledger. The request path keeps ratings consistent transactionally, so this
// normally reports zero rows; it exists to repair historical drift.
func (m *CronManager) ReconcileAverageRatings() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "reconcile_average_ratings"

	updated, err := m.reviews.ReconcileAverageRatings(ctx)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Reconciled ratings for %d seniors", updated))
}

// CleanupOCRTempFiles removes OCR temp files older than an hour. The OCR
// handler removes its own temp file per request; this catches files orphaned
// by crashes or timeouts.
func (m *CronManager) CleanupOCRTempFiles() {
	jobName := "cleanup_ocr_temp_files"

	removed, err := m.ocr.CleanupTempFiles(time.Hour)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d stale temp files", removed))
}

// PruneCronLogs deletes cron job logs older than 30 days
func (m *CronManager) PruneCronLogs() {
	jobName := "prune_cron_logs"

	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d old job logs", result.RowsAffected))
}
