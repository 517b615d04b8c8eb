package database

import (
	"context"
	"database/sql"

	"github.com/max-knopp/intellio/internal/entity"
)

type DigestLogRepository struct {
	DB *sql.DB
}

func NewDigestLogRepository(db *sql.DB) *DigestLogRepository {
	return &DigestLogRepository{DB: db}
}

// AlreadySent reports whether a digest row exists for the given calendar
// date. This is the idempotency guard against duplicate daily sends.
func (r *DigestLogRepository) AlreadySent(ctx context.Context, summaryDate string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM daily_summary_log WHERE summary_date = $1)`,
		summaryDate,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *DigestLogRepository) Record(ctx context.Context, log *entity.DigestLog) error {
	query := `
		INSERT INTO daily_summary_log (
			id, summary_date, hot_leads, warm_leads, total_actionable,
			webhook_status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (summary_date) DO NOTHING
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		log.ID,
		log.SummaryDate,
		log.HotLeads,
		log.WarmLeads,
		log.TotalActionable,
		log.WebhookStatus,
		log.CreatedAt,
	)
	return err
}
