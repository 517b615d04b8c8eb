package database

import (
	"context"
	"database/sql"

	"github.com/max-knopp/intellio/internal/entity"
)

type DispatchLogRepository struct {
	DB *sql.DB
}

func NewDispatchLogRepository(db *sql.DB) *DispatchLogRepository {
	return &DispatchLogRepository{DB: db}
}

func (r *DispatchLogRepository) Insert(ctx context.Context, log *entity.DispatchLog) error {
	query := `
		INSERT INTO dispatch_logs (
			id, user_id, lead_id, request_payload, response_status,
			response_body, success, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		log.ID,
		log.UserID,
		log.LeadID,
		log.RequestPayload,
		log.ResponseStatus,
		nullString(log.ResponseBody),
		log.Success,
		nullString(log.ErrorMessage),
		log.CreatedAt,
	)
	return err
}
