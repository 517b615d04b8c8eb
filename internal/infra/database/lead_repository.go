package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/max-knopp/intellio/internal/entity"
	"github.com/max-knopp/intellio/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, user_id, org_id, person_id, contact_name, position, company,
	profile_photo_url, linkedin_url, post_url, post_content, post_date,
	ai_message, ai_comment, final_message, final_comment, relevance_score,
	status, rejection_feedback, notes, sent_at, created_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, user_id, org_id, person_id, contact_name, position, company,
			profile_photo_url, linkedin_url, post_url, post_content, post_date,
			ai_message, ai_comment, relevance_score, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.UserID,
		lead.OrgID,
		lead.PersonID,
		lead.ContactName,
		nullString(lead.Position),
		nullString(lead.Company),
		nullString(lead.ProfilePhotoURL),
		lead.LinkedinURL,
		nullString(lead.PostURL),
		nullString(lead.PostContent),
		lead.PostDate,
		lead.AIMessage,
		nullString(lead.AIComment),
		lead.RelevanceScore,
		string(lead.Status),
		lead.CreatedAt,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

// FindAllForUser returns the caller's own leads plus any lead belonging to
// an organization the caller is a member of, newest first. This mirrors the
// row-level access rule of the store.
func (r *LeadRepository) FindAllForUser(ctx context.Context, userID string) ([]entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE user_id = $1
		   OR (org_id IS NOT NULL AND org_id IN (
		       SELECT org_id FROM org_members WHERE user_id = $1))
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) FindByStatuses(ctx context.Context, statuses []entity.LeadStatus) ([]entity.Lead, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE status = ANY($1) ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(values))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// Update writes only the fields present in the partial update. sent_at is
// never part of the SET list unless a new value is supplied, so once set it
// stays set.
func (r *LeadRepository) Update(ctx context.Context, id string, fields usecase.LeadUpdate) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.FinalMessage != nil {
		add("final_message", *fields.FinalMessage)
	}
	if fields.FinalComment != nil {
		add("final_comment", *fields.FinalComment)
	}
	if fields.RejectionFeedback != nil {
		add("rejection_feedback", *fields.RejectionFeedback)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.SentAt != nil {
		add("sent_at", *fields.SentAt)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var orgID, position, company, photoURL, postURL, postContent sql.NullString
	var aiComment, finalMessage, finalComment, rejection, notes sql.NullString
	var postDate, sentAt sql.NullTime
	var score sql.NullInt64
	var status string

	err := row.Scan(
		&lead.ID,
		&lead.UserID,
		&orgID,
		&lead.PersonID,
		&lead.ContactName,
		&position,
		&company,
		&photoURL,
		&lead.LinkedinURL,
		&postURL,
		&postContent,
		&postDate,
		&lead.AIMessage,
		&aiComment,
		&finalMessage,
		&finalComment,
		&score,
		&status,
		&rejection,
		&notes,
		&sentAt,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if orgID.Valid {
		lead.OrgID = &orgID.String
	}
	lead.Position = position.String
	lead.Company = company.String
	lead.ProfilePhotoURL = photoURL.String
	lead.PostURL = postURL.String
	lead.PostContent = postContent.String
	lead.AIComment = aiComment.String
	lead.FinalMessage = finalMessage.String
	lead.FinalComment = finalComment.String
	lead.RejectionFeedback = rejection.String
	lead.Notes = notes.String
	lead.Status = entity.LeadStatus(status)
	if postDate.Valid {
		t := postDate.Time
		lead.PostDate = &t
	}
	if sentAt.Valid {
		t := sentAt.Time
		lead.SentAt = &t
	}
	if score.Valid {
		v := int(score.Int64)
		lead.RelevanceScore = &v
	}

	return &lead, nil
}

func collectLeads(rows *sql.Rows) ([]entity.Lead, error) {
	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
