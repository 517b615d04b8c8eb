package database

import (
	"context"
	"database/sql"
)

type OrgMemberRepository struct {
	DB *sql.DB
}

func NewOrgMemberRepository(db *sql.DB) *OrgMemberRepository {
	return &OrgMemberRepository{DB: db}
}

func (r *OrgMemberRepository) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM org_members WHERE org_id = $1 AND user_id = $2)`,
		orgID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
