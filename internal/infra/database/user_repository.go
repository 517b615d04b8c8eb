package database

import (
	"context"
	"database/sql"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindIDByEmail resolves the target account for inbound leads.
func (r *UserRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
