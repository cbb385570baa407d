package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/frahmantamala/employee-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := `SELECT id, email, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&creds.UserID, &creds.Email, &creds.PasswordHash, &creds.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &creds, nil
}

func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*auth.Account, error) {
	var account auth.Account
	query := `SELECT id, email, is_active FROM users WHERE id = ?`

	row := r.db.WithContext(ctx).Raw(query, id).Row()
	if err := row.Scan(&account.ID, &account.Email, &account.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
