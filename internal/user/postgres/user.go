package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/jmoiron/sqlx"
)

func NewPostgresRepo(db *sqlx.DB) user.Repository {
	return &pgRepo{db: db}
}

type pgRepo struct {
	db *sqlx.DB
}

func (p *pgRepo) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	query := `SELECT id, email, name, password_hash, is_active, created_at, updated_at FROM users WHERE id = $1`
	if err := p.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}
