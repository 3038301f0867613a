package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amanops/fieldforce/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, mobile, hrid, role, territory, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID,
		u.Name,
		u.Mobile,
		u.HRID,
		string(u.Role),
		u.Territory,
		string(u.Status),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, mobile, hrid, role, territory, status
         FROM users
         WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Mobile, &u.HRID, &u.Role, &u.Territory, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, mobile, hrid, role, territory, status
         FROM users
         ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Mobile, &u.HRID, &u.Role, &u.Territory, &u.Status); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepo) SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`UPDATE users
         SET status = $2,
             updated_at = now()
         WHERE id = $1
         RETURNING id, name, mobile, hrid, role, territory, status`,
		id, string(status),
	).Scan(&u.ID, &u.Name, &u.Mobile, &u.HRID, &u.Role, &u.Territory, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("set user status: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) ExistsByHRID(ctx context.Context, hrid string) (bool, error) {
	var dummy int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE hrid = $1`,
		hrid,
	).Scan(&dummy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check hrid exists: %w", err)
	}
	return true, nil
}
