package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orghub.app/api-server/internal/model"
)

type adminStore struct {
	pool *pgxpool.Pool
}

func newAdminStore(pool *pgxpool.Pool) AdminStore {
	return &adminStore{pool: pool}
}

const adminColumns = `id, email, password, role, created_at, updated_at`

func (s *adminStore) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func (s *adminStore) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

func (s *adminStore) Create(ctx context.Context, admin *model.Admin) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO admins (id, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		admin.ID, admin.Email, admin.Password, admin.Role)
	if err := row.Scan(&admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return translateConflict(err)
	}
	return nil
}

func (s *adminStore) Update(ctx context.Context, admin *model.Admin) error {
	row := s.pool.QueryRow(ctx,
		`UPDATE admins
		 SET email = $2, password = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		admin.ID, admin.Email, admin.Password)
	if err := row.Scan(&admin.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return translateConflict(err)
	}
	return nil
}

func (s *adminStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	var admin model.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.Password,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
