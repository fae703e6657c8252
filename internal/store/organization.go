package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orghub.app/api-server/internal/model"
)

type organizationStore struct {
	pool *pgxpool.Pool
}

func newOrganizationStore(pool *pgxpool.Pool) OrganizationStore {
	return &organizationStore{pool: pool}
}

const organizationColumns = `id, organization_name, collection_name, admin_id, created_at, updated_at`

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE organization_name = $1`, name)
	return scanOrganization(row)
}

func (s *organizationStore) GetByAdminID(ctx context.Context, adminID int64) (*model.Organization, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE admin_id = $1`, adminID)
	return scanOrganization(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO organizations (id, organization_name, collection_name, admin_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		org.ID, org.OrganizationName, org.CollectionName, org.AdminID)
	if err := row.Scan(&org.CreatedAt, &org.UpdatedAt); err != nil {
		return translateConflict(err)
	}
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.pool.QueryRow(ctx,
		`UPDATE organizations
		 SET organization_name = $2, collection_name = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		org.ID, org.OrganizationName, org.CollectionName)
	if err := row.Scan(&org.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return translateConflict(err)
	}
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(
		&org.ID,
		&org.OrganizationName,
		&org.CollectionName,
		&org.AdminID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}
