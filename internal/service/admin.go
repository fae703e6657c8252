package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orghub.app/api-server/internal/auth"
	"orghub.app/api-server/internal/model"
	"orghub.app/api-server/internal/store"
)

// ErrBadCredentials covers both unknown email and wrong password so callers
// cannot enumerate accounts.
var ErrBadCredentials = errors.New("invalid credentials")

type AdminService interface {
	Authenticate(ctx context.Context, email, password string) (*model.Admin, *model.Organization, error)
}

type adminService struct {
	adminStore store.AdminStore
	orgStore   store.OrganizationStore
}

func NewAdminService(adminStore store.AdminStore, orgStore store.OrganizationStore) AdminService {
	return &adminService{
		adminStore: adminStore,
		orgStore:   orgStore,
	}
}

func (s *adminService) Authenticate(ctx context.Context, email, password string) (*model.Admin, *model.Organization, error) {
	admin, err := s.adminStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, fmt.Errorf("getting admin: %w", err)
	}

	if !auth.VerifyPassword(password, admin.Password) {
		return nil, nil, ErrBadCredentials
	}

	org, err := s.orgStore.GetByAdminID(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, fmt.Errorf("getting organization: %w", err)
	}

	slog.InfoContext(ctx, "admin authenticated",
		"admin_id", admin.ID,
		"org_id", org.ID,
	)

	return admin, org, nil
}
