package store

import (
	"context"
	"encoding/json"
	"errors"

	"orghub.app/api-server/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetByName(ctx context.Context, name string) (*model.Organization, error)
	GetByAdminID(ctx context.Context, adminID int64) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error
}

type AdminStore interface {
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id int64) error
}

// DocumentStore manages the dynamically named per-organization backing
// collections. Collection names must already come out of the naming rules;
// the store still quotes every identifier before use.
type DocumentStore interface {
	// Ensure provisions the collection. It is idempotent and the collection
	// is ready to receive documents once it returns.
	Ensure(ctx context.Context, collection string) error
	Drop(ctx context.Context, collection string) error
	Exists(ctx context.Context, collection string) (bool, error)
	Insert(ctx context.Context, collection string, body json.RawMessage) (*model.Document, error)
	List(ctx context.Context, collection string) ([]model.Document, error)
	Count(ctx context.Context, collection string) (int64, error)
}
