package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"orghub.app/api-server/common"
	"orghub.app/api-server/common/id"
	"orghub.app/api-server/internal/auth"
	"orghub.app/api-server/internal/model"
	"orghub.app/api-server/internal/store"
)

var (
	ErrOrgNotFound  = errors.New("organization not found")
	ErrNameTaken    = errors.New("organization name already exists")
	ErrEmailTaken   = errors.New("admin email already in use")
	ErrNotOwner     = errors.New("not authorized for this organization")
	ErrAdminMissing = errors.New("admin record missing")
)

// OrganizationRecord is the composed view of an organization returned to
// callers. AdminEmail is empty when the admin reference dangles.
type OrganizationRecord struct {
	OrganizationName string
	CollectionName   string
	AdminEmail       string
	ID               int64
}

// UpdateOrganizationParams carries the optional mutations of an update. Nil
// fields are left untouched.
type UpdateOrganizationParams struct {
	NewName         *string
	Email           *string
	Password        *string
	CurrentName     string
	RequestingOrgID int64
}

type OrganizationService interface {
	Create(ctx context.Context, name, email, password string) (*OrganizationRecord, error)
	GetByName(ctx context.Context, name string) (*OrganizationRecord, error)
	Update(ctx context.Context, params UpdateOrganizationParams) error
	Delete(ctx context.Context, name string, requestingOrgID int64) error
	InsertDocument(ctx context.Context, orgID int64, body json.RawMessage) (*model.Document, error)
	ListDocuments(ctx context.Context, orgID int64) ([]model.Document, error)
}

type organizationService struct {
	orgStore   store.OrganizationStore
	adminStore store.AdminStore
	docStore   store.DocumentStore
}

func NewOrganizationService(
	orgStore store.OrganizationStore,
	adminStore store.AdminStore,
	docStore store.DocumentStore,
) OrganizationService {
	return &organizationService{
		orgStore:   orgStore,
		adminStore: adminStore,
		docStore:   docStore,
	}
}

func (s *organizationService) Create(ctx context.Context, name, email, password string) (*OrganizationRecord, error) {
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}

	collection, err := common.CollectionName(name)
	if err != nil {
		return nil, fmt.Errorf("deriving collection name: %w", err)
	}

	exists, err := s.docStore.Exists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("checking collection %q: %w", collection, err)
	}
	if exists {
		return nil, ErrNameTaken
	}

	if err := s.docStore.Ensure(ctx, collection); err != nil {
		return nil, fmt.Errorf("provisioning collection %q: %w", collection, err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	admin := &model.Admin{
		ID:       id.New(),
		Email:    email,
		Password: hashed,
		Role:     model.RoleAdmin,
	}
	if err := s.adminStore.Create(ctx, admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	org := &model.Organization{
		ID:               id.New(),
		OrganizationName: name,
		CollectionName:   collection,
		AdminID:          admin.ID,
	}
	if err := s.orgStore.Create(ctx, org); err != nil {
		// The unique indexes also catch distinct names whose slugs collide.
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created",
		"org_id", org.ID,
		"organization_name", org.OrganizationName,
		"collection_name", org.CollectionName,
	)

	return &OrganizationRecord{
		ID:               org.ID,
		OrganizationName: org.OrganizationName,
		CollectionName:   org.CollectionName,
		AdminEmail:       admin.Email,
	}, nil
}

func (s *organizationService) GetByName(ctx context.Context, name string) (*OrganizationRecord, error) {
	org, err := s.orgStore.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	record := &OrganizationRecord{
		ID:               org.ID,
		OrganizationName: org.OrganizationName,
		CollectionName:   org.CollectionName,
	}

	// A dangling admin reference is tolerated here; the email just stays
	// empty.
	admin, err := s.adminStore.GetByID(ctx, org.AdminID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	if admin != nil {
		record.AdminEmail = admin.Email
	}

	return record, nil
}

func (s *organizationService) Update(ctx context.Context, params UpdateOrganizationParams) error {
	org, err := s.orgStore.GetByName(ctx, params.CurrentName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrgNotFound
		}
		return fmt.Errorf("getting organization: %w", err)
	}

	if org.ID != params.RequestingOrgID {
		return ErrNotOwner
	}

	renamed := false
	if params.NewName != nil && *params.NewName != "" && *params.NewName != params.CurrentName {
		if err := s.ensureNameFree(ctx, *params.NewName); err != nil {
			return err
		}
		if err := s.migrateCollection(ctx, org, *params.NewName); err != nil {
			return err
		}
		renamed = true
	}

	admin, err := s.adminStore.GetByID(ctx, org.AdminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAdminMissing
		}
		return fmt.Errorf("getting admin: %w", err)
	}

	adminChanged := false
	if params.Email != nil && *params.Email != "" {
		admin.Email = *params.Email
		adminChanged = true
	}
	if params.Password != nil && *params.Password != "" {
		hashed, err := auth.HashPassword(*params.Password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		admin.Password = hashed
		adminChanged = true
	}
	if adminChanged {
		if err := s.adminStore.Update(ctx, admin); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrEmailTaken
			}
			return fmt.Errorf("updating admin: %w", err)
		}
	}

	if renamed {
		if err := s.orgStore.Update(ctx, org); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrNameTaken
			}
			return fmt.Errorf("updating organization: %w", err)
		}
		slog.InfoContext(ctx, "organization renamed",
			"org_id", org.ID,
			"organization_name", org.OrganizationName,
			"collection_name", org.CollectionName,
		)
	}

	return nil
}

// migrateCollection moves the backing collection to the name derived from
// newName: every non-seed document is copied with a fresh identity, then the
// old collection is dropped. Only afterwards does the organization record
// (held in memory here) point at the new collection; persisting it is the
// caller's last step. A crash between the drop and that persist strands the
// record on the dropped collection, see DESIGN.md.
func (s *organizationService) migrateCollection(ctx context.Context, org *model.Organization, newName string) error {
	newCollection, err := common.CollectionName(newName)
	if err != nil {
		return fmt.Errorf("deriving collection name: %w", err)
	}

	if newCollection != org.CollectionName {
		// Distinct names can slug to the same identifier; never migrate into
		// a collection some other organization already owns.
		exists, err := s.docStore.Exists(ctx, newCollection)
		if err != nil {
			return fmt.Errorf("checking collection %q: %w", newCollection, err)
		}
		if exists {
			return ErrNameTaken
		}

		if err := s.docStore.Ensure(ctx, newCollection); err != nil {
			return fmt.Errorf("provisioning collection %q: %w", newCollection, err)
		}

		docs, err := s.docStore.List(ctx, org.CollectionName)
		if err != nil {
			return fmt.Errorf("listing documents of %q: %w", org.CollectionName, err)
		}

		copied := 0
		for _, doc := range docs {
			if doc.IsSeed() {
				continue
			}
			if _, err := s.docStore.Insert(ctx, newCollection, doc.Body); err != nil {
				return fmt.Errorf("copying document %d: %w", doc.ID, err)
			}
			copied++
		}

		if err := s.docStore.Drop(ctx, org.CollectionName); err != nil {
			return fmt.Errorf("dropping collection %q: %w", org.CollectionName, err)
		}

		slog.InfoContext(ctx, "collection migrated",
			"org_id", org.ID,
			"from", org.CollectionName,
			"to", newCollection,
			"documents", copied,
		)
	}

	org.OrganizationName = newName
	org.CollectionName = newCollection
	return nil
}

func (s *organizationService) Delete(ctx context.Context, name string, requestingOrgID int64) error {
	org, err := s.orgStore.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrgNotFound
		}
		return fmt.Errorf("getting organization: %w", err)
	}

	if org.ID != requestingOrgID {
		return ErrNotOwner
	}

	if err := s.docStore.Drop(ctx, org.CollectionName); err != nil {
		return fmt.Errorf("dropping collection %q: %w", org.CollectionName, err)
	}

	if err := s.adminStore.Delete(ctx, org.AdminID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("deleting admin: %w", err)
	}

	if err := s.orgStore.Delete(ctx, org.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("deleting organization: %w", err)
	}

	slog.InfoContext(ctx, "organization deleted",
		"org_id", org.ID,
		"organization_name", org.OrganizationName,
	)

	return nil
}

func (s *organizationService) InsertDocument(ctx context.Context, orgID int64, body json.RawMessage) (*model.Document, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	doc, err := s.docStore.Insert(ctx, org.CollectionName, body)
	if err != nil {
		// The collection can vanish under a concurrent rename or delete.
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	return doc, nil
}

func (s *organizationService) ListDocuments(ctx context.Context, orgID int64) ([]model.Document, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	docs, err := s.docStore.List(ctx, org.CollectionName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

func (s *organizationService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.orgStore.GetByName(ctx, name)
	if err == nil {
		return ErrNameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking name availability: %w", err)
	}
	return nil
}
