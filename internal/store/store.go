package store

import "github.com/jackc/pgx/v5/pgxpool"

// Stores bundles the persistence interfaces wired to one connection pool.
type Stores struct {
	Organizations OrganizationStore
	Admins        AdminStore
	Documents     DocumentStore
}

// New builds the Postgres-backed stores. namespace is the schema holding the
// per-organization document collections.
func New(pool *pgxpool.Pool, namespace string) *Stores {
	return &Stores{
		Organizations: newOrganizationStore(pool),
		Admins:        newAdminStore(pool),
		Documents:     newDocumentStore(pool, namespace),
	}
}
