package model

import "time"

// Organization is a tenant. Each organization owns exactly one Admin and one
// backing collection of documents, named CollectionName.
type Organization struct {
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	OrganizationName string    `json:"organization_name"`
	CollectionName   string    `json:"collection_name"`
	ID               int64     `json:"id,string"`
	AdminID          int64     `json:"admin_id,string"`
}
