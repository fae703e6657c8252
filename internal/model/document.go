package model

import (
	"encoding/json"
	"time"
)

// Document is an opaque organization-scoped record held in a backing
// collection. Body is arbitrary JSON; ID is assigned by the store and is not
// part of the body.
type Document struct {
	CreatedAt time.Time       `json:"created_at"`
	Body      json.RawMessage `json:"body"`
	ID        int64           `json:"id,string"`
}

// SeedKey marks placeholder documents written while provisioning a
// collection. Migration skips documents carrying it.
const SeedKey = "_seed"

// IsSeed reports whether the document body carries a truthy seed marker.
// A false, null, zero, or empty marker does not make a document a seed;
// such documents are ordinary tenant data.
func (d Document) IsSeed() bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(d.Body, &probe); err != nil {
		return false
	}
	raw, ok := probe[SeedKey]
	if !ok {
		return false
	}
	var marker any
	if err := json.Unmarshal(raw, &marker); err != nil {
		return false
	}
	switch v := marker.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}
