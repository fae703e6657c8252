package common

import (
	"fmt"
	"strings"
)

// maxSlugLen keeps derived identifiers inside the 63-byte Postgres
// identifier limit, leaving room for the collection prefix.
const maxSlugLen = 58

const collectionPrefix = "org_"

// Slugify normalizes a human-supplied name into a storage-safe token:
// lowercased, trimmed, spaces become underscores, everything outside
// [a-z0-9_] is stripped. If nothing survives, fallback is returned.
// Slugify is idempotent.
func Slugify(input string, fallback string) (string, error) {
	if fallback == "" || fallback != sanitize(fallback) {
		return "", fmt.Errorf("invalid slug fallback %q", fallback)
	}

	slug := sanitize(input)
	if slug == "" {
		slug = fallback
	}
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug, nil
}

// CollectionName derives the backing collection identifier for an
// organization name. The same input always yields the same identifier.
func CollectionName(orgName string) (string, error) {
	slug, err := Slugify(orgName, "org")
	if err != nil {
		return "", err
	}
	return collectionPrefix + slug, nil
}

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
