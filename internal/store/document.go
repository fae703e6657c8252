package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orghub.app/api-server/common/id"
	"orghub.app/api-server/internal/model"
)

// ErrInvalidCollection is returned for collection names that do not satisfy
// the storage identifier constraints. Names produced by common.CollectionName
// always pass.
var ErrInvalidCollection = errors.New("invalid collection name")

var collectionNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// ValidCollectionName reports whether name satisfies the storage identifier
// constraints.
func ValidCollectionName(name string) bool {
	return collectionNameRe.MatchString(name)
}

type documentStore struct {
	pool      *pgxpool.Pool
	namespace string
}

func newDocumentStore(pool *pgxpool.Pool, namespace string) DocumentStore {
	return &documentStore{pool: pool, namespace: namespace}
}

func (s *documentStore) table(collection string) (string, error) {
	if !collectionNameRe.MatchString(collection) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return pgx.Identifier{s.namespace, collection}.Sanitize(), nil
}

func (s *documentStore) Ensure(ctx context.Context, collection string) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY,
			body JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table))
	return err
}

func (s *documentStore) Drop(ctx context.Context, collection string) error {
	table, err := s.table(collection)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table))
	return err
}

func (s *documentStore) Exists(ctx context.Context, collection string) (bool, error) {
	if !collectionNameRe.MatchString(collection) {
		return false, fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`, s.namespace, collection).Scan(&exists)
	return exists, err
}

func (s *documentStore) Insert(ctx context.Context, collection string, body json.RawMessage) (*model.Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:   id.New(),
		Body: body,
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, body) VALUES ($1, $2) RETURNING created_at`, table),
		doc.ID, doc.Body)
	if err := row.Scan(&doc.CreatedAt); err != nil {
		return nil, translateMissing(err)
	}
	return doc, nil
}

func (s *documentStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT id, body, created_at FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, translateMissing(err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.Body, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *documentStore) Count(ctx context.Context, collection string) (int64, error) {
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&count)
	return count, translateMissing(err)
}
