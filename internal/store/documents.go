package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Page selects a window of a list, ordered by creation time
type Page struct {
	Limit  int
	Offset int
}

// Page bounds
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize applies default and maximum limits
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// docMeta holds the scalar columns stored next to a document
type docMeta struct {
	id        string
	ownerID   string
	clientID  string
	createdAt time.Time
	updatedAt time.Time
}

func micros(t time.Time) int64 {
	return t.UnixMicro()
}

func insertDoc(ctx context.Context, s *Store, table string, m docMeta, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", table, err)
	}
	_, err = s.exec(ctx,
		`INSERT INTO `+table+` (id, owner_id, client_id, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.id, m.ownerID, m.clientID, micros(m.createdAt), micros(m.updatedAt), string(data),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func replaceDoc(ctx context.Context, s *Store, table string, m docMeta, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", table, err)
	}
	res, err := s.exec(ctx,
		`UPDATE `+table+` SET client_id = ?, updated_at = ?, doc = ?
		WHERE id = ? AND owner_id = ?`,
		m.clientID, micros(m.updatedAt), string(data), m.id, m.ownerID,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func getDoc[T any](ctx context.Context, s *Store, table, ownerID, id string) (*T, error) {
	var data []byte
	err := s.queryRow(ctx,
		`SELECT doc FROM `+table+` WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", table, err)
	}
	return &v, nil
}

func listDocs[T any](ctx context.Context, s *Store, table, ownerID string, page Page) ([]*T, int, error) {
	page = page.Normalize()

	var total int
	if err := s.queryRow(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE owner_id = ?`, ownerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	rows, err := s.query(ctx,
		`SELECT doc FROM `+table+` WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		ownerID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", table, err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, 0, fmt.Errorf("decode %s document: %w", table, err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	return out, total, nil
}

// deleteDoc removes a document. Missing documents are not an error.
func deleteDoc(ctx context.Context, s *Store, table, ownerID, id string) error {
	if _, err := s.exec(ctx,
		`DELETE FROM `+table+` WHERE id = ? AND owner_id = ?`, id, ownerID,
	); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func docsByIDs[T any](ctx context.Context, s *Store, table, ownerID string, ids []string) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")

	rows, err := s.query(ctx,
		`SELECT doc FROM `+table+` WHERE owner_id = ? AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("get %s by ids: %w", table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", table, err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
