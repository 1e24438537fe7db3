package store

import (
	"context"

	"github.com/existflow/clientpulse/internal/model"
)

const tableClients = "clients"

// CreateClient inserts a client document
func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	return insertDoc(ctx, s, tableClients, docMeta{
		id:        c.ID,
		ownerID:   c.OwnerID,
		createdAt: c.CreatedAt,
		updatedAt: c.UpdatedAt,
	}, c)
}

// GetClient returns the owner's client or ErrNotFound
func (s *Store) GetClient(ctx context.Context, ownerID, id string) (*model.Client, error) {
	return getDoc[model.Client](ctx, s, tableClients, ownerID, id)
}

// ListClients returns a page of the owner's clients and the total count
func (s *Store) ListClients(ctx context.Context, ownerID string, page Page) ([]*model.Client, int, error) {
	return listDocs[model.Client](ctx, s, tableClients, ownerID, page)
}

// GetClientsByIDs returns the owner's clients keyed by id. Unknown ids are skipped.
func (s *Store) GetClientsByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*model.Client, error) {
	clients, err := docsByIDs[model.Client](ctx, s, tableClients, ownerID, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.Client, len(clients))
	for _, c := range clients {
		out[c.ID] = c
	}
	return out, nil
}

// DeleteClient removes a client. Records referencing it are left as they are.
func (s *Store) DeleteClient(ctx context.Context, ownerID, id string) error {
	return deleteDoc(ctx, s, tableClients, ownerID, id)
}
