package store

import (
	"context"

	"github.com/existflow/clientpulse/internal/model"
)

const tableInvoices = "invoices"

// CreateInvoice inserts a invoice document
func (s *Store) CreateInvoice(ctx context.Context, v *model.Invoice) error {
	return insertDoc(ctx, s, tableInvoices, invoiceMeta(v), strippedInvoice(v))
}

// GetInvoice returns the owner's invoice or ErrNotFound
func (s *Store) GetInvoice(ctx context.Context, ownerID, id string) (*model.Invoice, error) {
	return getDoc[model.Invoice](ctx, s, tableInvoices, ownerID, id)
}

// ListInvoices returns a page of the owner's invoices and the total count
func (s *Store) ListInvoices(ctx context.Context, ownerID string, page Page) ([]*model.Invoice, int, error) {
	return listDocs[model.Invoice](ctx, s, tableInvoices, ownerID, page)
}

// UpdateInvoice replaces the stored document, returning ErrNotFound if it is gone.
// Every save moves v.UpdatedAt strictly forward.
func (s *Store) UpdateInvoice(ctx context.Context, v *model.Invoice) error {
	v.UpdatedAt = model.NextUpdate(v.UpdatedAt, s.now())
	return replaceDoc(ctx, s, tableInvoices, invoiceMeta(v), strippedInvoice(v))
}

// DeleteInvoice removes a invoice; a missing invoice is not an error
func (s *Store) DeleteInvoice(ctx context.Context, ownerID, id string) error {
	return deleteDoc(ctx, s, tableInvoices, ownerID, id)
}

func invoiceMeta(v *model.Invoice) docMeta {
	return docMeta{
		id:        v.ID,
		ownerID:   v.OwnerID,
		clientID:  v.ClientID,
		createdAt: v.CreatedAt,
		updatedAt: v.UpdatedAt,
	}
}

// strippedInvoice drops the resolved client snapshot, which is never stored
func strippedInvoice(v *model.Invoice) *model.Invoice {
	doc := *v
	doc.Client = nil
	return &doc
}
