package service

import (
	"context"
	"errors"

	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
)

// ListInvoices returns a page of invoices with client snapshots
func (s *Service) ListInvoices(ctx context.Context, ownerID string, page store.Page) ([]*model.Invoice, int, error) {
	invoices, total, err := s.store.ListInvoices(ctx, ownerID, page)
	if err != nil {
		return nil, 0, storeErr(err, "invoice")
	}
	err = resolveClients(ctx, s, ownerID, invoices,
		func(v *model.Invoice) string { return v.ClientID },
		func(v *model.Invoice, c *model.Client) { v.Client = c },
	)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// CreateInvoice validates and stores an invoice for an existing client
func (s *Service) CreateInvoice(ctx context.Context, ownerID string, in model.InvoiceInput) (*model.Invoice, error) {
	inv, err := model.NewInvoice(s.newID(), ownerID, in, s.now())
	if err != nil {
		return nil, err
	}
	client, err := s.requireClient(ctx, ownerID, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		err = storeErr(err, "invoice")
		logFailure("create invoice", err, logger.F("owner", ownerID))
		return nil, err
	}
	inv.Client = client

	logger.Info("Invoice created", logger.F("id", inv.ID), logger.F("owner", ownerID), logger.F("amount", inv.Amount))
	return inv, nil
}

// MarkInvoicePaid sets an existing invoice to Paid. Projects are not touched.
func (s *Service) MarkInvoicePaid(ctx context.Context, ownerID, id string) (*model.Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, ownerID, id)
	if err != nil {
		return nil, storeErr(err, "invoice")
	}
	inv.MarkPaid()
	if err := s.store.UpdateInvoice(ctx, inv); err != nil {
		err = storeErr(err, "invoice")
		logFailure("mark invoice paid", err, logger.F("id", id))
		return nil, err
	}
	c, err := s.store.GetClient(ctx, ownerID, inv.ClientID)
	switch {
	case err == nil:
		inv.Client = c
	case !errors.Is(err, store.ErrNotFound):
		return nil, storeErr(err, "client")
	}

	logger.Info("Invoice paid", logger.F("id", id), logger.F("owner", ownerID))
	return inv, nil
}

// DeleteInvoice removes an invoice. Unknown ids succeed.
func (s *Service) DeleteInvoice(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteInvoice(ctx, ownerID, id); err != nil {
		return storeErr(err, "invoice")
	}
	return nil
}
