package service

import (
	"context"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/existflow/clientpulse/internal/ingest"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
)

// ListClients returns a page of clients and the owner's total
func (s *Service) ListClients(ctx context.Context, ownerID string, page store.Page) ([]*model.Client, int, error) {
	clients, total, err := s.store.ListClients(ctx, ownerID, page)
	if err != nil {
		return nil, 0, storeErr(err, "client")
	}
	return clients, total, nil
}

// CreateClient validates and stores a client. Server-owned fields in the
// input are ignored.
func (s *Service) CreateClient(ctx context.Context, ownerID string, in model.Client) (*model.Client, error) {
	c := s.stampClient(ownerID, in)
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateClient(ctx, c); err != nil {
		err = storeErr(err, "client")
		logFailure("create client", err, logger.F("owner", ownerID))
		return nil, err
	}
	logger.Info("Client created", logger.F("id", c.ID), logger.F("owner", ownerID), logger.F("platform", c.Platform))
	return c, nil
}

// DeleteClient removes a client. Projects, invoices and meetings keep their
// reference and resolve it to nothing.
func (s *Service) DeleteClient(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteClient(ctx, ownerID, id); err != nil {
		return storeErr(err, "client")
	}
	return nil
}

// IngestClient extracts a profile from an unstructured source and stores it
// as a client. Any failure along the way is reported as an upstream error and
// nothing is stored.
func (s *Service) IngestClient(ctx context.Context, ownerID string, kind ingest.Kind, payload string) (*model.Client, error) {
	raw, err := s.extractor.Extract(ctx, kind, payload)
	if err != nil {
		logger.Warn("Client extraction failed",
			logger.F("kind", string(kind)),
			logger.F("owner", ownerID),
			logger.F("error", err.Error()))
		return nil, apperr.Upstream("could not extract a client from the "+string(kind)+" source", err)
	}

	c := s.stampClient(ownerID, ingest.Normalize(*raw))
	if err := c.Validate(); err != nil {
		return nil, apperr.Upstream("extracted client is invalid", err)
	}
	if err := s.store.CreateClient(ctx, c); err != nil {
		err = apperr.Upstream("storage failure", err)
		logFailure("ingest client", err, logger.F("kind", string(kind)))
		return nil, err
	}

	logger.Info("Client ingested",
		logger.F("id", c.ID),
		logger.F("owner", ownerID),
		logger.F("kind", string(kind)))
	return c, nil
}

func (s *Service) stampClient(ownerID string, in model.Client) *model.Client {
	c := in
	c.ID = s.newID()
	c.OwnerID = ownerID
	c.CreatedAt = model.Stamp(s.now())
	c.UpdatedAt = c.CreatedAt
	return &c
}
