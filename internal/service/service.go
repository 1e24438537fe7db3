// Package service holds the use cases behind the HTTP surface. Every
// operation is scoped to the calling owner.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/existflow/clientpulse/internal/ingest"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
	"github.com/google/uuid"
)

// Store is the persistence the services need. *store.Store satisfies it.
type Store interface {
	CreateClient(ctx context.Context, c *model.Client) error
	GetClient(ctx context.Context, ownerID, id string) (*model.Client, error)
	ListClients(ctx context.Context, ownerID string, page store.Page) ([]*model.Client, int, error)
	GetClientsByIDs(ctx context.Context, ownerID string, ids []string) (map[string]*model.Client, error)
	DeleteClient(ctx context.Context, ownerID, id string) error

	CreateInvoice(ctx context.Context, v *model.Invoice) error
	GetInvoice(ctx context.Context, ownerID, id string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, ownerID string, page store.Page) ([]*model.Invoice, int, error)
	UpdateInvoice(ctx context.Context, v *model.Invoice) error
	DeleteInvoice(ctx context.Context, ownerID, id string) error

	CreateMeeting(ctx context.Context, v *model.Meeting) error
	GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error)
	ListMeetings(ctx context.Context, ownerID string, page store.Page) ([]*model.Meeting, int, error)
	UpdateMeeting(ctx context.Context, v *model.Meeting) error
	DeleteMeeting(ctx context.Context, ownerID, id string) error

	CreateProject(ctx context.Context, v *model.Project) error
	GetProject(ctx context.Context, ownerID, id string) (*model.Project, error)
	ListProjects(ctx context.Context, ownerID string, page store.Page) ([]*model.Project, int, error)
	UpdateProject(ctx context.Context, v *model.Project) error
	DeleteProject(ctx context.Context, ownerID, id string) error
}

var _ Store = (*store.Store)(nil)

// Service implements the record operations
type Service struct {
	store     Store
	extractor ingest.Extractor
	now       func() time.Time
	newID     func() string
}

// New builds a Service. A nil extractor uses the local parser.
func New(st Store, extractor ingest.Extractor) *Service {
	if extractor == nil {
		extractor = ingest.NewParser()
	}
	return &Service{
		store:     st,
		extractor: extractor,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetClock replaces the clock used for new records
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// storeErr maps a store failure to an application error
func storeErr(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(what)
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Upstream("storage failure", err)
}

// requireClient checks that the referenced client exists for the owner
func (s *Service) requireClient(ctx context.Context, ownerID, clientID string) (*model.Client, error) {
	c, err := s.store.GetClient(ctx, ownerID, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Validation("client does not exist")
	}
	if err != nil {
		return nil, storeErr(err, "client")
	}
	return c, nil
}

// resolveClients loads the client snapshot for each item in one query.
// Items whose client is gone keep a nil snapshot.
func resolveClients[T any](ctx context.Context, s *Service, ownerID string, items []T, clientID func(T) string, set func(T, *model.Client)) error {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if id := clientID(it); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	clients, err := s.store.GetClientsByIDs(ctx, ownerID, ids)
	if err != nil {
		return storeErr(err, "client")
	}
	for _, it := range items {
		set(it, clients[clientID(it)])
	}
	return nil
}

func logFailure(op string, err error, fields ...logger.Field) {
	if apperr.KindOf(err) == apperr.KindUpstream {
		logger.Error(op+" failed", append(fields, logger.F("error", err.Error()))...)
	}
}
