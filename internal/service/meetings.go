package service

import (
	"context"

	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
)

// ListMeetings returns a page of meetings with client snapshots
func (s *Service) ListMeetings(ctx context.Context, ownerID string, page store.Page) ([]*model.Meeting, int, error) {
	meetings, total, err := s.store.ListMeetings(ctx, ownerID, page)
	if err != nil {
		return nil, 0, storeErr(err, "meeting")
	}
	if err := s.attachMeetingClients(ctx, ownerID, meetings...); err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// CreateMeeting validates and stores a meeting for an existing client
func (s *Service) CreateMeeting(ctx context.Context, ownerID string, in model.MeetingInput) (*model.Meeting, error) {
	m, err := model.NewMeeting(s.newID(), ownerID, in, s.now())
	if err != nil {
		return nil, err
	}
	client, err := s.requireClient(ctx, ownerID, m.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateMeeting(ctx, m); err != nil {
		err = storeErr(err, "meeting")
		logFailure("create meeting", err, logger.F("owner", ownerID))
		return nil, err
	}
	m.Client = client

	logger.Info("Meeting created", logger.F("id", m.ID), logger.F("owner", ownerID), logger.F("recurring", m.Recurring))
	return m, nil
}

// UpdateMeeting merges the patch into an existing meeting
func (s *Service) UpdateMeeting(ctx context.Context, ownerID, id string, patch model.MeetingPatch) (*model.Meeting, error) {
	m, err := s.store.GetMeeting(ctx, ownerID, id)
	if err != nil {
		return nil, storeErr(err, "meeting")
	}
	prevClient := m.ClientID
	if err := m.Apply(patch); err != nil {
		return nil, err
	}
	if m.ClientID != prevClient {
		if _, err := s.requireClient(ctx, ownerID, m.ClientID); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateMeeting(ctx, m); err != nil {
		err = storeErr(err, "meeting")
		logFailure("update meeting", err, logger.F("id", id))
		return nil, err
	}
	if err := s.attachMeetingClients(ctx, ownerID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMeeting removes a meeting. Unknown ids succeed.
func (s *Service) DeleteMeeting(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteMeeting(ctx, ownerID, id); err != nil {
		return storeErr(err, "meeting")
	}
	return nil
}

func (s *Service) attachMeetingClients(ctx context.Context, ownerID string, meetings ...*model.Meeting) error {
	return resolveClients(ctx, s, ownerID, meetings,
		func(m *model.Meeting) string { return m.ClientID },
		func(m *model.Meeting, c *model.Client) { m.Client = c },
	)
}
