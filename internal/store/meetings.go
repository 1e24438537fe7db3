package store

import (
	"context"

	"github.com/existflow/clientpulse/internal/model"
)

const tableMeetings = "meetings"

// CreateMeeting inserts a meeting document
func (s *Store) CreateMeeting(ctx context.Context, v *model.Meeting) error {
	return insertDoc(ctx, s, tableMeetings, meetingMeta(v), strippedMeeting(v))
}

// GetMeeting returns the owner's meeting or ErrNotFound
func (s *Store) GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error) {
	return getDoc[model.Meeting](ctx, s, tableMeetings, ownerID, id)
}

// ListMeetings returns a page of the owner's meetings and the total count
func (s *Store) ListMeetings(ctx context.Context, ownerID string, page Page) ([]*model.Meeting, int, error) {
	return listDocs[model.Meeting](ctx, s, tableMeetings, ownerID, page)
}

// UpdateMeeting replaces the stored document, returning ErrNotFound if it is gone.
// Every save moves v.UpdatedAt strictly forward.
func (s *Store) UpdateMeeting(ctx context.Context, v *model.Meeting) error {
	v.UpdatedAt = model.NextUpdate(v.UpdatedAt, s.now())
	return replaceDoc(ctx, s, tableMeetings, meetingMeta(v), strippedMeeting(v))
}

// DeleteMeeting removes a meeting; a missing meeting is not an error
func (s *Store) DeleteMeeting(ctx context.Context, ownerID, id string) error {
	return deleteDoc(ctx, s, tableMeetings, ownerID, id)
}

func meetingMeta(v *model.Meeting) docMeta {
	return docMeta{
		id:        v.ID,
		ownerID:   v.OwnerID,
		clientID:  v.ClientID,
		createdAt: v.CreatedAt,
		updatedAt: v.UpdatedAt,
	}
}

// strippedMeeting drops the resolved client snapshot, which is never stored
func strippedMeeting(v *model.Meeting) *model.Meeting {
	doc := *v
	doc.Client = nil
	return &doc
}
