package model

import (
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
)

// Recurrence types
const (
	RecurWeekly   = "weekly"
	RecurBiweekly = "biweekly"
	RecurMonthly  = "monthly"
	RecurNone     = "none"
)

var recurringTypes = []string{RecurWeekly, RecurBiweekly, RecurMonthly, RecurNone}

// Meeting is a scheduled or recurring appointment with a client
type Meeting struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	ClientID      string    `json:"clientId"`
	Client        *Client   `json:"client"` // Resolved on read
	Date          *Date     `json:"date"`
	Notes         string    `json:"notes,omitempty"`
	Recurring     bool      `json:"recurring"`
	RecurringType string    `json:"recurringType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MeetingInput is the create payload
type MeetingInput struct {
	Client        string `json:"client"`
	ClientID      string `json:"clientId"`
	Date          *Date  `json:"date"`
	Notes         string `json:"notes"`
	Recurring     bool   `json:"recurring"`
	RecurringType string `json:"recurringType"`
}

// MeetingPatch carries the fields supplied in a partial update
type MeetingPatch struct {
	Client        *string `json:"client"`
	ClientID      *string `json:"clientId"`
	Date          *Date   `json:"date"`
	Notes         *string `json:"notes"`
	Recurring     *bool   `json:"recurring"`
	RecurringType *string `json:"recurringType"`
}

// NewMeeting builds a validated meeting from input
func NewMeeting(id, ownerID string, in MeetingInput, now time.Time) (*Meeting, error) {
	m := &Meeting{
		ID:            id,
		OwnerID:       ownerID,
		ClientID:      firstNonEmpty(in.ClientID, in.Client),
		Date:          in.Date,
		Notes:         in.Notes,
		Recurring:     in.Recurring,
		RecurringType: in.RecurringType,
		CreatedAt:     Stamp(now),
	}
	m.UpdatedAt = m.CreatedAt
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply merges the supplied fields into the meeting and re-validates
func (m *Meeting) Apply(p MeetingPatch) error {
	if p.ClientID != nil {
		m.ClientID = *p.ClientID
	} else if p.Client != nil {
		m.ClientID = *p.Client
	}
	if p.Date != nil {
		m.Date = p.Date
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.Recurring != nil {
		m.Recurring = *p.Recurring
	}
	if p.RecurringType != nil {
		m.RecurringType = *p.RecurringType
	} else if p.Recurring != nil && !*p.Recurring {
		m.RecurringType = RecurNone
	}
	m.normalize()
	return m.Validate()
}

func (m *Meeting) normalize() {
	m.ClientID = strings.TrimSpace(m.ClientID)
	if m.RecurringType == "" {
		m.RecurringType = RecurNone
	}
	m.RecurringType = strings.ToLower(m.RecurringType)
}

// Validate reports every problem with the meeting
func (m *Meeting) Validate() error {
	var problems []string
	if m.ClientID == "" {
		problems = append(problems, "client is required")
	}
	if m.Date == nil || m.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if !oneOf(recurringTypes, m.RecurringType) {
		problems = append(problems, "recurringType must be one of "+strings.Join(recurringTypes, ", "))
	}
	if len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}
