package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-03-01", want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2026-03-01T10:30:00Z", want: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{in: "next tuesday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q): want=%v got=%v", tt.in, tt.want, got.Time)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D *Date `json:"d"`
		N *Date `json:"n"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2026-01-15","n":null}`), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.D == nil || v.D.Day() != 15 || v.N != nil {
		t.Fatalf("decoded: %+v", v)
	}
	out, err := json.Marshal(v.D)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != `"2026-01-15T00:00:00Z"` {
		t.Fatalf("encoded: %s", out)
	}
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal([]byte(`{"d":12}`), &v); !errors.As(err, &typeErr) || typeErr.Field != "d" {
		t.Fatalf("numeric date: want type error on d, got=%v", err)
	}
	if err := json.Unmarshal([]byte(`{"d":"soon"}`), &v); !errors.As(err, &typeErr) || typeErr.Field != "d" {
		t.Fatalf("bad date: want type error on d, got=%v", err)
	}
}

func TestDateJSONEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-01-01T00:00:00\u002B00:00"`, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{`"2025\u002d01\u002d02"`, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var d Date
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("decode %s: %v", tt.in, err)
		}
		if !d.Equal(tt.want) {
			t.Fatalf("decode %s: want=%v got=%v", tt.in, tt.want, d.Time)
		}
	}
}

func TestNewInvoiceDefaults(t *testing.T) {
	inv, err := NewInvoice("i-1", "alice", InvoiceInput{Client: "c-1", Amount: ptr(500.0)}, t0)
	if err != nil {
		t.Fatalf("new invoice: %v", err)
	}
	if inv.Status != InvoiceUnpaid {
		t.Fatalf("status: got=%q", inv.Status)
	}
	if inv.Description != DefaultInvoiceDescription {
		t.Fatalf("description: got=%q", inv.Description)
	}

	inv.MarkPaid()
	if inv.Status != InvoicePaid {
		t.Fatalf("after mark paid: %+v", inv)
	}
}

func TestNewInvoiceValidation(t *testing.T) {
	_, err := NewInvoice("i-1", "alice", InvoiceInput{Amount: ptr(-3.0), Status: "Overdue"}, t0)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected app error, got=%v", err)
	}
	if len(appErr.Fields) != 3 {
		t.Fatalf("fields: got=%v", appErr.Fields)
	}
}

func TestMeetingPatchMerges(t *testing.T) {
	m, err := NewMeeting("m-1", "alice", MeetingInput{Client: "c-1", Date: NewDate(t0), Notes: "intro"}, t0)
	if err != nil {
		t.Fatalf("new meeting: %v", err)
	}
	if m.RecurringType != RecurNone || m.Recurring {
		t.Fatalf("defaults: %+v", m)
	}

	err = m.Apply(MeetingPatch{Recurring: ptr(true), RecurringType: ptr("Weekly")})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.Notes != "intro" || m.ClientID != "c-1" {
		t.Fatalf("unsupplied fields changed: %+v", m)
	}
	if !m.Recurring || m.RecurringType != RecurWeekly {
		t.Fatalf("recurrence: %+v", m)
	}

	// turning recurrence off without a type resets it
	if err := m.Apply(MeetingPatch{Recurring: ptr(false)}); err != nil {
		t.Fatalf("apply recurring=false: %v", err)
	}
	if m.Recurring || m.RecurringType != RecurNone {
		t.Fatalf("after stop: recurring=%v type=%q", m.Recurring, m.RecurringType)
	}
}

func TestMeetingRecurrenceFlagsAreIndependent(t *testing.T) {
	tests := []struct {
		name     string
		in       MeetingInput
		wantType string
	}{
		{"recurring without type", MeetingInput{Client: "c", Date: NewDate(t0), Recurring: true}, RecurNone},
		{"type without recurring", MeetingInput{Client: "c", Date: NewDate(t0), RecurringType: RecurMonthly}, RecurMonthly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMeeting("m", "o", tt.in, t0)
			if err != nil {
				t.Fatalf("new meeting: %v", err)
			}
			if m.Recurring != tt.in.Recurring || m.RecurringType != tt.wantType {
				t.Fatalf("want=%v/%q got=%v/%q", tt.in.Recurring, tt.wantType, m.Recurring, m.RecurringType)
			}
		})
	}
}

func TestMeetingValidation(t *testing.T) {
	tests := []struct {
		name string
		in   MeetingInput
	}{
		{"missing client and date", MeetingInput{}},
		{"unknown recurrence", MeetingInput{Client: "c", Date: NewDate(t0), Recurring: true, RecurringType: "daily"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMeeting("m", "o", tt.in, t0); !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got=%v", err)
			}
		})
	}
}

func TestClientNormalizeAndValidate(t *testing.T) {
	c := Client{Name: "  Ada  ", Email: " ADA@Example.com ", Platform: "upwork", Tags: []string{"vip", "", "vip"}}
	c.Normalize()
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.Name != "Ada" || c.Email != "ada@example.com" || c.Platform != PlatformUpwork {
		t.Fatalf("normalized: %+v", c)
	}
	if len(c.Tags) != 1 {
		t.Fatalf("tags: %v", c.Tags)
	}

	bad := Client{Email: "not-an-email", Platform: "Myspace"}
	bad.Normalize()
	var appErr *apperr.Error
	if err := bad.Validate(); !errors.As(err, &appErr) || len(appErr.Fields) != 3 {
		t.Fatalf("expected 3 problems, got=%v", err)
	}
}
