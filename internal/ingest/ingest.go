// Package ingest turns unstructured sources (profile URLs, pasted emails,
// webhook payloads) into candidate client profiles.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/clientpulse/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind names an ingestion source
type Kind string

// Supported sources
const (
	KindLinkedIn Kind = "linkedin"
	KindUpwork   Kind = "upwork"
	KindFiverr   Kind = "fiverr"
	KindEmail    Kind = "email"
	KindWebhook  Kind = "webhook"
)

// RawProfile is whatever could be extracted from a source, before cleanup
type RawProfile struct {
	Kind       Kind
	Name       string
	Email      string
	Phone      string
	Company    string
	Platform   string
	ProfileURL string
	Location   string
	Notes      string
	Tags       []string
}

// ExtractionError reports a source that could not be turned into a profile
type ExtractionError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s extraction failed: %s", e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func fail(kind Kind, reason string, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Reason: reason, Err: err}
}

// Extractor pulls a raw profile out of a source payload
type Extractor interface {
	Extract(ctx context.Context, kind Kind, payload string) (*RawProfile, error)
}

// Parser extracts profiles locally without fetching anything
type Parser struct{}

// NewParser returns a Parser
func NewParser() *Parser {
	return &Parser{}
}

// Extract dispatches on kind
func (p *Parser) Extract(ctx context.Context, kind Kind, payload string) (*RawProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fail(kind, "cancelled", err)
	}
	switch kind {
	case KindLinkedIn, KindUpwork, KindFiverr:
		return extractProfileURL(kind, payload)
	case KindEmail:
		return extractEmail(payload)
	case KindWebhook:
		return extractWebhook(payload)
	default:
		return nil, fail(kind, "unknown source", nil)
	}
}

var titleCaser = cases.Title(language.English)

// Normalize converts a raw profile into a client ready for validation
func Normalize(raw RawProfile) model.Client {
	c := model.Client{
		Name:       displayName(raw.Name),
		Email:      raw.Email,
		Phone:      raw.Phone,
		Company:    strings.TrimSpace(raw.Company),
		Platform:   raw.Platform,
		ProfileURL: raw.ProfileURL,
		Location:   strings.TrimSpace(raw.Location),
		Notes:      strings.TrimSpace(raw.Notes),
		Tags:       raw.Tags,
	}
	if c.Platform == "" {
		c.Platform = platformFor(raw.Kind)
	}
	c.Normalize()
	return c
}

func platformFor(kind Kind) string {
	switch kind {
	case KindLinkedIn:
		return model.PlatformLinkedIn
	case KindUpwork:
		return model.PlatformUpwork
	case KindFiverr:
		return model.PlatformFiverr
	case KindEmail:
		return model.PlatformEmail
	case KindWebhook:
		return model.PlatformWebhook
	default:
		return model.PlatformOther
	}
}

// displayName collapses whitespace and title-cases names that arrive all
// lower or all upper case. Mixed case is assumed intentional.
func displayName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == strings.ToLower(s) || s == strings.ToUpper(s) {
		return titleCaser.String(s)
	}
	return s
}
