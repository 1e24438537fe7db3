package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// webhookPayload is the body accepted from third-party form tools
type webhookPayload struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Company    string   `json:"company"`
	Platform   string   `json:"platform"`
	ProfileURL string   `json:"profileUrl"`
	Location   string   `json:"location"`
	Notes      string   `json:"notes"`
	Tags       []string `json:"tags"`
}

func extractWebhook(payload string) (*RawProfile, error) {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fail(KindWebhook, "payload must be a JSON object", nil)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	var p webhookPayload
	if err := dec.Decode(&p); err != nil {
		return nil, fail(KindWebhook, "payload is malformed", err)
	}
	if dec.More() {
		return nil, fail(KindWebhook, "payload has trailing data", nil)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fail(KindWebhook, "payload has no name", nil)
	}
	return &RawProfile{
		Kind:       KindWebhook,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Company:    p.Company,
		Platform:   p.Platform,
		ProfileURL: p.ProfileURL,
		Location:   p.Location,
		Notes:      p.Notes,
		Tags:       p.Tags,
	}, nil
}
