package model

import (
	"net/mail"
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
)

// Client platforms
const (
	PlatformUpwork   = "Upwork"
	PlatformFiverr   = "Fiverr"
	PlatformLinkedIn = "LinkedIn"
	PlatformEmail    = "Email"
	PlatformDirect   = "Direct"
	PlatformWebhook  = "Webhook"
	PlatformOther    = "Other"
)

var clientPlatforms = []string{
	PlatformUpwork, PlatformFiverr, PlatformLinkedIn, PlatformEmail,
	PlatformDirect, PlatformWebhook, PlatformOther,
}

// Client is a customer profile. Other records reference it by ID.
type Client struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	Platform   string    `json:"platform"`
	ProfileURL string    `json:"profileUrl,omitempty"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Normalize trims input and fills defaults
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Company = strings.TrimSpace(c.Company)
	c.ProfileURL = strings.TrimSpace(c.ProfileURL)
	if c.Platform == "" {
		c.Platform = PlatformDirect
	}
	if p, ok := canonical(clientPlatforms, c.Platform); ok {
		c.Platform = p
	}
	c.Tags = uniqueStrings(c.Tags)
}

// Validate reports every problem with the client
func (c *Client) Validate() error {
	var problems []string
	if c.Name == "" {
		problems = append(problems, "name is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			problems = append(problems, "email is not a valid address")
		}
	}
	if !oneOf(clientPlatforms, c.Platform) {
		problems = append(problems, "platform must be one of "+strings.Join(clientPlatforms, ", "))
	}
	if len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}
