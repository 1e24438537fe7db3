package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/existflow/clientpulse/internal/model"
)

func TestExtractProfileURL(t *testing.T) {
	tests := []struct {
		kind     Kind
		url      string
		wantName string
		wantURL  string
		platform string
	}{
		{KindLinkedIn, "https://www.linkedin.com/in/jane-doe-4a1b2c3d/", "Jane Doe", "https://www.linkedin.com/in/jane-doe-4a1b2c3d", model.PlatformLinkedIn},
		{KindLinkedIn, "linkedin.com/in/marcus_okafor?trk=feed", "Marcus Okafor", "https://linkedin.com/in/marcus_okafor", model.PlatformLinkedIn},
		{KindUpwork, "https://www.upwork.com/freelancers/~01abcdef1234", "Upwork Client 01abcd", "https://www.upwork.com/freelancers/~01abcdef1234", model.PlatformUpwork},
		{KindFiverr, "https://www.fiverr.com/design_guru", "Design Guru", "https://www.fiverr.com/design_guru", model.PlatformFiverr},
	}
	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			raw, err := p.Extract(context.Background(), tt.kind, tt.url)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			c := Normalize(*raw)
			if c.Name != tt.wantName {
				t.Fatalf("name: want=%q got=%q", tt.wantName, c.Name)
			}
			if c.ProfileURL != tt.wantURL {
				t.Fatalf("profile url: want=%q got=%q", tt.wantURL, c.ProfileURL)
			}
			if c.Platform != tt.platform {
				t.Fatalf("platform: want=%q got=%q", tt.platform, c.Platform)
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("normalized client invalid: %v", err)
			}
		})
	}
}

func TestExtractProfileURLRejects(t *testing.T) {
	tests := []struct {
		kind Kind
		url  string
	}{
		{KindLinkedIn, ""},
		{KindLinkedIn, "https://evil.example.com/in/jane-doe"},
		{KindLinkedIn, "https://notlinkedin.com/in/jane-doe"},
		{KindLinkedIn, "https://www.linkedin.com/company/acme"},
		{KindUpwork, "https://www.upwork.com/"},
		{KindFiverr, "ftp://fiverr.com/someone"},
		{Kind("myspace"), "https://myspace.com/tom"},
	}
	p := NewParser()
	for _, tt := range tests {
		_, err := p.Extract(context.Background(), tt.kind, tt.url)
		var extErr *ExtractionError
		if !errors.As(err, &extErr) {
			t.Fatalf("%s %q: want ExtractionError, got=%v", tt.kind, tt.url, err)
		}
	}
}

func TestExtractEmailWithHeaders(t *testing.T) {
	content := "From: Jane Doe <Jane@acme.io>\r\n" +
		"Subject: New website\r\n" +
		"\r\n" +
		"Hi,\r\n" +
		"We need a new marketing site by June.\r\n" +
		"Call me at +1 (555) 123-4567.\r\n" +
		"\r\n" +
		"Best regards,\r\n" +
		"Jane Doe\r\n" +
		"Acme Studio\r\n" +
		"www.acme.io\r\n"

	raw, err := NewParser().Extract(context.Background(), KindEmail, content)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	c := Normalize(*raw)
	if c.Name != "Jane Doe" || c.Email != "jane@acme.io" {
		t.Fatalf("sender: %+v", c)
	}
	if c.Company != "Acme Studio" {
		t.Fatalf("company: got=%q", c.Company)
	}
	if c.Phone != "+1 (555) 123-4567" {
		t.Fatalf("phone: got=%q", c.Phone)
	}
	if c.Platform != model.PlatformEmail || c.Notes != "Subject: New website" {
		t.Fatalf("platform/notes: %+v", c)
	}
}

func TestExtractEmailPlainText(t *testing.T) {
	content := "hello there, this is sam.lee@gmail.com. reach me on 020 7946 0958 any time"
	raw, err := NewParser().Extract(context.Background(), KindEmail, content)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	c := Normalize(*raw)
	if c.Name != "Sam Lee" || c.Email != "sam.lee@gmail.com" {
		t.Fatalf("sender: %+v", c)
	}
	if c.Company != "" {
		t.Fatalf("freemail domain should not become a company: %q", c.Company)
	}
	if c.Phone != "020 7946 0958" {
		t.Fatalf("phone: got=%q", c.Phone)
	}
}

func TestCompanyFromDomain(t *testing.T) {
	tests := map[string]string{
		"ops@northwind.co.uk": "Northwind",
		"ops@northwind.com":   "Northwind",
		"me@yahoo.com":        "",
		"broken":              "",
	}
	for in, want := range tests {
		if got := companyFromDomain(in); got != want {
			t.Fatalf("companyFromDomain(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestExtractEmailRejects(t *testing.T) {
	for _, content := range []string{"", "   ", "no sender anywhere in here"} {
		_, err := NewParser().Extract(context.Background(), KindEmail, content)
		var extErr *ExtractionError
		if !errors.As(err, &extErr) {
			t.Fatalf("%q: want ExtractionError, got=%v", content, err)
		}
	}
}

func TestExtractWebhook(t *testing.T) {
	raw, err := NewParser().Extract(context.Background(), KindWebhook,
		`{"name":"ACME CORP","email":"hello@acme.io","platform":"direct","tags":["lead","lead"]}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	c := Normalize(*raw)
	if c.Name != "Acme Corp" || c.Platform != model.PlatformDirect || len(c.Tags) != 1 {
		t.Fatalf("client: %+v", c)
	}

	raw, err = NewParser().Extract(context.Background(), KindWebhook, `{"name":"Bo"}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if c := Normalize(*raw); c.Platform != model.PlatformWebhook {
		t.Fatalf("default platform: got=%q", c.Platform)
	}
}

func TestExtractWebhookRejects(t *testing.T) {
	for _, payload := range []string{
		``,
		`not json`,
		`["a","b"]`,
		`{"name": "unterminated"`,
		`{"name": 42}`,
		`{"email":"x@y.io"}`,
		`{"name":"A"} {"name":"B"}`,
	} {
		_, err := NewParser().Extract(context.Background(), KindWebhook, payload)
		var extErr *ExtractionError
		if !errors.As(err, &extErr) {
			t.Fatalf("%q: want ExtractionError, got=%v", payload, err)
		}
	}
}

func TestExtractHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewParser().Extract(ctx, KindWebhook, `{"name":"A"}`); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got=%v", err)
	}
}
