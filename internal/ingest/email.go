package ingest

import (
	"bufio"
	"io"
	"net/mail"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{6,}\d`)
	urlPattern   = regexp.MustCompile(`(?i)^(https?://|www\.)`)
	signoff      = regexp.MustCompile(`(?i)^(best|kind|warm)?\s*(regards|thanks|thank you|cheers|sincerely|best)[,!.]?$`)
)

// Mailbox providers whose domain says nothing about the sender's company
var freemail = map[string]bool{
	"gmail.com": true, "googlemail.com": true, "yahoo.com": true, "outlook.com": true,
	"hotmail.com": true, "live.com": true, "icloud.com": true, "me.com": true,
	"aol.com": true, "proton.me": true, "protonmail.com": true, "gmx.com": true,
}

// Second-level labels under country domains, as in acme.co.uk
var secondLevel = map[string]bool{"co": true, "com": true, "org": true, "net": true, "ac": true}

func extractEmail(content string) (*RawProfile, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return nil, fail(KindEmail, "email content is empty", nil)
	}

	raw := &RawProfile{Kind: KindEmail, Tags: []string{string(KindEmail)}}
	body := content

	if msg, err := mail.ReadMessage(strings.NewReader(content + "\n")); err == nil && msg.Header.Get("From") != "" {
		if from, err := mail.ParseAddress(msg.Header.Get("From")); err == nil {
			raw.Name = from.Name
			raw.Email = from.Address
		}
		if subject := msg.Header.Get("Subject"); subject != "" {
			raw.Notes = "Subject: " + subject
		}
		if b, err := io.ReadAll(msg.Body); err == nil {
			body = string(b)
		}
	}

	lines := bodyLines(body)
	sigName, sigCompany := signature(lines)
	if raw.Name == "" {
		raw.Name = sigName
	}
	if raw.Email == "" {
		raw.Email = emailPattern.FindString(body)
	}
	raw.Phone = firstPhone(lines)

	switch {
	case sigCompany != "":
		raw.Company = sigCompany
	case raw.Email != "":
		raw.Company = companyFromDomain(raw.Email)
	}

	if raw.Name == "" && raw.Email != "" {
		local, _, _ := strings.Cut(raw.Email, "@")
		raw.Name = nameFromHandle(local)
	}
	if raw.Name == "" {
		return nil, fail(KindEmail, "no sender found in email", nil)
	}
	return raw, nil
}

func bodyLines(body string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// signature finds the block after the last sign-off line: the first line is
// taken as the name, the next plain line as the company
func signature(lines []string) (name, company string) {
	start := -1
	for i, l := range lines {
		if signoff.MatchString(l) {
			start = i + 1
		}
	}
	if start < 0 || start >= len(lines) {
		return "", ""
	}
	for _, l := range lines[start:] {
		if l == "--" || isContactLine(l) {
			continue
		}
		switch {
		case name == "":
			name = l
		case company == "":
			company = l
		}
	}
	return name, company
}

func isContactLine(l string) bool {
	return emailPattern.MatchString(l) || urlPattern.MatchString(l) || phonePattern.MatchString(l)
}

func firstPhone(lines []string) string {
	for _, l := range lines {
		if m := phonePattern.FindString(l); m != "" {
			digits := 0
			for _, r := range m {
				if r >= '0' && r <= '9' {
					digits++
				}
			}
			if digits >= 7 {
				return strings.TrimSpace(m)
			}
		}
	}
	return ""
}

func companyFromDomain(address string) string {
	_, domain, ok := strings.Cut(strings.ToLower(address), "@")
	if !ok || freemail[domain] {
		return ""
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return ""
	}
	name := labels[len(labels)-2]
	if len(labels) >= 3 && secondLevel[name] {
		name = labels[len(labels)-3]
	}
	return titleCaser.String(name)
}
