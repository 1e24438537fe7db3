package ingest

import (
	"net/url"
	"regexp"
	"strings"
)

type platformRule struct {
	hosts  []string
	prefix string // Path segment before the handle, if any
}

var platformRules = map[Kind]platformRule{
	KindLinkedIn: {hosts: []string{"linkedin.com"}, prefix: "in"},
	KindUpwork:   {hosts: []string{"upwork.com"}, prefix: "freelancers"},
	KindFiverr:   {hosts: []string{"fiverr.com"}},
}

// Upwork profile ids look like ~01abcdef...
var upworkID = regexp.MustCompile(`^~[0-9a-f]+$`)

func extractProfileURL(kind Kind, raw string) (*RawProfile, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fail(kind, "profile url is empty", nil)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fail(kind, "profile url is malformed", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fail(kind, "profile url must be http or https", nil)
	}

	rule := platformRules[kind]
	if !hostMatches(u.Hostname(), rule.hosts) {
		return nil, fail(kind, "profile url is not on "+string(kind), nil)
	}

	segments := pathSegments(u.Path)
	if rule.prefix != "" {
		if len(segments) < 2 || !strings.EqualFold(segments[0], rule.prefix) {
			return nil, fail(kind, "profile url has no /"+rule.prefix+"/<handle> path", nil)
		}
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return nil, fail(kind, "profile url has no handle", nil)
	}
	handle := segments[0]

	name := nameFromHandle(handle)
	if name == "" {
		return nil, fail(kind, "cannot derive a name from "+handle, nil)
	}

	canonical := url.URL{Scheme: "https", Host: u.Hostname(), Path: u.Path}
	return &RawProfile{
		Kind:       kind,
		Name:       name,
		ProfileURL: strings.TrimSuffix(canonical.String(), "/"),
		Tags:       []string{string(kind)},
	}, nil
}

func hostMatches(host string, allowed []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, h := range allowed {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func pathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nameFromHandle turns "jane-doe-4a1b2c3d" into "jane doe"
func nameFromHandle(handle string) string {
	h, err := url.PathUnescape(handle)
	if err != nil {
		h = handle
	}
	if upworkID.MatchString(strings.ToLower(h)) {
		id := strings.TrimPrefix(h, "~")
		return "Upwork Client " + id[:min(6, len(id))]
	}
	words := strings.FieldsFunc(h, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	// LinkedIn appends a hex disambiguator to taken handles
	if n := len(words); n > 1 && isDisambiguator(words[n-1]) {
		words = words[:n-1]
	}
	return strings.Join(words, " ")
}

func isDisambiguator(s string) bool {
	if len(s) < 4 {
		return false
	}
	digit := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return digit
}
