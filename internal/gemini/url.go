package gemini

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

const (
	Scheme      = "gemini"
	DefaultPort = 1965
)

// ParseInput turns what a user typed into the address bar into an absolute URL.
// Input without a scheme is treated as a gemini host/path.
func ParseInput(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("empty URL")
	}
	if !strings.Contains(trimmed, "://") && !hasOpaqueScheme(trimmed) {
		trimmed = Scheme + "://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("URL has no scheme: %s", trimmed)
	}
	if IsGemini(u) && u.Host == "" {
		return nil, fmt.Errorf("URL has no host: %s", trimmed)
	}
	if IsGemini(u) && u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// mailto:, tel: and friends have no "//" but still carry a scheme.
func hasOpaqueScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	switch strings.ToLower(s[:i]) {
	case "mailto", "tel", "news", "data", "about", "xmpp", "sms":
		return true
	}
	return false
}

func IsGemini(u *url.URL) bool {
	return u != nil && strings.EqualFold(u.Scheme, Scheme)
}

// Resolve applies standard reference resolution of ref against base. An empty
// ref resolves to base itself.
func Resolve(base *url.URL, ref string) (*url.URL, error) {
	ref = strings.TrimSpace(ref)
	if base == nil {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("parse reference %q: %w", ref, err)
		}
		return u, nil
	}
	u, err := base.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %q against %s: %w", ref, base, err)
	}
	return u, nil
}

// WithQuery returns a copy of u whose query is the percent-encoded input,
// replacing any query u already had.
func WithQuery(u *url.URL, input string) *url.URL {
	out := *u
	out.RawQuery = strings.ReplaceAll(url.QueryEscape(input), "+", "%20")
	out.ForceQuery = input == ""
	out.Fragment = ""
	out.RawFragment = ""
	return &out
}

// hostPort returns the dial address and the TLS server name for u.
func hostPort(u *url.URL) (addr, serverName string, err error) {
	host := u.Hostname()
	if host == "" {
		return "", "", fmt.Errorf("URL has no host: %s", u)
	}
	port := DefaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return "", "", fmt.Errorf("invalid port %q", p)
		}
	}
	if net.ParseIP(host) == nil {
		host, err = idna.Lookup.ToASCII(host)
		if err != nil {
			return "", "", fmt.Errorf("convert host %q: %w", u.Hostname(), err)
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), host, nil
}
