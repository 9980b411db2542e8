package gemini

import "testing"

func TestParseInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "gemini://example.org/", want: "gemini://example.org/"},
		{in: "  example.org/docs  ", want: "gemini://example.org/docs"},
		{in: "example.org", want: "gemini://example.org/"},
		{in: "https://example.com/a", want: "https://example.com/a"},
		{in: "mailto:someone@example.org", want: "mailto:someone@example.org"},
	}
	for _, tc := range cases {
		u, err := ParseInput(tc.in)
		if err != nil {
			t.Fatalf("ParseInput(%q) returned error: %v", tc.in, err)
		}
		if u.String() != tc.want {
			t.Fatalf("ParseInput(%q) = %q, want %q", tc.in, u.String(), tc.want)
		}
	}

	for _, bad := range []string{"", "   ", "gemini://"} {
		if _, err := ParseInput(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestResolve(t *testing.T) {
	base := mustURL(t, "gemini://h/p")
	cases := map[string]string{
		"/x":                   "gemini://h/x",
		"x":                    "gemini://h/x",
		"":                     "gemini://h/p",
		"gemini://other/y":     "gemini://other/y",
		"//other/z":            "gemini://other/z",
		"https://example.com/": "https://example.com/",
	}
	for ref, want := range cases {
		got, err := Resolve(base, ref)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", ref, err)
		}
		if got.String() != want {
			t.Fatalf("Resolve(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestWithQuery_ReplacesQueryAndEncodesSpaces(t *testing.T) {
	u := mustURL(t, "gemini://h/search?old")
	got := WithQuery(u, "hello world & more")
	if got.String() != "gemini://h/search?hello%20world%20%26%20more" {
		t.Fatalf("unexpected URL: %s", got)
	}
	if u.RawQuery != "old" {
		t.Fatalf("original URL was mutated: %s", u)
	}
}

func TestHostPort(t *testing.T) {
	cases := []struct {
		in         string
		addr       string
		serverName string
	}{
		{in: "gemini://example.org/", addr: "example.org:1965", serverName: "example.org"},
		{in: "gemini://example.org:1966/", addr: "example.org:1966", serverName: "example.org"},
		{in: "gemini://127.0.0.1/", addr: "127.0.0.1:1965", serverName: "127.0.0.1"},
		{in: "gemini://bücher.example/", addr: "xn--bcher-kva.example:1965", serverName: "xn--bcher-kva.example"},
	}
	for _, tc := range cases {
		addr, serverName, err := hostPort(mustURL(t, tc.in))
		if err != nil {
			t.Fatalf("hostPort(%q) returned error: %v", tc.in, err)
		}
		if addr != tc.addr || serverName != tc.serverName {
			t.Fatalf("hostPort(%q) = (%q, %q), want (%q, %q)", tc.in, addr, serverName, tc.addr, tc.serverName)
		}
	}

	if _, _, err := hostPort(mustURL(t, "gemini://h:99999/")); err == nil {
		t.Fatal("expected invalid port error")
	}
}
