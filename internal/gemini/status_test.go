package gemini

import (
	"net/url"
	"strings"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestClassify(t *testing.T) {
	cases := map[int]StatusClass{
		5:  StatusUnknown,
		9:  StatusUnknown,
		10: StatusInput,
		11: StatusInput,
		20: StatusSuccess,
		31: StatusRedirect,
		44: StatusTemporaryFailure,
		51: StatusPermanentFailure,
		60: StatusCertRequired,
		69: StatusCertRequired,
		70: StatusUnknown,
		99: StatusUnknown,
	}
	for status, want := range cases {
		if got := Classify(status); got != want {
			t.Fatalf("Classify(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestDecide_Input(t *testing.T) {
	req := mustURL(t, "gemini://h/search")
	got := Decide(&Response{Status: 10, Meta: "Query?"}, req, Policy{})
	if got.Kind != ActionPromptInput || got.Meta != "Query?" || got.Sensitive {
		t.Fatalf("unexpected action: %+v", got)
	}

	sensitive := Decide(&Response{Status: 11, Meta: "Password"}, req, Policy{})
	if sensitive.Kind != ActionPromptInput || !sensitive.Sensitive {
		t.Fatalf("expected sensitive prompt, got %+v", sensitive)
	}
}

func TestDecide_SuccessRendersBody(t *testing.T) {
	got := Decide(&Response{Status: 20, Meta: "text/gemini"}, mustURL(t, "gemini://h/"), Policy{})
	if got.Kind != ActionRenderBody {
		t.Fatalf("unexpected action: %+v", got)
	}
}

func TestDecide_RedirectRelativeIsManualByDefault(t *testing.T) {
	got := Decide(&Response{Status: 30, Meta: "/new"}, mustURL(t, "gemini://h/a/b"), Policy{})
	if got.Kind != ActionRenderSynthetic {
		t.Fatalf("expected synthetic page, got %+v", got)
	}
	if got.Target == nil || got.Target.String() != "gemini://h/new" {
		t.Fatalf("unexpected target: %v", got.Target)
	}
	want := "# 30 - Redirect\n## /new\n=> gemini://h/new\n"
	if got.Text != want {
		t.Fatalf("unexpected synthetic text:\n%q\nwant\n%q", got.Text, want)
	}

	sibling := Decide(&Response{Status: 30, Meta: "new"}, mustURL(t, "gemini://h/a/b"), Policy{})
	if sibling.Target.String() != "gemini://h/a/new" {
		t.Fatalf("unexpected relative target: %v", sibling.Target)
	}
}

func TestDecide_RedirectAbsoluteKeptVerbatim(t *testing.T) {
	got := Decide(&Response{Status: 31, Meta: "gemini://other.example/x"}, mustURL(t, "gemini://h/a/b"), Policy{})
	if got.Target.String() != "gemini://other.example/x" {
		t.Fatalf("unexpected target: %v", got.Target)
	}
	if !strings.Contains(got.Text, "=> gemini://other.example/x") {
		t.Fatalf("expected link line in %q", got.Text)
	}
}

func TestDecide_RedirectWithEmptyMetaLinksRequestedURL(t *testing.T) {
	got := Decide(&Response{Status: 30}, mustURL(t, "gemini://h/a/b"), Policy{})
	if got.Target == nil || got.Target.String() != "gemini://h/a/b" {
		t.Fatalf("unexpected target: %v", got.Target)
	}
	if want := "# 30 - Redirect\n=> gemini://h/a/b\n"; got.Text != want {
		t.Fatalf("unexpected synthetic text:\n%q\nwant\n%q", got.Text, want)
	}

	auto := Decide(&Response{Status: 30}, mustURL(t, "gemini://h/a/b"), Policy{AutoFollowRedirects: true})
	if auto.Kind != ActionRenderSynthetic {
		t.Fatalf("empty redirect must not be followed, got %+v", auto)
	}
}

func TestDecide_RedirectAutoFollowPolicy(t *testing.T) {
	got := Decide(&Response{Status: 30, Meta: "/new"}, mustURL(t, "gemini://h/a/b"), Policy{AutoFollowRedirects: true})
	if got.Kind != ActionFollowRedirect || got.Target.String() != "gemini://h/new" {
		t.Fatalf("expected follow action, got %+v", got)
	}

	offsite := Decide(&Response{Status: 30, Meta: "https://example.com/"}, mustURL(t, "gemini://h/"), Policy{AutoFollowRedirects: true})
	if offsite.Kind != ActionRenderSynthetic {
		t.Fatalf("expected non-gemini redirect to stay manual, got %+v", offsite)
	}
}

func TestDecide_FailuresRenderSynthetic(t *testing.T) {
	cases := []struct {
		resp Response
		want string
	}{
		{resp: Response{Status: 44, Meta: "slow down"}, want: "# 44 - Temporary failure\n## slow down\n"},
		{resp: Response{Status: 51}, want: "# 51 - Permanent failure\n"},
		{resp: Response{Status: 60, Meta: "cert please"}, want: "# 60 - Client certificate required\n## cert please\n"},
		{resp: Response{Status: 99, Meta: "what"}, want: "# 99 - Unknown status\n## what\n"},
	}
	for _, tc := range cases {
		resp := tc.resp
		got := Decide(&resp, mustURL(t, "gemini://h/"), Policy{})
		if got.Kind != ActionRenderSynthetic || got.Text != tc.want {
			t.Fatalf("status %d: unexpected action %+v", tc.resp.Status, got)
		}
	}
}
