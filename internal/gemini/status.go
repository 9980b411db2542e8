package gemini

import (
	"fmt"
	"net/url"
	"strings"
)

// StatusClass is the family a status code belongs to.
type StatusClass int

const (
	StatusUnknown StatusClass = iota
	StatusInput
	StatusSuccess
	StatusRedirect
	StatusTemporaryFailure
	StatusPermanentFailure
	StatusCertRequired
)

// StatusSensitiveInput asks for input that should not be echoed.
const StatusSensitiveInput = 11

func Classify(status int) StatusClass {
	if status < 10 || status > 69 {
		return StatusUnknown
	}
	switch status / 10 {
	case 1:
		return StatusInput
	case 2:
		return StatusSuccess
	case 3:
		return StatusRedirect
	case 4:
		return StatusTemporaryFailure
	case 5:
		return StatusPermanentFailure
	case 6:
		return StatusCertRequired
	default:
		return StatusUnknown
	}
}

func (c StatusClass) String() string {
	switch c {
	case StatusInput:
		return "Input"
	case StatusSuccess:
		return "Success"
	case StatusRedirect:
		return "Redirect"
	case StatusTemporaryFailure:
		return "Temporary failure"
	case StatusPermanentFailure:
		return "Permanent failure"
	case StatusCertRequired:
		return "Client certificate required"
	case StatusUnknown:
		return "Unknown status"
	default:
		panic(fmt.Sprintf("gemini: unhandled status class %d", int(c)))
	}
}

// Policy tunes how Decide treats responses.
type Policy struct {
	AutoFollowRedirects bool
}

type ActionKind int

const (
	ActionRenderSynthetic ActionKind = iota
	ActionRenderBody
	ActionPromptInput
	ActionFollowRedirect
)

func (k ActionKind) String() string {
	switch k {
	case ActionRenderSynthetic:
		return "render-synthetic"
	case ActionRenderBody:
		return "render-body"
	case ActionPromptInput:
		return "prompt-input"
	case ActionFollowRedirect:
		return "follow-redirect"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is the follow-up a response calls for. Which fields are set depends
// on Kind: Meta and Sensitive for prompts, Text for synthetic documents,
// Target for redirects (and for the link of a manual-follow redirect page).
type Action struct {
	Kind      ActionKind
	Meta      string
	Sensitive bool
	Text      string
	Target    *url.URL
}

// Decide maps a response for requested onto the next step.
func Decide(resp *Response, requested *url.URL, p Policy) Action {
	class := resp.Class()
	switch class {
	case StatusInput:
		return Action{Kind: ActionPromptInput, Meta: resp.Meta, Sensitive: resp.Status == StatusSensitiveInput}
	case StatusSuccess:
		return Action{Kind: ActionRenderBody, Meta: resp.Meta}
	case StatusRedirect:
		// An empty meta points back at requested. It is linked but never
		// followed automatically.
		target, err := Resolve(requested, resp.Meta)
		if err != nil {
			target = nil
		}
		follow := target != nil && IsGemini(target) && strings.TrimSpace(resp.Meta) != ""
		if p.AutoFollowRedirects && follow {
			return Action{Kind: ActionFollowRedirect, Meta: resp.Meta, Target: target}
		}
		return Action{Kind: ActionRenderSynthetic, Meta: resp.Meta, Target: target, Text: SyntheticText(resp.Status, class, resp.Meta, target)}
	case StatusTemporaryFailure, StatusPermanentFailure, StatusCertRequired, StatusUnknown:
		return Action{Kind: ActionRenderSynthetic, Meta: resp.Meta, Text: SyntheticText(resp.Status, class, resp.Meta, nil)}
	default:
		panic(fmt.Sprintf("gemini: unhandled status class %d", int(class)))
	}
}

// SyntheticText builds the small gemtext page shown in place of a body.
func SyntheticText(status int, class StatusClass, meta string, link *url.URL) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d - %s\n", status, class)
	if meta = strings.TrimSpace(meta); meta != "" {
		fmt.Fprintf(&b, "## %s\n", meta)
	}
	if link != nil {
		fmt.Fprintf(&b, "=> %s\n", link)
	}
	return b.String()
}
