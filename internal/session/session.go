// Package session drives a browsing session: it runs transactions, turns
// responses into documents and keeps the history.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/glabrego/gemini-cli/internal/gemini"
	"github.com/glabrego/gemini-cli/internal/gemtext"
	"github.com/glabrego/gemini-cli/internal/history"
)

// ErrBusy is returned when a navigation is requested while another one is
// still running.
var ErrBusy = errors.New("navigation already in progress")

type State int

const (
	StateIdle State = iota
	StateRequesting
	StateAwaitingInput
	StateRendered
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Fetcher performs a single transaction and returns the raw response.
type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL) ([]byte, error)
}

// Prompter asks the user for input. ok is false when the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, meta string, sensitive bool) (input string, ok bool)
}

// Opener hands URLs with foreign schemes to the operating system.
type Opener interface {
	Open(u *url.URL) error
}

// Scroller moves the display to a relative position in the document.
type Scroller interface {
	ScrollTo(fraction float64)
}

type Options struct {
	Policy       gemini.Policy
	MaxRedirects int
	Scroller     Scroller
	Logger       *log.Logger
}

// Page is the rendered document together with the indices derived from it.
type Page struct {
	URL      *url.URL
	Document gemtext.Document
	Links    gemtext.LinkIndex
	Outline  gemtext.OutlineIndex
	Status   int
	Meta     string
}

// Session serialises navigations: nav is held for the whole of one, mu only
// while state is read or replaced, so readers never wait on the network.
type Session struct {
	nav      sync.Mutex
	mu       sync.RWMutex
	fetcher  Fetcher
	prompter Prompter
	opener   Opener
	opts     Options
	logger   *log.Logger

	history *history.History
	page    *Page
	state   State
	pending string
}

func New(fetcher Fetcher, prompter Prompter, opener Opener, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.MaxRedirects < 0 {
		opts.MaxRedirects = 0
	}
	return &Session{
		fetcher:  fetcher,
		prompter: prompter,
		opener:   opener,
		opts:     opts,
		logger:   logger,
		history:  history.New(),
		state:    StateIdle,
	}
}

// Navigate loads u. Responses of every kind, and transport or protocol
// failures, end up as the current page; the returned error is only non-nil
// when the navigation could not start or an external open failed.
func (s *Session) Navigate(ctx context.Context, u *url.URL, record bool) error {
	if !s.nav.TryLock() {
		return ErrBusy
	}
	defer s.nav.Unlock()
	return s.navigate(ctx, u, record)
}

// GotoLink follows the i-th link of the current page. Out-of-range ordinals
// are ignored.
func (s *Session) GotoLink(ctx context.Context, i int) error {
	if !s.nav.TryLock() {
		return ErrBusy
	}
	defer s.nav.Unlock()
	page := s.Page()
	if page == nil {
		return nil
	}
	link, ok := page.Links.At(i)
	if !ok {
		return nil
	}
	target, err := url.Parse(link.URL)
	if err != nil {
		s.logger.Warn("unparseable link target", "url", link.URL, "err", err)
		return nil
	}
	return s.navigate(ctx, target, true)
}

// GotoOutline returns the scroll fraction of the i-th heading and passes it
// to the configured Scroller. Out-of-range ordinals are ignored.
func (s *Session) GotoOutline(i int) (float64, bool) {
	page := s.Page()
	if page == nil {
		return 0, false
	}
	heading, ok := page.Outline.At(i)
	if !ok {
		return 0, false
	}
	if s.opts.Scroller != nil {
		s.opts.Scroller.ScrollTo(heading.Fraction)
	}
	return heading.Fraction, true
}

func (s *Session) Back(ctx context.Context) error {
	return s.travel(ctx, s.history.Back)
}

func (s *Session) Forward(ctx context.Context) error {
	return s.travel(ctx, s.history.Forward)
}

func (s *Session) travel(ctx context.Context, step func() (string, bool)) error {
	if !s.nav.TryLock() {
		return ErrBusy
	}
	defer s.nav.Unlock()
	s.mu.Lock()
	raw, ok := step()
	s.mu.Unlock()
	if !ok {
		return nil
	}
	target, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse history entry %q: %w", raw, err)
	}
	return s.navigate(ctx, target, false)
}

// Reload fetches the current URL again without touching history. Local
// pages made by Show have nothing to fetch and are left as they are.
func (s *Session) Reload(ctx context.Context) error {
	if !s.nav.TryLock() {
		return ErrBusy
	}
	defer s.nav.Unlock()
	page := s.Page()
	if page == nil || !gemini.IsGemini(page.URL) {
		return nil
	}
	return s.navigate(ctx, page.URL, false)
}

// Show renders text as the current page without a transaction and without
// recording history.
func (s *Session) Show(base *url.URL, text string) error {
	if !s.nav.TryLock() {
		return ErrBusy
	}
	defer s.nav.Unlock()
	s.render(base, text, 0, "")
	s.setState(StateRendered)
	return nil
}

// Page returns the current page, or nil before the first navigation.
func (s *Session) Page() *Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// PendingPrompt returns the meta of the prompt the session is waiting on.
func (s *Session) PendingPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// History exposes the entries and the cursor position.
func (s *Session) History() (entries []string, cursor int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Entries(), s.history.Cursor()
}

func (s *Session) CanBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanBack()
}

func (s *Session) CanForward() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanForward()
}

func (s *Session) navigate(ctx context.Context, u *url.URL, record bool) error {
	if !gemini.IsGemini(u) {
		if s.opener == nil {
			return fmt.Errorf("no handler for %s URLs", u.Scheme)
		}
		if err := s.opener.Open(u); err != nil {
			return fmt.Errorf("open %s externally: %w", u, err)
		}
		return nil
	}

	resume := s.State()
	target := u
	redirects := 0
	sensitive := false
	for {
		s.setState(StateRequesting)
		raw, err := s.fetcher.Fetch(ctx, target)
		if err != nil {
			s.fail(target, err)
			return nil
		}
		resp, err := gemini.ParseResponse(raw)
		if err != nil {
			s.fail(target, err)
			return nil
		}

		action := gemini.Decide(resp, target, s.opts.Policy)
		switch action.Kind {
		case gemini.ActionPromptInput:
			s.enterPrompt(action.Meta)
			input, ok := s.ask(ctx, action.Meta, action.Sensitive)
			s.clearPrompt()
			if !ok {
				s.setState(resume)
				return nil
			}
			sensitive = sensitive || action.Sensitive
			target = gemini.WithQuery(target, input)
			continue
		case gemini.ActionFollowRedirect:
			redirects++
			if redirects > s.opts.MaxRedirects {
				text := fmt.Sprintf("# Too many redirects\n## Stopped after %d redirects\n=> %s\n", s.opts.MaxRedirects, action.Target)
				s.render(target, text, resp.Status, resp.Meta)
				s.record(target, record && !sensitive)
				s.setState(StateRendered)
				return nil
			}
			s.logger.Debug("following redirect", "from", target.String(), "to", action.Target.String())
			target = action.Target
			continue
		case gemini.ActionRenderBody:
			if mediaType := resp.MediaType(); !strings.HasPrefix(mediaType, "text/") {
				s.logger.Debug("non-text body not displayed", "url", target.String(), "type", mediaType)
				s.render(target, binaryText(resp), resp.Status, resp.Meta)
				break
			}
			s.render(target, resp.Text(), resp.Status, resp.Meta)
		case gemini.ActionRenderSynthetic:
			s.render(target, action.Text, resp.Status, resp.Meta)
		default:
			panic(fmt.Sprintf("session: unhandled action %v", action.Kind))
		}

		s.record(target, record && !sensitive)
		s.setState(StateRendered)
		return nil
	}
}

func (s *Session) record(u *url.URL, ok bool) {
	if !ok {
		return
	}
	s.mu.Lock()
	s.history.Add(u.String())
	s.mu.Unlock()
}

func binaryText(resp *gemini.Response) string {
	return fmt.Sprintf("# %d - %s\n## %s content is not displayed\n", resp.Status, resp.Class(), resp.MediaType())
}

func (s *Session) ask(ctx context.Context, meta string, sensitive bool) (string, bool) {
	if s.prompter == nil {
		return "", false
	}
	return s.prompter.Prompt(ctx, meta, sensitive)
}

func (s *Session) render(u *url.URL, text string, status int, meta string) {
	doc, links, outline := gemtext.Parse(text, u)
	page := &Page{
		URL:      u,
		Document: doc,
		Links:    links,
		Outline:  outline,
		Status:   status,
		Meta:     meta,
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

func (s *Session) fail(u *url.URL, err error) {
	s.logger.Warn("navigation failed", "url", u.String(), "err", err)
	s.render(u, failureText(err), 0, "")
	s.setState(StateError)
}

func failureText(err error) string {
	var terr *gemini.TransportError
	var perr *gemini.ProtocolError
	switch {
	case errors.As(err, &perr):
		return fmt.Sprintf("# Protocol error\n## %s\n", perr.Reason)
	case errors.As(err, &terr):
		return fmt.Sprintf("# Transport error\n## %s failed\n%v\n", terr.Op, terr.Err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("# Request cancelled\n%v\n", err)
	default:
		return fmt.Sprintf("# Error\n%v\n", err)
	}
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()
	if prev != next {
		s.logger.Debug("session state", "from", prev, "to", next)
	}
}

// enterPrompt records meta as the pending prompt. meta may be empty.
func (s *Session) enterPrompt(meta string) {
	s.mu.Lock()
	s.pending = meta
	s.mu.Unlock()
	s.setState(StateAwaitingInput)
}

func (s *Session) clearPrompt() {
	s.mu.Lock()
	s.pending = ""
	s.mu.Unlock()
}
