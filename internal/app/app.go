package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/glabrego/gemini-cli/internal/gemini"
	"github.com/glabrego/gemini-cli/internal/session"
	"github.com/glabrego/gemini-cli/internal/storage"
)

// ErrNothingToBookmark is returned when the current page has no gemini
// address, such as before the first navigation or on a local page.
var ErrNothingToBookmark = errors.New("no gemini page to bookmark")

// BookmarksURL addresses the locally generated bookmarks page.
var BookmarksURL = &url.URL{Scheme: "about", Opaque: "bookmarks"}

type Browser interface {
	Navigate(ctx context.Context, u *url.URL, record bool) error
	GotoLink(ctx context.Context, i int) error
	GotoOutline(i int) (float64, bool)
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Reload(ctx context.Context) error
	Show(base *url.URL, text string) error
	Page() *session.Page
	State() session.State
	CanBack() bool
	CanForward() bool
}

type Repository interface {
	SaveBookmark(ctx context.Context, b storage.Bookmark) error
	ListBookmarks(ctx context.Context) ([]storage.Bookmark, error)
	DeleteBookmark(ctx context.Context, url string) (bool, error)
	LoadPreferences(ctx context.Context) (storage.Preferences, error)
	SavePreferences(ctx context.Context, prefs storage.Preferences) error
}

type UIPreferences struct {
	NumberLinks bool
	ShowOutline bool
	Homepage    string
}

type Service struct {
	browser  Browser
	repo     Repository
	homepage string
}

// NewService wires the browser to persistence. homepage is the configured
// start page, used when no preferred homepage has been saved.
func NewService(browser Browser, repo Repository, homepage string) *Service {
	return &Service{browser: browser, repo: repo, homepage: homepage}
}

// Open navigates to an address typed by the user.
func (s *Service) Open(ctx context.Context, raw string) error {
	u, err := gemini.ParseInput(raw)
	if err != nil {
		return err
	}
	return s.browser.Navigate(ctx, u, true)
}

// Home navigates to the saved homepage preference, or the configured one.
func (s *Service) Home(ctx context.Context) error {
	return s.Open(ctx, s.Homepage(ctx))
}

func (s *Service) Homepage(ctx context.Context) string {
	prefs, err := s.repo.LoadPreferences(ctx)
	if err == nil && strings.TrimSpace(prefs.Homepage) != "" {
		return prefs.Homepage
	}
	return s.homepage
}

func (s *Service) Back(ctx context.Context) error { return s.browser.Back(ctx) }
func (s *Service) Forward(ctx context.Context) error { return s.browser.Forward(ctx) }

// Reload fetches the current page again. The bookmarks page is rebuilt from
// storage instead.
func (s *Service) Reload(ctx context.Context) error {
	if page := s.browser.Page(); page != nil && page.URL != nil && page.URL.String() == BookmarksURL.String() {
		return s.ShowBookmarks(ctx)
	}
	return s.browser.Reload(ctx)
}

// FollowLink follows the link with the given 0-based ordinal.
func (s *Service) FollowLink(ctx context.Context, i int) error {
	return s.browser.GotoLink(ctx, i)
}

// OutlineTarget returns the relative scroll position of the i-th heading.
func (s *Service) OutlineTarget(i int) (float64, bool) {
	return s.browser.GotoOutline(i)
}

func (s *Service) Page() *session.Page { return s.browser.Page() }
func (s *Service) State() session.State { return s.browser.State() }
func (s *Service) CanBack() bool { return s.browser.CanBack() }
func (s *Service) CanForward() bool { return s.browser.CanForward() }

// AddBookmark stores the current page, titled by its first heading.
func (s *Service) AddBookmark(ctx context.Context) (storage.Bookmark, error) {
	page := s.browser.Page()
	if page == nil || !gemini.IsGemini(page.URL) {
		return storage.Bookmark{}, ErrNothingToBookmark
	}
	b := storage.Bookmark{URL: page.URL.String(), Title: page.URL.String()}
	if h, ok := page.Outline.At(0); ok && h.Text != "" {
		b.Title = h.Text
	}
	if err := s.repo.SaveBookmark(ctx, b); err != nil {
		return storage.Bookmark{}, fmt.Errorf("save bookmark: %w", err)
	}
	return b, nil
}

// ShowBookmarks renders the saved bookmarks as a local page of links.
func (s *Service) ShowBookmarks(ctx context.Context) error {
	bookmarks, err := s.repo.ListBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	return s.browser.Show(BookmarksURL, BookmarksPage(bookmarks))
}

// RemoveBookmark deletes the bookmark for raw, or for the current page when
// raw is empty.
func (s *Service) RemoveBookmark(ctx context.Context, raw string) (bool, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		page := s.browser.Page()
		if page == nil || !gemini.IsGemini(page.URL) {
			return false, ErrNothingToBookmark
		}
		target = page.URL.String()
	}
	removed, err := s.repo.DeleteBookmark(ctx, target)
	if err != nil {
		return false, fmt.Errorf("remove bookmark: %w", err)
	}
	return removed, nil
}

func BookmarksPage(bookmarks []storage.Bookmark) string {
	var b strings.Builder
	b.WriteString("# Bookmarks\n\n")
	if len(bookmarks) == 0 {
		b.WriteString("No bookmarks yet.\n")
		return b.String()
	}
	for _, bm := range bookmarks {
		title := strings.TrimSpace(bm.Title)
		if title == "" || title == bm.URL {
			fmt.Fprintf(&b, "=> %s\n", bm.URL)
			continue
		}
		fmt.Fprintf(&b, "=> %s %s\n", bm.URL, title)
	}
	return b.String()
}

func (s *Service) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	prefs, err := s.repo.LoadPreferences(ctx)
	if err != nil {
		return UIPreferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return UIPreferences{
		NumberLinks: prefs.NumberLinks,
		ShowOutline: prefs.ShowOutline,
		Homepage:    prefs.Homepage,
	}, nil
}

// SaveUIPreferences persists prefs. A non-empty homepage must be a gemini
// address and is stored normalised.
func (s *Service) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	homepage := strings.TrimSpace(prefs.Homepage)
	if homepage != "" {
		u, err := gemini.ParseInput(homepage)
		if err != nil {
			return fmt.Errorf("homepage: %w", err)
		}
		if !gemini.IsGemini(u) {
			return fmt.Errorf("homepage must be a gemini:// URL: %s", homepage)
		}
		homepage = u.String()
	}
	err := s.repo.SavePreferences(ctx, storage.Preferences{
		NumberLinks: prefs.NumberLinks,
		ShowOutline: prefs.ShowOutline,
		Homepage:    homepage,
	})
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
