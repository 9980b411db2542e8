package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/gemini-cli/internal/app"
	"github.com/glabrego/gemini-cli/internal/storage"
)

type Service interface {
	Open(ctx context.Context, raw string) error
	Home(ctx context.Context) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Reload(ctx context.Context) error
	FollowLink(ctx context.Context, i int) error
	ShowBookmarks(ctx context.Context) error
	AddBookmark(ctx context.Context) (storage.Bookmark, error)
	RemoveBookmark(ctx context.Context, raw string) (bool, error)
	SaveUIPreferences(ctx context.Context, prefs app.UIPreferences) error
}

type NavigateSuccessMsg struct {
	Op       string
	Duration time.Duration
}

type NavigateErrorMsg struct {
	Op       string
	Err      error
	Duration time.Duration
}

type BookmarkSuccessMsg struct {
	Status string
}

type BookmarkErrorMsg struct {
	Err error
}

type PreferencesSavedMsg struct{}

type PreferencesErrorMsg struct {
	Err error
}

type CopyURLSuccessMsg struct {
	Status string
}

type CopyURLErrorMsg struct {
	Err error
}

// Navigations run under parent without a deadline of their own: they may
// wait on the user to answer an input prompt, and the transport applies its
// own timeout to each request.
func navigate(parent context.Context, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if err := fn(parent); err != nil {
			return NavigateErrorMsg{Op: op, Err: err, Duration: time.Since(start)}
		}
		return NavigateSuccessMsg{Op: op, Duration: time.Since(start)}
	}
}

func OpenCmd(parent context.Context, service Service, raw string) tea.Cmd {
	return navigate(parent, "open", func(ctx context.Context) error {
		return service.Open(ctx, raw)
	})
}

func HomeCmd(parent context.Context, service Service) tea.Cmd {
	return navigate(parent, "home", service.Home)
}

func BackCmd(parent context.Context, service Service) tea.Cmd {
	return navigate(parent, "back", service.Back)
}

func ForwardCmd(parent context.Context, service Service) tea.Cmd {
	return navigate(parent, "forward", service.Forward)
}

func ReloadCmd(parent context.Context, service Service) tea.Cmd {
	return navigate(parent, "reload", service.Reload)
}

func FollowLinkCmd(parent context.Context, service Service, i int) tea.Cmd {
	return navigate(parent, "follow", func(ctx context.Context) error {
		return service.FollowLink(ctx, i)
	})
}

func ShowBookmarksCmd(parent context.Context, service Service) tea.Cmd {
	return navigate(parent, "bookmarks", service.ShowBookmarks)
}

func AddBookmarkCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		b, err := service.AddBookmark(ctx)
		if err != nil {
			return BookmarkErrorMsg{Err: err}
		}
		return BookmarkSuccessMsg{Status: "Bookmarked " + b.Title}
	}
}

func RemoveBookmarkCmd(service Service, raw string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		removed, err := service.RemoveBookmark(ctx, raw)
		if err != nil {
			return BookmarkErrorMsg{Err: err}
		}
		if !removed {
			return BookmarkSuccessMsg{Status: "Page was not bookmarked"}
		}
		return BookmarkSuccessMsg{Status: "Bookmark removed"}
	}
}

func SavePreferencesCmd(service Service, prefs app.UIPreferences) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := service.SaveUIPreferences(ctx, prefs); err != nil {
			return PreferencesErrorMsg{Err: err}
		}
		return PreferencesSavedMsg{}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return CopyURLErrorMsg{Err: errors.New("no URL to copy")}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return CopyURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return CopyURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
