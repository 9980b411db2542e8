package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/gemini-cli/internal/app"
	"github.com/glabrego/gemini-cli/internal/config"
	"github.com/glabrego/gemini-cli/internal/gemini"
	"github.com/glabrego/gemini-cli/internal/logging"
	"github.com/glabrego/gemini-cli/internal/session"
	"github.com/glabrego/gemini-cli/internal/storage"
	"github.com/glabrego/gemini-cli/internal/tui"
	tuiplatform "github.com/glabrego/gemini-cli/internal/tui/platform"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		log.Fatalf("log init error: %v", err)
	}
	defer logCloser.Close()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		log.Fatalf("storage write check failed (%v). Verify GEMINI_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	client := gemini.NewClient(gemini.ClientOptions{
		Timeout:          cfg.Timeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Logger:           logger.WithPrefix("gemini"),
	})

	var program *tea.Program
	opener := tuiplatform.Opener{
		Copied: func(u *url.URL) {
			if program != nil {
				program.Send(tui.StatusMsg{Text: fmt.Sprintf("Could not open %s link, URL copied to clipboard", u.Scheme)})
			}
		},
	}

	bridge := tui.NewPromptBridge()
	sess := session.New(client, bridge, opener, session.Options{
		Policy:       gemini.Policy{AutoFollowRedirects: cfg.AutoFollowRedirects},
		MaxRedirects: cfg.MaxRedirects,
		Logger:       logger.WithPrefix("session"),
	})
	service := app.NewService(sess, repo, cfg.Homepage)

	startURL := ""
	if len(os.Args) > 1 {
		startURL = os.Args[1]
	}
	model := tui.NewModel(service, bridge, startURL)

	prefCtx, prefCancel := context.WithTimeout(context.Background(), 5*time.Second)
	prefs, err := service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		logger.Warn("could not load UI preferences, using defaults", "err", err)
		fmt.Fprintf(os.Stderr, "warning: could not load UI preferences (%v), using defaults\n", err)
	} else {
		model.ApplyPreferences(prefs)
	}

	logger.Info("starting", "homepage", service.Homepage(ctx), "db", cfg.DBPath)
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
