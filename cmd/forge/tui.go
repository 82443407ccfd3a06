package main

import (
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrbonezy/forge/app"
	"github.com/mrbonezy/forge/config"
	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/logging"
	"github.com/mrbonezy/forge/tasks"
	"github.com/mrbonezy/forge/ui"
)

func runTUI(opts rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := logging.ParseLevel(cfg.LogLevel)
	if opts.debug {
		level = slog.LevelDebug
	}
	initUILogging(level)
	defer logging.Close()
	ui.SetupColor(config.NoColor())

	log := logging.With("cli")
	var git app.GitClient
	if client, err := gitclient.Discover(opts.dir); err != nil {
		log.Info("starting without repository", "dir", opts.dir, "error", err)
	} else {
		git = client
		log.Info("opened repository", "workdir", client.Workdir())
	}

	mgr := tasks.NewManager(openRemote, tasks.WithExplainer(gitclient.ExplainError))
	state := app.NewState(app.Options{
		Git:        git,
		Tasks:      mgr,
		Config:     cfg,
		Clipboard:  clipboard.WriteAll,
		SaveConfig: config.Save,
	})
	p := tea.NewProgram(app.NewModel(state, mgr.Close), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// initUILogging sends records to the log file, or drops them when there is
// no usable path. Nothing may reach stderr while the alt screen is up.
func initUILogging(level slog.Level) {
	path, err := config.LogFile()
	if err != nil {
		path = ""
	}
	// Logging is best effort; InitFile discards output when it fails.
	_ = logging.InitFile(path, level)
}

// openRemote gives every background job its own client.
func openRemote(workdir string) (tasks.Remote, error) {
	client, err := gitclient.Discover(workdir)
	if err != nil {
		return nil, err
	}
	return client, nil
}
