// DocuMind TUI - a terminal client for the DocuMind document QA server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/chat"
	"github.com/documind/documind-tui/internal/cli"
	"github.com/documind/documind-tui/internal/config"
	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/ui"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/upload"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		plain      = flag.Bool("plain", false, "run the line-mode REPL instead of the full TUI")
		serverURL  = flag.String("server", "", "DocuMind server URL (overrides config)")
		configPath = flag.String("config", "", "path to config file")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("documind %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	sess := session.New()
	client := api.NewClient(sess, &api.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Timeout(),
	})

	store, err := session.DefaultStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	if *plain {
		runPlain(sess, client, store)
		return
	}
	runTUI(cfg, *configPath, sess, client, store)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func runPlain(sess *session.Session, client *api.Client, store *session.Store) {
	theme := styles.New(store.Load().Theme)

	repl := cli.New(client, sess, theme)
	defer repl.Close()

	if err := repl.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "documind: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config, configPath string, sess *session.Session, client *api.Client, store *session.Store) {
	// Stray stdlib log output corrupts the alternate screen. Route it
	// to the configured file, or drop it.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "documind")
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var p *tea.Program
	bridge := ui.NewBridge(func(msg interface{}) {
		if m, ok := msg.(tea.Msg); ok && p != nil {
			p.Send(m)
		}
	})

	chatMgr := chat.NewManager(client, sess, bridge, bridge, bridge, bridge)
	uploads := upload.NewManager(client, bridge, bridge)
	client.WithAuthFailureHandler(func() {
		if p != nil {
			p.Send(ui.AuthExpiredMsg{})
		}
	})

	m := ui.New(cfg, sess, client, chatMgr, uploads, store)
	p = tea.NewProgram(m, tea.WithAltScreen())

	uploads.OnProgress = func(index, total int, name string) {
		p.Send(ui.UploadProgressMsg{Index: index, Total: total, Name: name})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startConfigWatcher(ctx, configPath, p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "documind: %v\n", err)
		os.Exit(1)
	}
}

// startConfigWatcher reloads the config file on change and notifies
// the running program. Watch failures are not fatal.
func startConfigWatcher(ctx context.Context, configPath string, p *tea.Program) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	w, err := config.NewWatcher(path)
	if err != nil {
		log.Printf("config watch: %v", err)
		return
	}
	go w.Watch(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cfg, ok := <-w.Updates():
				if !ok {
					return
				}
				p.Send(ui.ConfigReloadedMsg{Config: cfg})
			}
		}
	}()
}
