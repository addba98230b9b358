// docquery TUI - a terminal client for a document question-answering service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/auth"
	"github.com/jeranaias/docquery-tui/internal/config"
	"github.com/jeranaias/docquery-tui/internal/corpus"
	"github.com/jeranaias/docquery-tui/internal/logging"
	"github.com/jeranaias/docquery-tui/internal/session"
	"github.com/jeranaias/docquery-tui/internal/settings"
	"github.com/jeranaias/docquery-tui/internal/ui"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "docquery:", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env next to the binary can point at a different backend.
	_ = godotenv.Load()

	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("docquery %s (%s)\n", Version, GitCommit)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dir, err := config.EnsureDir()
	if err != nil {
		return err
	}

	logPath, err := cfg.LogFile()
	if err != nil {
		return err
	}
	logger, closeLog := logging.New(cfg.Log, logPath)
	defer closeLog()

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("server", cfg.Server.URL))

	tokens := auth.NewTokenStore(dir)

	client := api.NewClient(cfg.Server.URL, tokens).WithLogger(logger)
	if cfg.Server.AskByPath {
		client = client.WithPathQuestions(true)
	}

	guard := auth.NewGuard(client, tokens)

	app := ui.NewApp(ui.Deps{
		Theme:    styles.NewTheme(cfg.UI.Theme),
		API:      client,
		Guard:    guard,
		Session:  session.NewManager(client).WithLogger(logger),
		Settings: settings.NewStore(client).WithLogger(logger),
		Corpus:   corpus.NewManager(client).WithLogger(logger),
		Markdown: cfg.UI.Markdown,
		Logger:   logger,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())

	// The 401 hook fires inside a command goroutine; Send is the safe
	// way back into the event loop.
	client.WithSessionExpiredHook(func() {
		program.Send(ui.SessionExpiredMsg{})
	})

	if _, err := program.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		return err
	}

	logger.Info("shutdown")
	return nil
}
