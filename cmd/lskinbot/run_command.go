package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"lskinbot/internal/bot"
	"lskinbot/internal/config"
	"lskinbot/internal/gate"
	"lskinbot/internal/journal"
	"lskinbot/internal/logging"
	"lskinbot/internal/pipeline"
	"lskinbot/internal/telegram"
	"lskinbot/internal/workspace"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot and process updates until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runBot(cmd, cfg)
		},
	}
}

func runBot(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Two processes polling one bot token steal updates from each other.
	lockPath := filepath.Join(cfg.Paths.LogDir, "lskinbot.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another lskinbot instance is already running")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release instance lock", logging.Error(err))
		}
	}()

	staleAfter := time.Duration(cfg.Workspace.StaleAfterMinutes) * time.Minute
	sweep := workspace.CleanStale(cfg.Paths.WorkDir, staleAfter, logger)
	if len(sweep.Removed) > 0 {
		logger.Info("startup workspace sweep finished", logging.Int("removed", len(sweep.Removed)))
	}

	store, err := journal.Open(cfg.Paths.LogDir)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	client, err := telegram.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect telegram: %w", err)
	}

	checker := gate.NewChecker(client, logger)
	runner := pipeline.NewRunner(cfg.Paths.WorkDir, checker, client, client, store, logger)
	dispatcher := bot.New(runner, checker, client, logger)

	updates := client.Updates(cfg.Telegram.PollTimeout)
	go func() {
		<-ctx.Done()
		client.Stop()
	}()

	logger.Info("lskinbot started",
		logging.String("bot_username", client.BotUsername()),
		logging.String("work_dir", cfg.Paths.WorkDir),
	)
	dispatcher.Run(ctx, updates)
	logger.Info("lskinbot shutting down")
	return nil
}
