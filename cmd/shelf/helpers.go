package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/config"
	"github.com/Veraticus/shelf/internal/engine"
	"github.com/Veraticus/shelf/internal/extract"
	"github.com/Veraticus/shelf/internal/llm"
	"github.com/Veraticus/shelf/internal/organizer"
	"github.com/Veraticus/shelf/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveFolder picks the base folder: the positional argument if given,
// otherwise --folder or the folder config key.
func resolveFolder(args []string) (string, error) {
	folder := viper.GetString(config.KeyFolder)
	if len(args) > 0 && args[0] != "" {
		folder = args[0]
	}
	if folder == "" {
		return "", common.NewUserError("No folder given: pass one as an argument or with --folder", common.ErrNoFolder)
	}

	abs, err := filepath.Abs(config.ExpandPath(folder))
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder: %w", err)
	}
	return abs, nil
}

// resolvePaths makes file arguments absolute.
func resolvePaths(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(config.ExpandPath(arg))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

// journalEnabled reports whether batches should be recorded.
func journalEnabled(cmd *cobra.Command) bool {
	if off, err := cmd.Flags().GetBool("no-journal"); err == nil && off {
		return false
	}
	return viper.GetBool(config.KeyJournalEnabled)
}

// openJournal opens and migrates the batch journal.
func openJournal(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString(config.KeyDatabasePath))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return store, nil
}

// createClassifier builds the LLM classifier from configuration.
func createClassifier() (*llm.Classifier, error) {
	cfg, err := config.LoadLLMConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	slog.Debug("Using LLM provider", "provider", cfg.Provider, "model", cfg.Model)
	return llm.NewClassifier(cfg, slog.Default())
}

// engineOptions controls what newEngine wires in.
type engineOptions struct {
	observer   engine.Observer
	classifier bool
}

// newEngine builds an engine; the returned cleanup closes the journal.
func newEngine(cmd *cobra.Command, opts engineOptions) (*engine.Engine, func(), error) {
	cleanup := func() {}
	engineOpts := []engine.Option{
		engine.WithLogger(slog.Default()),
		engine.WithObserver(opts.observer),
	}

	if journalEnabled(cmd) {
		store, err := openJournal(cmd.Context())
		if err != nil {
			// The journal is a record only; batches run without it.
			slog.Warn("Batch journal unavailable", "error", err)
		} else {
			engineOpts = append(engineOpts, engine.WithJournal(store))
			cleanup = func() { _ = store.Close() }
		}
	}

	var classifier engine.Classifier
	if opts.classifier {
		c, err := createClassifier()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		classifier = c
	}

	eng := engine.New(extract.NewRegistry(), classifier, organizer.NewMover(slog.Default()), engineOpts...)
	return eng, cleanup, nil
}

// userFacing attaches a readable message to the sentinel errors a batch
// can be refused with.
func userFacing(err error) error {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return err
	}

	switch {
	case errors.Is(err, common.ErrNoFolder):
		return common.NewUserError("No folder selected", err)
	case errors.Is(err, common.ErrNoSelection):
		return common.NewUserError("No files selected", err)
	case errors.Is(err, common.ErrInvalidTag):
		return common.NewUserError(err.Error(), err)
	case errors.Is(err, common.ErrMissingConfig):
		return common.NewUserError("LLM credentials missing: set llm.api_key or SHELF_LLM_API_KEY", err)
	case errors.Is(err, common.ErrInvalidConfig):
		return common.NewUserError(err.Error(), err)
	default:
		return err
	}
}
