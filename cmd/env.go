package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/screens/quiz"
	"github.com/abhisek/kotoba/internal/store"
)

// env holds what the data commands share: an open store and a logger.
type env struct {
	store   *store.Store
	logger  *slog.Logger
	logFile io.Closer
}

// openEnv resolves the database and logger for cmd. When tui is set, logs go
// to the state log file instead of stderr since the TUI owns the terminal.
func openEnv(cmd *cobra.Command, tui bool) (*env, error) {
	logger, logFile, err := newLogger(cmd, tui)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("database opened", "path", dbPath)

	return &env{store: st, logger: logger, logFile: logFile}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("failed to close database", "err", err)
	}
	closeQuietly(e.logFile)
}

func (e *env) builder() *pool.Builder {
	return pool.NewBuilder(e.store.ContentRepo(), pool.DefaultConfig(), e.logger.With("component", "pool"))
}

func (e *env) tracker() *progress.Tracker {
	return progress.NewTracker(e.store.KVRepo(), e.logger.With("component", "progress"))
}

func (e *env) quizDeps() quiz.Deps {
	return quiz.Deps{
		Builder:  e.builder(),
		Tracker:  e.tracker(),
		Mistakes: e.store.MistakeRepo(),
		History:  e.store.SessionRepo(),
		Logger:   e.logger.With("component", "session"),
	}
}

// newLogger builds the text logger for --log-level. The returned closer is
// nil when logging to stderr.
func newLogger(cmd *cobra.Command, tui bool) (*slog.Logger, io.Closer, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", raw, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if !tui {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil, nil
	}

	path, err := store.DefaultLogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
