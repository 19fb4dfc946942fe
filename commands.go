// commands.go
//
// Subcommands behind main:
//   - play:    console session on stdin/stdout (default).
//   - serve:   HTTP surface on PORT.
//   - stats:   summary + recent rounds from HANGMAN_DB.
//   - migrate: apply history migrations to HANGMAN_DB.
//
// History is opt-in: with HANGMAN_DB unset, play and serve touch no files.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/console"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

var errHistoryDisabled = errors.New("HANGMAN_DB is not set")

// openHistory migrates and opens the history DB when configured.
// The returned store is nil when history is disabled.
func openHistory(cfg config.Config) (*history.Store, func(), error) {
	if !cfg.HistoryEnabled() {
		return nil, func() {}, nil
	}
	if err := history.Migrate(cfg.HistoryDB); err != nil {
		return nil, nil, err
	}
	db, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	return history.NewStore(db), func() { _ = db.Close() }, nil
}

func runPlay(ctx context.Context, cfg config.Config) error {
	hist, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var rec console.Recorder
	if hist != nil {
		rec = hist
	}
	g := game.New(words.NewPicker(nil))
	return console.NewSession(os.Stdin, os.Stdout, g, rec).Run(ctx)
}

func runServe(cfg config.Config) error {
	hist, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Picker:       words.NewPicker(nil),
		Words:        words.List(),
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.ClientOrigin,
		History:      hist,
	})
	log.Info().Str("port", cfg.Port).Bool("history", hist != nil).Msg("starting hangman server")
	return srv.Start(":" + cfg.Port)
}

func runStats(ctx context.Context, cfg config.Config, out io.Writer) error {
	hist, closeFn, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	if hist == nil {
		return errHistoryDisabled
	}

	sum, err := hist.Summary(ctx)
	if err != nil {
		return fmt.Errorf("history summary: %w", err)
	}
	recent, err := hist.Recent(ctx, 10)
	if err != nil {
		return fmt.Errorf("history recent: %w", err)
	}

	fmt.Fprintf(out, "Played: %d  Won: %d  Lost: %d  Streak: %d\n\n", sum.Played, sum.Wins, sum.Losses, sum.Streak)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tWORD\tRESULT\tMISTAKES\tLETTERS")
	for _, r := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.FinishedAt.Local().Format(time.DateTime), r.Word, r.State, r.Mistakes, r.Guessed)
	}
	return tw.Flush()
}

func runMigrate(cfg config.Config) error {
	if !cfg.HistoryEnabled() {
		return errHistoryDisabled
	}
	return history.Migrate(cfg.HistoryDB)
}
