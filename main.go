package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/words"
)

const usage = "usage: hangman [play|serve|stats|migrate]"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	// stdout belongs to the game; logs go to stderr.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	cmd := "play"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	var err error
	switch cmd {
	case "play":
		err = runPlay(ctx, cfg)
	case "serve":
		err = runServe(cfg)
	case "stats":
		err = runStats(ctx, cfg, os.Stdout)
	case "migrate":
		err = runMigrate(cfg)
	default:
		log.Fatal().Str("command", cmd).Msg(usage)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("exited")
	}
}
