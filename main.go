package main

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"showdown-bot/bot"
	"showdown-bot/commands/defs"
	"showdown-bot/config"
	"showdown-bot/moderation/punishlog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var db *sqlx.DB
	if cfg.PunishLogPath != "" {
		if err := os.MkdirAll("./data", os.ModePerm); err != nil {
			log.Fatal().Err(err).Msg("failed to create data directory")
		}
		db, err = punishlog.Init(cfg.PunishLogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize punishment log")
		}
	}

	b := bot.New(cfg, db)
	defer b.Close()

	defs.Register(b.Commands, &defs.Deps{
		Config:  b,
		Users:   b.Users,
		Rooms:   b.Rooms,
		Formats: b.Formats,
		Sender:  b,
		Await:   b.Parser.Await,
		ModLog:  db,
		Start:   b.Started(),
	})

	if err := b.Run(); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
