package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-tenbox/internal/config"
	"go-tenbox/internal/httpserver"
	"go-tenbox/internal/scoring"
)

func main() {
	mint := flag.String("mint", "", "Print a submission token for the given subject and exit")
	ttl := flag.Duration("ttl", 24*time.Hour, "Lifetime of a token printed with -mint")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if *mint != "" {
		if cfg.RankdJWTSecret == "" {
			fmt.Fprintln(os.Stderr, "RANKD_JWT_SECRET is not set")
			os.Exit(1)
		}
		tok, err := httpserver.SignToken(cfg.RankdJWTSecret, *mint, *ttl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to sign token")
		}
		fmt.Println(tok)
		return
	}

	storage, closeStorage, err := scoring.OpenStorage(cfg.Store, cfg.Rankings)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Rankings).Msg("failed to open rankings")
	}
	defer closeStorage()

	store := scoring.NewRankingStore(storage, log.Logger)
	srv := httpserver.New(store, cfg.RankdJWTSecret, log.Logger)

	log.Info().
		Str("addr", cfg.RankdAddr).
		Str("store", cfg.Store).
		Str("path", cfg.Rankings).
		Bool("auth", cfg.RankdJWTSecret != "").
		Msg("starting tenbox-rankd")
	if err := srv.Start(cfg.RankdAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
