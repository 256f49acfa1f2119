package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/playable/dailygames/internal/analytics"
	"github.com/playable/dailygames/internal/httpserver"
	"github.com/playable/dailygames/internal/persist"
	"github.com/playable/dailygames/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := openDB(getEnv("SQLITE_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	kv := persist.NewSQLite(db)
	srv := httpserver.New(kv, db, words.Default(), analytics.NewLog(log.Logger))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting dailygames server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
