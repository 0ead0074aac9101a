package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"epidemic-scenarios/internal/handler"
	"epidemic-scenarios/internal/metrics"
	"epidemic-scenarios/internal/seir"
	"epidemic-scenarios/internal/session"
)

const (
	defaultICUBeds    = 1200
	defaultSessionTTL = 30 * time.Minute
	janitorInterval   = time.Minute
)

func main() {
	log := newLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	icuBeds := envInt("ICU_BEDS", defaultICUBeds)
	ttl := envDuration("SESSION_TTL", defaultSessionTTL)

	mc, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics registration failed")
	}

	reg := session.NewRegistry(seir.New(), icuBeds, ttl, log, mc)
	go reg.Janitor(context.Background(), janitorInterval)

	h := handler.New(reg, log)

	log.Info().
		Str("port", port).
		Int("icu_beds", icuBeds).
		Dur("session_ttl", ttl).
		Msg("scenario engine starting")
	if err := fasthttp.ListenAndServe(":"+port, h.Handle); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if os.Getenv("LOG_PRETTY") == "1" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
