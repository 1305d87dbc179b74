package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/arena"
	"github.com/domino14/fishderby/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("arena-starting")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := arena.New(cfg)
	rep, err := a.Run(ctx)
	if err != nil {
		log.Err(err).Msg("arena-failed")
		return
	}
	if err := rep.Fprint(os.Stdout); err != nil {
		log.Err(err).Msg("print-report")
	}
	if out := cfg.GetString(config.ConfigArenaOut); out != "" {
		if err := arena.WriteRecords(out, a.Records()); err != nil {
			log.Err(err).Msg("write-records")
			return
		}
		log.Info().Str("path", out).Int("rows", len(a.Records())).Msg("wrote-records")
	}
}
