// cmd_serve.go
//
// "serve" command: exposes games over HTTP (see internal/httpserver).
// Idle games are swept once their token lifetime has passed.

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/httpserver"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go sweep(ctx, mem, cfg.TokenTTL)

	srv := httpserver.New(mem, lists, httpserver.Options{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Epoch:       cfg.Epoch(),
		DailySalt:   cfg.DailySalt,
		ShareFooter: cfg.ShareFooter,
		Logger:      log.Logger,
	})
	log.Info().Str("port", cfg.Port).Msg("starting deepwordle server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	return nil
}

// sweep drops idle games every ttl/4 until ctx is done.
func sweep(ctx context.Context, mem *store.Memory, ttl time.Duration) {
	every := ttl / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Sweep(ttl); n > 0 {
				log.Debug().Int("dropped", n).Int("remaining", mem.Len()).Msg("swept idle games")
			}
		}
	}
}
