// main.go
//
// deepwordle entry point.
// Responsibilities:
//   - Load configuration (.env + environment) once per invocation.
//   - Configure the global zerolog logger (level from LOG_LEVEL, console output).
//   - Load the word lists and dispatch to the cobra subcommands.
//
// Running the binary without a subcommand starts a terminal game.

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/config"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/words"
)

var (
	cfg   config.Config
	lists *words.Lists
)

var rootCmd = &cobra.Command{
	Use:   "deepwordle",
	Short: "A wordle clone for the terminal",
	Long: `deepwordle is a wordle clone: guess the five-letter word in six tries.

Run without arguments to start a game in the terminal, or use "serve" to
expose games over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel)

		lists, err = words.Load(cfg.Words())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load word lists")
		}
		a, g := lists.Stats()
		log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists loaded")
		return nil
	},
	RunE: runPlay,
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func init() {
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(wordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
