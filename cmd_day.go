// cmd_day.go
//
// "day" and "words" commands: small diagnostics.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/daily"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Print the day index used in shared results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := time.Now()
		if dayDate != "" {
			var err error
			if d, err = daily.ParseDate(dayDate); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s day %d\n", daily.DateKey(d), daily.DayIndex(d, cfg.Epoch()))
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Print word list statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, g := lists.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "answers: %d\nallowed: %d\n", a, g)
		return nil
	},
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Date to use instead of today (YYYY-MM-DD)")
}
