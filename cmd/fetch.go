package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/terrarisk/hazard-cli/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> <dest>",
	Short: "Download a hazard dataset file over HTTP or FTP",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := fetch.New(fetch.Options{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			RatePerSec: cfg.Fetch.RatePerSec,
		})
		return client.Download(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
