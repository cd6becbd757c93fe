/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chartthread",
	Short: "Post Spotify chart threads to X",
	Long: `chartthread posts the daily Spotify charts to X as threads.

Every cycle it fetches the Top 33 Global and Top 33 Brasil playlists
from the Spotify Web API and publishes each one as a title post followed
by numbered replies that fit the 280 character limit. Cycles repeat
every 24 hours.

Credentials are read from the environment or from a .env file:
  CLIENT_ID_SPOTIFY, CLIENT_SECRET_SPOTIFY, BEARER_TOKEN_TWITTER,
  CONSUMER_KEY_TWITTER, CONSUMER_SECRET_TWITTER,
  ACCESS_TOKEN_TWITTER, ACCESS_TOKEN_SECRET_TWITTER

Running chartthread without a subcommand is the same as 'chartthread daemon'.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	RunE:    runDaemon,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
