package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfmyers9/chartthread/internal/charts"
	"github.com/jfmyers9/chartthread/internal/config"
	"github.com/jfmyers9/chartthread/internal/poster"
	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the Spotify and X credentials",
	Long: `Check that every configured credential is accepted.

This command will:
  - Request a Spotify access token with the client credentials
  - Verify the X OAuth1 user credentials
  - Look up the same account with the X bearer token

Nothing is posted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := setupLogger(logFile, logLevel)
		httpClient := &http.Client{Timeout: requestTimeout}
		ctx := context.Background()

		source, err := charts.NewSource(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, httpClient, logger)
		if err != nil {
			return err
		}
		if _, err := source.AccessToken(ctx); err != nil {
			return fmt.Errorf("spotify: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Spotify client credentials accepted")

		xPoster, err := poster.NewX(xConfig(cfg, httpClient), logger)
		if err != nil {
			return fmt.Errorf("failed to create X client: %w", err)
		}
		account, err := xPoster.Verify(ctx)
		if err != nil {
			return fmt.Errorf("x: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ X credentials accepted, posting as @%s (id %s)\n", account.ScreenName, account.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
