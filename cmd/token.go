package cmd

import (
	"fmt"
	"time"

	"github.com/alexiusacademia/gofluid/internal/api"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the history API",
	Long: `Sign a token with server.token_key (or GOFLUID_TOKEN_KEY) for the
history routes of 'gofluid serve'.

Examples:
  gofluid token --subject lab-pc --ttl 168h`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "gofluid", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default from config)")
}

func runToken(cmd *cobra.Command, args []string) error {
	ttl := tokenTTL
	if ttl == 0 {
		ttl = cfg.Server.TokenTTL
	}
	tok, err := api.IssueToken([]byte(cfg.Server.TokenKey), tokenSubject, ttl, time.Now())
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
