package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		expiry  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if expiry <= 0 {
				expiry = cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(subject, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "user ID placed in the token subject")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
