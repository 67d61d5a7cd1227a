package main

import (
	"fmt"

	"github.com/SscSPs/abbis_ledger/internal/cli"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default chart of accounts",
		Long:  "Insert every default account whose code is not already present. Running it twice creates nothing the second time.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svcs, closeStorage, err := openServices(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeStorage()

			created, err := svcs.Account.SeedDefaultAccounts(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to seed accounts: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created %d default accounts", created)))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "system", "user recorded as creator of the seeded accounts")
	return cmd
}
