package main

import (
	"io"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var params dto.ReportParams
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print financial reports from the stored books",
	}
	cmd.PersistentFlags().StringVar(&params.From, "from", "", "first entry date included (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&params.To, "to", "", "last entry date included (YYYY-MM-DD)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "trial-balance",
			Short: "Per-account debit and credit totals",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withReport(cmd, params, func(w io.Writer, svcs reportSource, window domain.ReportWindow) error {
					tb, err := svcs.TrialBalance(cmd.Context(), window)
					if err != nil {
						return err
					}
					renderTrialBalance(w, tb)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "profit-and-loss",
			Aliases: []string{"pl"},
			Short:   "Revenue, expenses and net profit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withReport(cmd, params, func(w io.Writer, svcs reportSource, window domain.ReportWindow) error {
					pl, err := svcs.ProfitAndLoss(cmd.Context(), window)
					if err != nil {
						return err
					}
					renderProfitAndLoss(w, pl)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "balance-sheet",
			Short: "Assets against liabilities and equity",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withReport(cmd, params, func(w io.Writer, svcs reportSource, window domain.ReportWindow) error {
					bs, err := svcs.BalanceSheet(cmd.Context(), window)
					if err != nil {
						return err
					}
					renderBalanceSheet(w, bs)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "integrity",
			Short: "Check every stored entry balances",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withReport(cmd, params, func(w io.Writer, svcs reportSource, _ domain.ReportWindow) error {
					report, err := svcs.IntegrityCheck(cmd.Context())
					if err != nil {
						return err
					}
					renderIntegrity(w, report)
					return nil
				})
			},
		},
	)
	return cmd
}
