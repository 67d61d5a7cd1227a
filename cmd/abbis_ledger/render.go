package main

import (
	"fmt"
	"io"

	"github.com/SscSPs/abbis_ledger/internal/cli"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type reportSource = portssvc.ReportingService

// withReport parses the window, opens storage and hands the reporting service to render.
func withReport(cmd *cobra.Command, params dto.ReportParams, render func(io.Writer, reportSource, domain.ReportWindow) error) error {
	window, err := params.ToWindow()
	if err != nil {
		return err
	}

	svcs, closeStorage, err := openServices(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeStorage()

	return render(cmd.OutOrStdout(), svcs.Reporting, window)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func renderTrialBalance(w io.Writer, tb *domain.TrialBalanceReport) {
	rows := make([][]string, 0, len(tb.Rows)+1)
	for _, r := range tb.Rows {
		rows = append(rows, []string{r.Code, r.AccountName, string(r.AccountType), amount(r.Debit), amount(r.Credit)})
	}
	rows = append(rows, []string{"", "Total", "", amount(tb.TotalDebit), amount(tb.TotalCredit)})

	fmt.Fprintln(w, cli.FormatTitle("Trial Balance"))
	fmt.Fprintln(w, cli.RenderTable([]string{"Code", "Account", "Type", "Debit", "Credit"}, rows, 3, 4))
	fmt.Fprintln(w, cli.FormatBalanced(tb.IsBalanced))
}

func accountRows(accounts []domain.AccountAmount) [][]string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.Code, a.Name, amount(a.NetAmount)})
	}
	return rows
}

func renderSection(w io.Writer, title string, accounts []domain.AccountAmount, total decimal.Decimal) {
	rows := append(accountRows(accounts), []string{"", "Total " + title, amount(total)})
	fmt.Fprintln(w, cli.SubtleStyle.Render(title))
	fmt.Fprintln(w, cli.RenderTable([]string{"Code", "Account", "Amount"}, rows, 2))
}

func renderProfitAndLoss(w io.Writer, pl *domain.PAndLReport) {
	fmt.Fprintln(w, cli.FormatTitle("Profit and Loss"))
	renderSection(w, "Revenue", pl.RevenueAccounts, pl.Revenue)
	renderSection(w, "Expenses", pl.ExpenseAccounts, pl.Expenses)
	fmt.Fprintf(w, "Net profit: %s\n", amount(pl.NetProfit))
}

func renderBalanceSheet(w io.Writer, bs *domain.BalanceSheetReport) {
	fmt.Fprintln(w, cli.FormatTitle("Balance Sheet"))
	renderSection(w, "Assets", bs.AssetAccounts, bs.Assets)
	renderSection(w, "Liabilities", bs.LiabilityAccounts, bs.Liabilities)
	renderSection(w, "Equity", bs.EquityAccounts, bs.Equity)
	fmt.Fprintf(w, "Retained earnings: %s\n", amount(bs.RetainedEarnings))
	fmt.Fprintf(w, "Total equity: %s\n", amount(bs.TotalEquity))
	fmt.Fprintln(w, cli.FormatBalanced(bs.IsBalanced))
	if bs.Warning != "" {
		fmt.Fprintln(w, cli.FormatWarning(bs.Warning))
	}
}

func renderIntegrity(w io.Writer, r *domain.IntegrityReport) {
	fmt.Fprintln(w, cli.FormatTitle("Ledger Integrity"))
	fmt.Fprintf(w, "Entries checked: %d\n", r.EntryCount)
	fmt.Fprintf(w, "Total debit: %s  Total credit: %s  Difference: %s\n",
		amount(r.TotalDebit), amount(r.TotalCredit), amount(r.Difference))
	if len(r.UnbalancedEntries) > 0 {
		rows := make([][]string, 0, len(r.UnbalancedEntries))
		for _, e := range r.UnbalancedEntries {
			rows = append(rows, []string{e.EntryNumber, e.Reference, amount(e.Debit), amount(e.Credit), amount(e.Difference)})
		}
		fmt.Fprintln(w, cli.RenderTable([]string{"Entry", "Reference", "Debit", "Credit", "Difference"}, rows, 2, 3, 4))
	}
	fmt.Fprintln(w, cli.FormatBalanced(r.IsBalanced))
}
