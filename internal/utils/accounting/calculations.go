package accounting

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest difference still reported as balanced.
var BalanceTolerance = decimal.New(1, -2)

// MaxLineAmount is the largest amount a single line may carry, the capacity of a NUMERIC(15,2) column.
var MaxLineAmount = decimal.RequireFromString("9999999999999.99")

// RoundAmount rounds to cents.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FilterPostingLines drops unused form rows: no account, or nothing on either side.
func FilterPostingLines(lines []domain.PostEntryLine) []domain.PostEntryLine {
	kept := make([]domain.PostEntryLine, 0, len(lines))
	for _, l := range lines {
		if l.AccountID == "" {
			continue
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// ValidateLineAmounts checks that every line is one-sided and that its amount
// is non-negative, in whole cents and at most MaxLineAmount.
func ValidateLineAmounts(lines []domain.PostEntryLine) error {
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return fmt.Errorf("%w: line %d carries both a debit and a credit", apperrors.ErrValidation, i+1)
		}
		for _, amount := range []decimal.Decimal{l.Debit, l.Credit} {
			if !amount.Equal(amount.Truncate(2)) {
				return fmt.Errorf("%w: line %d amount %s has more than two decimal places", apperrors.ErrValidation, i+1, amount.String())
			}
			if amount.GreaterThan(MaxLineAmount) {
				return fmt.Errorf("%w: line %d amount %s exceeds %s", apperrors.ErrValidation, i+1, amount.String(), MaxLineAmount.StringFixed(2))
			}
		}
	}
	return nil
}

// SamePosting reports whether stored records the same posting as the request:
// entry date, reference, description and the filtered lines in order.
func SamePosting(entryDate time.Time, reference, description string, lines []domain.PostEntryLine, stored *domain.JournalEntry) bool {
	if !domain.DateOnly(entryDate).Equal(domain.DateOnly(stored.EntryDate)) ||
		reference != stored.Reference || description != stored.Description ||
		len(lines) != len(stored.Lines) {
		return false
	}
	for i, l := range lines {
		s := stored.Lines[i]
		if l.AccountID != s.AccountID || l.Memo != s.Memo || !l.Debit.Equal(s.Debit) || !l.Credit.Equal(s.Credit) {
			return false
		}
	}
	return true
}

// SumLines returns the debit and credit totals, each rounded to cents.
func SumLines(lines []domain.PostEntryLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return RoundAmount(debit), RoundAmount(credit)
}

// ValidateEntryBalance checks that rounded debits equal rounded credits.
func ValidateEntryBalance(lines []domain.PostEntryLine) error {
	debit, credit := SumLines(lines)
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debits total %s, credits total %s",
			apperrors.ErrUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// ReverseLines swaps debit and credit on every line.
func ReverseLines(lines []domain.JournalEntryLine) []domain.PostEntryLine {
	reversed := make([]domain.PostEntryLine, len(lines))
	for i, l := range lines {
		reversed[i] = domain.PostEntryLine{
			AccountID: l.AccountID,
			Debit:     l.Credit,
			Credit:    l.Debit,
			Memo:      l.Memo,
		}
	}
	return reversed
}

// ApplyRunningBalance folds debit minus credit left to right, starting at zero.
// The input order is kept and the slice is updated in place.
func ApplyRunningBalance(lines []domain.LedgerLine) []domain.LedgerLine {
	balance := decimal.Zero
	for i := range lines {
		balance = balance.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].RunningBalance = balance
	}
	return lines
}

func sortTotals(totals []domain.AccountTotals) []domain.AccountTotals {
	sorted := slices.Clone(totals)
	slices.SortStableFunc(sorted, func(a, b domain.AccountTotals) int {
		if c := cmp.Compare(a.AccountType.Rank(), b.AccountType.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return sorted
}

// BuildTrialBalance lists every account's totals and the overall checksum.
func BuildTrialBalance(totals []domain.AccountTotals) domain.TrialBalanceReport {
	report := domain.TrialBalanceReport{
		Rows:        make([]domain.TrialBalanceRow, 0, len(totals)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, t := range sortTotals(totals) {
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   t.AccountID,
			Code:        t.Code,
			AccountName: t.Name,
			AccountType: t.AccountType,
			Debit:       t.Debit,
			Credit:      t.Credit,
		})
		report.TotalDebit = report.TotalDebit.Add(t.Debit)
		report.TotalCredit = report.TotalCredit.Add(t.Credit)
	}
	report.IsBalanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThan(BalanceTolerance)
	return report
}

// netByType sums the natural-side balance of every account of type t.
// Debit-normal types net debit minus credit; the others credit minus debit.
func netByType(totals []domain.AccountTotals, t domain.AccountType) (decimal.Decimal, []domain.AccountAmount) {
	sum := decimal.Zero
	amounts := []domain.AccountAmount{}
	for _, at := range totals {
		if at.AccountType != t {
			continue
		}
		var net decimal.Decimal
		switch t {
		case domain.Asset, domain.Expense:
			net = at.Debit.Sub(at.Credit)
		default:
			net = at.Credit.Sub(at.Debit)
		}
		sum = sum.Add(net)
		amounts = append(amounts, domain.AccountAmount{
			AccountID: at.AccountID,
			Code:      at.Code,
			Name:      at.Name,
			NetAmount: net,
		})
	}
	return sum, amounts
}

// BuildProfitAndLoss computes revenue, expenses and net profit.
func BuildProfitAndLoss(totals []domain.AccountTotals) domain.PAndLReport {
	sorted := sortTotals(totals)
	revenue, revenueAccounts := netByType(sorted, domain.Revenue)
	expenses, expenseAccounts := netByType(sorted, domain.Expense)
	return domain.PAndLReport{
		Revenue:         revenue,
		Expenses:        expenses,
		NetProfit:       revenue.Sub(expenses),
		RevenueAccounts: revenueAccounts,
		ExpenseAccounts: expenseAccounts,
	}
}

// BuildBalanceSheet computes the balance sheet with net income carried into
// equity as retained earnings.
func BuildBalanceSheet(totals []domain.AccountTotals) domain.BalanceSheetReport {
	sorted := sortTotals(totals)
	assets, assetAccounts := netByType(sorted, domain.Asset)
	liabilities, liabilityAccounts := netByType(sorted, domain.Liability)
	equity, equityAccounts := netByType(sorted, domain.Equity)
	pl := BuildProfitAndLoss(sorted)

	report := domain.BalanceSheetReport{
		Assets:            assets,
		Liabilities:       liabilities,
		Equity:            equity,
		RetainedEarnings:  pl.NetProfit,
		TotalEquity:       equity.Add(pl.NetProfit),
		AssetAccounts:     assetAccounts,
		LiabilityAccounts: liabilityAccounts,
		EquityAccounts:    equityAccounts,
	}
	diff := report.Assets.Sub(report.Liabilities.Add(report.TotalEquity))
	report.IsBalanced = diff.Abs().LessThan(BalanceTolerance)
	if !report.IsBalanced {
		report.Warning = fmt.Sprintf("assets differ from liabilities plus equity by %s", diff.StringFixed(2))
	}
	return report
}

// BuildIntegrityReport checks the books as a whole and entry by entry.
func BuildIntegrityReport(entries []domain.EntryTotals) domain.IntegrityReport {
	report := domain.IntegrityReport{
		TotalDebit:        decimal.Zero,
		TotalCredit:       decimal.Zero,
		EntryCount:        len(entries),
		UnbalancedEntries: []domain.EntryImbalance{},
	}
	for _, e := range entries {
		report.TotalDebit = report.TotalDebit.Add(e.Debit)
		report.TotalCredit = report.TotalCredit.Add(e.Credit)
		diff := e.Debit.Sub(e.Credit).Abs()
		if !diff.LessThan(BalanceTolerance) {
			report.UnbalancedEntries = append(report.UnbalancedEntries, domain.EntryImbalance{
				EntryTotals: e,
				Difference:  diff,
			})
		}
	}
	report.Difference = report.TotalDebit.Sub(report.TotalCredit).Abs()
	report.IsBalanced = report.Difference.LessThan(BalanceTolerance)
	return report
}
