package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/core/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/abbis_ledger/internal/utils/accounting"
	"github.com/SscSPs/abbis_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBooks migrates a fresh database, seeds the default chart and returns
// the services with a map of account code to ID.
func newBooks(t *testing.T) (*portssvc.ServiceContainer, map[string]string) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, database.RunMigrations(database.BackendSQLite, path, slog.New(slog.NewTextHandler(io.Discard, nil))))
	db, err := database.NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	repos := sqlite.NewRepositoryProvider(db)
	t.Cleanup(repos.Close)

	var mu sync.Mutex
	clock := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	svc := services.NewServiceContainer(repos, services.WithClock(tick))

	n, err := svc.Account.SeedDefaultAccounts(ctx, "tester")
	require.NoError(t, err)
	require.Equal(t, len(domain.DefaultChartOfAccounts), n)

	accounts, err := svc.Account.ListAccounts(ctx, false)
	require.NoError(t, err)
	codes := make(map[string]string, len(accounts))
	for _, a := range accounts {
		codes[a.Code] = a.AccountID
	}
	return svc, codes
}

func entryRequest(date, debitAccount, creditAccount, amount string) dto.PostEntryRequest {
	amt := decimal.RequireFromString(amount)
	return dto.PostEntryRequest{
		EntryDate: date,
		Lines: []dto.PostEntryLineRequest{
			{AccountID: debitAccount, Debit: amt},
			{AccountID: creditAccount, Credit: amt},
		},
	}
}

func TestPosting_LedgerRunningBalance(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	cash, revenue, wages := codes["1000"], codes["4000"], codes["5100"]

	_, err := svc.Journal.PostEntry(ctx, entryRequest("2025-03-01", cash, revenue, "100"), "tester")
	require.NoError(t, err)
	_, err = svc.Journal.PostEntry(ctx, entryRequest("2025-03-02", wages, cash, "40"), "tester")
	require.NoError(t, err)
	_, err = svc.Journal.PostEntry(ctx, entryRequest("2025-03-03", wages, cash, "60"), "tester")
	require.NoError(t, err)

	ledger, err := svc.Ledger.GetLedger(ctx, cash)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	assert.True(t, ledger[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, ledger[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, ledger[2].RunningBalance.IsZero())

	tb, err := svc.Reporting.TrialBalance(ctx, domain.ReportWindow{})
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(200)))

	integrity, err := svc.Reporting.IntegrityCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, integrity.EntryCount)
	assert.True(t, integrity.IsBalanced)
}

func TestPosting_RejectedEntryLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)

	req := entryRequest("2025-03-01", codes["1000"], codes["4000"], "100")
	req.Lines[1].Credit = decimal.RequireFromString("99.99")
	_, err := svc.Journal.PostEntry(ctx, req, "tester")
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)

	page, err := svc.Journal.ListEntries(ctx, dto.ListEntriesParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
}

func TestPosting_ConcurrentSameIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	req := entryRequest("2025-03-01", codes["1000"], codes["4000"], "75")
	req.IdempotencyKey = "invoice-17"

	const workers = 5
	results := make([]*domain.PostResult, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Journal.PostEntry(ctx, req, "tester")
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].Entry.EntryID, results[i].Entry.EntryID)
		if !results[i].Replayed {
			created++
		}
	}
	assert.Equal(t, 1, created)

	page, err := svc.Journal.ListEntries(ctx, dto.ListEntriesParams{})
	require.NoError(t, err)
	assert.Len(t, page.Entries, 1)
}

func TestPosting_IdempotencyKeyReusedForDifferentEntry(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	req := entryRequest("2025-03-01", codes["1000"], codes["4000"], "75")
	req.IdempotencyKey = "invoice-18"
	first, err := svc.Journal.PostEntry(ctx, req, "tester")
	require.NoError(t, err)

	replay, err := svc.Journal.PostEntry(ctx, req, "tester")
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	assert.Equal(t, first.Entry.EntryID, replay.Entry.EntryID)

	changed := entryRequest("2025-03-02", codes["1000"], codes["4000"], "80")
	changed.IdempotencyKey = "invoice-18"
	_, err = svc.Journal.PostEntry(ctx, changed, "tester")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	page, err := svc.Journal.ListEntries(ctx, dto.ListEntriesParams{})
	require.NoError(t, err)
	assert.Len(t, page.Entries, 1)
}

func TestPosting_AmountsMustFitTheLedger(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	cash, revenue := codes["1000"], codes["4000"]

	_, err := svc.Journal.PostEntry(ctx, entryRequest("2025-03-01", cash, revenue, "184467440737095521.16"), "tester")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	split := dto.PostEntryRequest{
		EntryDate: "2025-03-01",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: cash, Debit: decimal.RequireFromString("0.005")},
			{AccountID: cash, Debit: decimal.RequireFromString("0.005")},
			{AccountID: revenue, Credit: decimal.RequireFromString("0.01")},
		},
	}
	_, err = svc.Journal.PostEntry(ctx, split, "tester")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	largest := entryRequest("2025-03-01", cash, revenue, "9999999999999.99")
	_, err = svc.Journal.PostEntry(ctx, largest, "tester")
	require.NoError(t, err)

	integrity, err := svc.Reporting.IntegrityCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, integrity.EntryCount)
	assert.True(t, integrity.IsBalanced)

	tb, err := svc.Reporting.TrialBalance(ctx, domain.ReportWindow{})
	require.NoError(t, err)
	assert.True(t, tb.TotalDebit.Equal(accounting.MaxLineAmount))
}

func TestPosting_ReverseOnce(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	posted, err := svc.Journal.PostEntry(ctx, entryRequest("2025-03-01", codes["1000"], codes["4000"], "100"), "tester")
	require.NoError(t, err)

	reversal, err := svc.Journal.ReverseEntry(ctx, posted.Entry.EntryID, dto.ReverseEntryRequest{EntryDate: "2025-03-05"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "REV-"+posted.Entry.EntryNumber, reversal.Reference)
	assert.Equal(t, posted.Entry.EntryID, reversal.ReversesEntryID)

	_, err = svc.Journal.ReverseEntry(ctx, posted.Entry.EntryID, dto.ReverseEntryRequest{}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	ledger, err := svc.Ledger.GetLedger(ctx, codes["1000"])
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.True(t, ledger[1].RunningBalance.IsZero())
}

func TestPosting_ClosedPeriodBlocksPosting(t *testing.T) {
	ctx := context.Background()
	svc, codes := newBooks(t)
	period, err := svc.FiscalPeriod.CreatePeriod(ctx, dto.CreateFiscalPeriodRequest{Name: "Q1", StartDate: "2025-01-01", EndDate: "2025-03-31"}, "tester")
	require.NoError(t, err)
	_, err = svc.FiscalPeriod.ClosePeriod(ctx, period.PeriodID, "tester")
	require.NoError(t, err)

	_, err = svc.Journal.PostEntry(ctx, entryRequest("2025-03-31", codes["1000"], codes["4000"], "10"), "tester")
	assert.ErrorIs(t, err, apperrors.ErrPeriodClosed)

	_, err = svc.Journal.PostEntry(ctx, entryRequest("2025-04-01", codes["1000"], codes["4000"], "10"), "tester")
	assert.NoError(t, err)
}
