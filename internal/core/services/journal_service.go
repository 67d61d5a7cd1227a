package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	// entryNumberLayout renders the posting clock as JE-YYYYMMDD-HHMMSS.
	entryNumberLayout = "JE-20060102-150405"
	// maxEntryNumberAttempts bounds the suffix retries on entry number collisions.
	maxEntryNumberAttempts = 5
	// defaultEntryPageSize applies when a listing asks for no limit.
	defaultEntryPageSize = 50
	reversalPrefix       = "REV-"
)

// journalService posts, reads and reverses journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	periods     portssvc.FiscalPeriodReaderSvc
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithClock replaces the wall clock used for entry numbers and timestamps.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// WithClosedPeriodChecker rejects postings dated inside closed fiscal periods.
func WithClosedPeriodChecker(periods portssvc.FiscalPeriodReaderSvc) JournalServiceOption {
	return func(s *journalService) {
		s.periods = periods
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// PostEntry validates the request and persists it as one balanced entry.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, userID string) (*domain.PostResult, error) {
	entryDate, err := time.Parse(domain.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
	}

	lines := make([]domain.PostEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.PostEntryLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
	}

	return s.post(ctx, domain.PostEntryInput{
		EntryDate:      entryDate,
		Reference:      req.Reference,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
		Lines:          lines,
		CreatedBy:      userID,
	}, "")
}

// post runs the posting pipeline. reversesEntryID links a reversal to its original.
func (s *journalService) post(ctx context.Context, input domain.PostEntryInput, reversesEntryID string) (*domain.PostResult, error) {
	lines := accounting.FilterPostingLines(input.Lines)

	if input.IdempotencyKey != "" {
		stored, err := s.findByIdempotencyKey(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return s.replay(ctx, input, lines, stored)
		}
	}

	if err := accounting.ValidateLineAmounts(lines); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: a journal entry needs at least two lines with an account and an amount", apperrors.ErrValidation)
	}

	if err := s.checkAccounts(ctx, lines); err != nil {
		return nil, err
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		s.LogDebug(ctx, "Rejected unbalanced journal entry", slog.String("reason", err.Error()))
		return nil, err
	}

	entryDate := domain.DateOnly(input.EntryDate)
	if s.periods != nil {
		period, err := s.periods.FindClosedPeriodFor(ctx, entryDate)
		if err != nil {
			return nil, err
		}
		if period != nil {
			return nil, fmt.Errorf("%w: %s covers %s", apperrors.ErrPeriodClosed, period.Name, entryDate.Format(domain.DateLayout))
		}
	}

	now := s.now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryDate:       entryDate,
		Reference:       input.Reference,
		Description:     input.Description,
		IdempotencyKey:  input.IdempotencyKey,
		ReversesEntryID: reversesEntryID,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
	}
	entryLines := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		entryLines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entry.EntryID,
			AccountID:      l.AccountID,
			Debit:          l.Debit,
			Credit:         l.Credit,
			Memo:           l.Memo,
		}
	}

	baseNumber := now.Format(entryNumberLayout)
	for attempt := 1; ; attempt++ {
		entry.EntryNumber = baseNumber
		if attempt > 1 {
			entry.EntryNumber = fmt.Sprintf("%s-%d", baseNumber, attempt)
		}

		err := s.journalRepo.SaveEntry(ctx, entry, entryLines)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, apperrors.ErrDuplicateEntryNumber):
			if attempt >= maxEntryNumberAttempts {
				s.LogError(ctx, err, "Exhausted entry number attempts", slog.String("entry_number", baseNumber))
				return nil, fmt.Errorf("%w: no free entry number after %d attempts", apperrors.ErrConflict, attempt)
			}
			s.LogDebug(ctx, "Entry number taken, retrying", slog.String("entry_number", entry.EntryNumber))
			continue
		case errors.Is(err, apperrors.ErrDuplicateIdempotentKey):
			stored, findErr := s.findByIdempotencyKey(ctx, input.IdempotencyKey)
			if findErr != nil {
				return nil, findErr
			}
			if stored == nil {
				return nil, err
			}
			return s.replay(ctx, input, lines, stored)
		case errors.Is(err, apperrors.ErrAlreadyReversed):
			return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrConflict, reversesEntryID)
		default:
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
			return nil, err
		}
	}

	entry.Lines = entryLines
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("lines", len(entryLines)))
	return &domain.PostResult{Entry: &entry}, nil
}

// replay returns the entry already stored under the request's idempotency key,
// provided the request describes that same entry.
func (s *journalService) replay(ctx context.Context, input domain.PostEntryInput, lines []domain.PostEntryLine, stored *domain.JournalEntry) (*domain.PostResult, error) {
	if !accounting.SamePosting(input.EntryDate, input.Reference, input.Description, lines, stored) {
		s.LogDebug(ctx, "Idempotency key reused with a different entry",
			slog.String("entry_id", stored.EntryID),
			slog.String("idempotency_key", input.IdempotencyKey))
		return nil, fmt.Errorf("%w: idempotency key %s was already used for a different entry", apperrors.ErrConflict, input.IdempotencyKey)
	}
	s.LogInfo(ctx, "Idempotent replay of journal entry",
		slog.String("entry_id", stored.EntryID),
		slog.String("idempotency_key", input.IdempotencyKey))
	return &domain.PostResult{Entry: stored, Replayed: true}, nil
}

// checkAccounts resolves every referenced account and requires it to be active.
func (s *journalService) checkAccounts(ctx context.Context, lines []domain.PostEntryLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for posting")
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s %s", apperrors.ErrInactiveAccount, acc.Code, acc.Name)
		}
	}
	return nil
}

// findByIdempotencyKey returns the stored entry with its lines, or nil when the key is unused.
func (s *journalService) findByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up idempotency key", slog.String("idempotency_key", key))
		return nil, err
	}
	if err := s.attachLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) attachLines(ctx context.Context, entry *domain.JournalEntry) error {
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("entry_id", entry.EntryID))
		return err
	}
	entry.Lines = lines
	return nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if err := s.attachLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of entry headers, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*domain.EntryPage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int("limit", limit))
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return &domain.EntryPage{Entries: entries, NextToken: nextToken}, nil
}

// ReverseEntry posts an offsetting entry. Each entry can be reversed once and
// reversals themselves cannot be reversed.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.ReversesEntryID != "" {
		return nil, fmt.Errorf("%w: %s is itself a reversal", apperrors.ErrConflict, original.EntryNumber)
	}

	existing, err := s.journalRepo.FindReversalOf(ctx, entryID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s was already reversed by %s", apperrors.ErrConflict, original.EntryNumber, existing.EntryNumber)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up reversal", slog.String("entry_id", entryID))
		return nil, err
	}

	entryDate := domain.DateOnly(s.now().UTC())
	if req.EntryDate != "" {
		if entryDate, err = time.Parse(domain.DateLayout, req.EntryDate); err != nil {
			return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
		}
	}

	result, err := s.post(ctx, domain.PostEntryInput{
		EntryDate:   entryDate,
		Reference:   reversalPrefix + original.EntryNumber,
		Description: fmt.Sprintf("Reversal of %s", original.EntryNumber),
		Lines:       accounting.ReverseLines(original.Lines),
		CreatedBy:   userID,
	}, original.EntryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", result.Entry.EntryID))
	return result.Entry, nil
}
