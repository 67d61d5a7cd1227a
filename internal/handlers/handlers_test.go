package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/SscSPs/abbis_ledger/internal/handlers"
	"github.com/SscSPs/abbis_ledger/internal/platform/config"
	"github.com/SscSPs/abbis_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var errConnReset = fmt.Errorf("connection reset")

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	accounts     *MockAccountService
	journal      *MockJournalService
	ledger       *MockLedgerService
	reporting    *MockReportingService
	fiscalPeriod *MockFiscalPeriodService
	userID       string
	token        string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:   "test-secret-key-that-is-long-enough",
		JWTIssuer:   "abbis-test",
		RateLimit:   "1000-M",
		CORSOrigins: []string{"http://localhost:3000"},
	}
	suite.accounts = new(MockAccountService)
	suite.journal = new(MockJournalService)
	suite.ledger = new(MockLedgerService)
	suite.reporting = new(MockReportingService)
	suite.fiscalPeriod = new(MockFiscalPeriodService)

	container := &portssvc.ServiceContainer{
		Account:      suite.accounts,
		Journal:      suite.journal,
		Ledger:       suite.ledger,
		Reporting:    suite.reporting,
		FiscalPeriod: suite.fiscalPeriod,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router, err := handlers.NewRouter(suite.cfg, container, logger)
	suite.Require().NoError(err)
	suite.router = router

	suite.userID = uuid.NewString()
	suite.token, err = utils.GenerateJWT(suite.userID, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealthIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAPIRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Created() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash on Hand", AccountType: domain.Asset}
	suite.accounts.On("CreateAccount", mock.Anything, req, suite.userID).
		Return(&domain.Account{AccountID: "acc-1", Code: "1000", Name: "Cash on Hand", AccountType: domain.Asset, IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.True(resp.IsActive)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownTypeRejectedByBinding() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{"code": "1000", "name": "Cash", "accountType": "INCOME"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCodeIsBadRequest() {
	suite.accounts.On("CreateAccount", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: %w: account code 1000 already exists", apperrors.ErrValidation, apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accounts.On("GetAccountByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ghost", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_ActiveOnly() {
	suite.accounts.On("ListAccounts", mock.Anything, true).Return([]domain.Account{{AccountID: "a", Code: "1000"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?activeOnly=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
}

func (suite *HandlerTestSuite) TestDeactivateAccount_NoContent() {
	suite.accounts.On("DeactivateAccount", mock.Anything, "acc", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc/deactivate", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestSeedAccounts() {
	suite.accounts.On("SeedDefaultAccounts", mock.Anything, suite.userID).Return(18, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/seed", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"created":18}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetLedger() {
	suite.ledger.On("GetLedger", mock.Anything, "cash").Return([]domain.LedgerLine{
		{EntryNumber: "JE-1", EntryDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(100), Credit: decimal.Zero, RunningBalance: decimal.NewFromInt(100)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/cash/ledger", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("cash", resp.AccountID)
	suite.Require().Len(resp.Lines, 1)
	suite.Equal("JE-1", resp.Lines[0].EntryNumber)
}

func balancedRequest() dto.PostEntryRequest {
	return dto.PostEntryRequest{
		EntryDate: "2025-01-05",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: "cash", Debit: decimal.NewFromInt(100)},
			{AccountID: "sales", Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *HandlerTestSuite) TestPostEntry_CreatedThenReplayed() {
	entry := &domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-20250105-090000", EntryDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)}
	suite.journal.On("PostEntry", mock.Anything, mock.MatchedBy(func(r dto.PostEntryRequest) bool {
		return r.IdempotencyKey == "key-1"
	}), suite.userID).Return(&domain.PostResult{Entry: entry}, nil).Once()
	suite.journal.On("PostEntry", mock.Anything, mock.Anything, suite.userID).Return(&domain.PostResult{Entry: entry, Replayed: true}, nil).Once()

	first := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedRequest(), "Idempotency-Key", "key-1")
	second := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedRequest(), "Idempotency-Key", "key-1")

	suite.Equal(http.StatusCreated, first.Code)
	suite.Empty(first.Header().Get("Idempotent-Replayed"))
	suite.Equal(http.StatusOK, second.Code)
	suite.Equal("true", second.Header().Get("Idempotent-Replayed"))

	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(second.Body.Bytes(), &resp))
	suite.Equal("2025-01-05", resp.EntryDate)
}

func (suite *HandlerTestSuite) TestPostEntry_HeaderOverridesBodyKey() {
	req := balancedRequest()
	req.IdempotencyKey = "from-body"
	suite.journal.On("PostEntry", mock.Anything, mock.MatchedBy(func(r dto.PostEntryRequest) bool {
		return r.IdempotencyKey == "from-header"
	}), suite.userID).Return(&domain.PostResult{Entry: &domain.JournalEntry{EntryID: "e1"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", req, "Idempotency-Key", "from-header")

	suite.Equal(http.StatusCreated, w.Code)
	suite.journal.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPostEntry_BindingErrors() {
	tests := []struct {
		name string
		body any
	}{
		{"missing date", map[string]any{"lines": []map[string]any{{"accountID": "cash", "debit": "1"}}}},
		{"bad date", map[string]any{"entryDate": "05/01/2025", "lines": []map[string]any{{"accountID": "cash", "debit": "1"}}}},
		{"negative debit", map[string]any{"entryDate": "2025-01-05", "lines": []map[string]any{{"accountID": "cash", "debit": "-5"}}}},
		{"no lines", map[string]any{"entryDate": "2025-01-05", "lines": []any{}}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/journal-entries", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.journal.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unbalanced", fmt.Errorf("%w: debits 100.00 do not equal credits 90.00", apperrors.ErrUnbalanced), http.StatusUnprocessableEntity},
		{"inactive account", fmt.Errorf("%w: 1000", apperrors.ErrInactiveAccount), http.StatusUnprocessableEntity},
		{"closed period", fmt.Errorf("%w: Q1", apperrors.ErrPeriodClosed), http.StatusConflict},
		{"too few lines", fmt.Errorf("%w: at least two lines", apperrors.ErrValidation), http.StatusBadRequest},
		{"amount beyond column", fmt.Errorf("%w: line 1 amount 184467440737095521.16 exceeds 9999999999999.99", apperrors.ErrValidation), http.StatusBadRequest},
		{"idempotency key reused", fmt.Errorf("%w: idempotency key key-1 was already used for a different entry", apperrors.ErrConflict), http.StatusConflict},
		{"unknown account", fmt.Errorf("%w: account ghost", apperrors.ErrNotFound), http.StatusNotFound},
		{"storage failure", apperrors.NewAppError(http.StatusInternalServerError, "insert failed", errConnReset), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.journal.On("PostEntry", mock.Anything, mock.Anything, suite.userID).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedRequest())

			suite.Equal(tt.status, w.Code)
			if tt.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "insert failed")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestListEntries_Pagination() {
	next := "token-2"
	suite.journal.On("ListEntries", mock.Anything, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 2 && p.NextToken == nil
	})).Return(&domain.EntryPage{Entries: []domain.JournalEntry{{EntryID: "b"}, {EntryID: "a"}}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?limit=2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListEntries_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?limit=500", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReverseEntry() {
	reversal := &domain.JournalEntry{EntryID: "r1", ReversesEntryID: "e1", Reference: "REV-JE-1"}
	suite.journal.On("ReverseEntry", mock.Anything, "e1", dto.ReverseEntryRequest{}, suite.userID).Return(reversal, nil).Once()
	suite.journal.On("ReverseEntry", mock.Anything, "e1", dto.ReverseEntryRequest{EntryDate: "2025-02-01"}, suite.userID).
		Return(nil, fmt.Errorf("%w: entry already reversed", apperrors.ErrConflict)).Once()

	first := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/reverse", nil)
	second := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/reverse", dto.ReverseEntryRequest{EntryDate: "2025-02-01"})

	suite.Equal(http.StatusCreated, first.Code)
	suite.Contains(first.Body.String(), "REV-JE-1")
	suite.Equal(http.StatusConflict, second.Code)
}

func (suite *HandlerTestSuite) TestReports_WindowParsing() {
	window := domain.ReportWindow{From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)}
	suite.reporting.On("TrialBalance", mock.Anything, window).Return(&domain.TrialBalanceReport{IsBalanced: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?from=2025-01-01&to=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"from":"2025-01-01"`)
	suite.Contains(w.Body.String(), `"isBalanced":true`)
}

func (suite *HandlerTestSuite) TestReports_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2025-13-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "YYYY-MM-DD")
	suite.reporting.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReports_BalanceSheetAndIntegrity() {
	suite.reporting.On("BalanceSheet", mock.Anything, domain.ReportWindow{}).Return(&domain.BalanceSheetReport{IsBalanced: true}, nil).Once()
	suite.reporting.On("IntegrityCheck", mock.Anything).Return(&domain.IntegrityReport{IsBalanced: true, EntryCount: 3}, nil).Once()

	bs := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	integrity := suite.do(http.MethodGet, "/api/v1/reports/integrity", nil)

	suite.Equal(http.StatusOK, bs.Code)
	suite.Equal(http.StatusOK, integrity.Code)
	suite.Contains(integrity.Body.String(), `"entryCount":3`)
}

func (suite *HandlerTestSuite) TestFiscalPeriods() {
	req := dto.CreateFiscalPeriodRequest{Name: "Q1", StartDate: "2025-01-01", EndDate: "2025-03-31"}
	period := &domain.FiscalPeriod{PeriodID: "p1", Name: "Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)}
	suite.fiscalPeriod.On("CreatePeriod", mock.Anything, req, suite.userID).Return(period, nil).Once()
	suite.fiscalPeriod.On("ClosePeriod", mock.Anything, "p1", suite.userID).
		Return(nil, fmt.Errorf("%w: period already closed", apperrors.ErrConflict)).Once()

	created := suite.do(http.MethodPost, "/api/v1/fiscal-periods", req)
	closed := suite.do(http.MethodPost, "/api/v1/fiscal-periods/p1/close", nil)

	suite.Equal(http.StatusCreated, created.Code)
	suite.Contains(created.Body.String(), `"startDate":"2025-01-01"`)
	suite.Equal(http.StatusConflict, closed.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "secret", JWTIssuer: "abbis-test", RateLimit: "10-M", CORSOrigins: []string{"https://books.example"}}
	router, err := handlers.NewRouter(cfg, &portssvc.ServiceContainer{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/journal-entries", nil)
	req.Header.Set("Origin", "https://books.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://books.example" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestNewRouter_BadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "secret", RateLimit: "lots"}

	_, err := handlers.NewRouter(cfg, &portssvc.ServiceContainer{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	if err == nil {
		t.Fatal("expected an error for an unparsable rate")
	}
}
