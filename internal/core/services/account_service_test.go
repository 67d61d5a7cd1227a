package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/core/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func strPtr(s string) *string { return &s }

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: " 1000 ", Name: "Cash on Hand", AccountType: domain.Asset}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.IsActive && a.CreatedBy == suite.userID && a.AccountID != ""
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Empty(account.ParentAccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ValidationErrors() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"empty code", dto.CreateAccountRequest{Code: "  ", Name: "Cash", AccountType: domain.Asset}},
		{"empty name", dto.CreateAccountRequest{Code: "1000", Name: "", AccountType: domain.Asset}},
		{"unknown type", dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "INCOME"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateAccount(context.Background(), tt.req, suite.userID)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1010", Name: "Petty Cash", AccountType: domain.Asset, ParentAccountID: strPtr("ghost")}
	suite.mockRepo.On("FindAccountByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithParent() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset}
	req := dto.CreateAccountRequest{Code: "1010", Name: "Petty Cash", AccountType: domain.Asset, ParentAccountID: &parent.AccountID}
	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(parent.AccountID, account.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, true).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, true)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, false).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListAccounts(ctx, false)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameAndDetach() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "child", Code: "1010", Name: "Old", ParentAccountID: "parent", AccountType: domain.Asset}
	suite.mockRepo.On("FindAccountByID", ctx, "child").Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "New" && a.ParentAccountID == "" && a.Code == "1010" && a.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "child", dto.UpdateAccountRequest{Name: strPtr("New"), ParentAccountID: strPtr("")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("New", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "a", Code: "1000"}
	suite.mockRepo.On("FindAccountByID", ctx, "a").Return(account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "a", dto.UpdateAccountRequest{ParentAccountID: strPtr("a")}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Cycle() {
	ctx := context.Background()
	// a <- b <- c ; making c the parent of a closes the loop
	a := &domain.Account{AccountID: "a", Code: "1000"}
	b := &domain.Account{AccountID: "b", Code: "1010", ParentAccountID: "a"}
	c := &domain.Account{AccountID: "c", Code: "1011", ParentAccountID: "b"}
	suite.mockRepo.On("FindAccountByID", ctx, "a").Return(a, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, "c").Return(c, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, "b").Return(b, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "a", dto.UpdateAccountRequest{ParentAccountID: strPtr("c")}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cycle")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, "missing", dto.UpdateAccountRequest{Name: strPtr("x")}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeactivateAndActivate() {
	ctx := context.Background()
	suite.mockRepo.On("SetAccountActive", ctx, "acc", false, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("SetAccountActive", ctx, "acc", true, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.NoError(suite.service.DeactivateAccount(ctx, "acc", suite.userID))
	suite.NoError(suite.service.ActivateAccount(ctx, "acc", suite.userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("SetAccountActive", ctx, "ghost", false, suite.userID, mock.Anything).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, "ghost", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_SkipsExistingCodes() {
	ctx := context.Background()
	existing := []domain.Account{{AccountID: "x", Code: "1000"}, {AccountID: "y", Code: "4000"}}
	suite.mockRepo.On("ListAccounts", ctx, false).Return(existing, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code != "1000" && a.Code != "4000"
	})).Return(nil)

	created, err := suite.service.SeedDefaultAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(len(domain.DefaultChartOfAccounts)-2, created)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", len(domain.DefaultChartOfAccounts)-2)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_AllPresent() {
	ctx := context.Background()
	existing := make([]domain.Account, len(domain.DefaultChartOfAccounts))
	for i, tmpl := range domain.DefaultChartOfAccounts {
		existing[i] = domain.Account{AccountID: uuid.NewString(), Code: tmpl.Code}
	}
	suite.mockRepo.On("ListAccounts", ctx, false).Return(existing, nil).Once()

	created, err := suite.service.SeedDefaultAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Zero(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
