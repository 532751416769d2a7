package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/bank"
	mockBank "github.com/gavelhouse/goapi/domain/bank/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	mockRepo *mockBank.Repo
	subject  *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockBank.Repo{}
	t.subject = &impl{
		repo: t.mockRepo,
	}
}

func accountId() bank.AccountId {
	return bank.AccountId{
		ChainId: 1,
		Address: "0xbidder",
		Denom:   domain.EmptyAddress,
	}
}

func (t *testsuite) TestDepositCreatesAccount() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(nil, domain.ErrNotFound).Once()
	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(a *bank.Account) bool {
		return a.Balance == "100" && a.Allowance == "0" && a.Address == id.Address
	})).Return(nil).Once()

	t.NoError(t.subject.Deposit(mockCtx, id, big.NewInt(100)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestDepositAddsToBalance() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "50", Allowance: "0"}, nil).Once()
	t.mockRepo.On("Patch", mockCtx, id, mock.MatchedBy(func(p bank.AccountPatchable) bool {
		return p.Balance != nil && *p.Balance == "150"
	})).Return(nil).Once()

	t.NoError(t.subject.Deposit(mockCtx, id, big.NewInt(100)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestDepositRejectsNonPositive() {
	id := accountId()

	t.Error(t.subject.Deposit(mockCtx, id, big.NewInt(0)))
	t.Error(t.subject.Deposit(mockCtx, id, nil))
	t.mockRepo.AssertNotCalled(t.T(), "FindOne")
}

func (t *testsuite) TestCollect() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "100", Allowance: "0"}, nil).Once()
	t.mockRepo.On("Patch", mockCtx, id, mock.MatchedBy(func(p bank.AccountPatchable) bool {
		return p.Balance != nil && *p.Balance == "40"
	})).Return(nil).Once()

	t.NoError(t.subject.Collect(mockCtx, id, big.NewInt(60)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestCollectInsufficientFunds() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "10", Allowance: "0"}, nil).Once()

	t.ErrorIs(t.subject.Collect(mockCtx, id, big.NewInt(60)), domain.ErrInsufficientFunds)
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
}

func (t *testsuite) TestCollectMissingAccount() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(nil, domain.ErrNotFound).Once()

	t.ErrorIs(t.subject.Collect(mockCtx, id, big.NewInt(60)), domain.ErrInsufficientFunds)
}

func (t *testsuite) TestCollectAllowanceTakesItWhole() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "500", Allowance: "200"}, nil).Once()
	t.mockRepo.On("Patch", mockCtx, id, mock.MatchedBy(func(p bank.AccountPatchable) bool {
		return p.Balance != nil && *p.Balance == "300" &&
			p.Allowance != nil && *p.Allowance == "0"
	})).Return(nil).Once()

	taken, err := t.subject.CollectAllowance(mockCtx, id)
	t.NoError(err)
	t.Equal(big.NewInt(200), taken)
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestCollectAllowanceZero() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "500", Allowance: "0"}, nil).Once()

	taken, err := t.subject.CollectAllowance(mockCtx, id)
	t.NoError(err)
	t.Equal(int64(0), taken.Int64())
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
}

func (t *testsuite) TestCollectAllowanceAboveBalance() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "100", Allowance: "200"}, nil).Once()

	_, err := t.subject.CollectAllowance(mockCtx, id)
	t.ErrorIs(err, domain.ErrInsufficientFunds)
}

func (t *testsuite) TestPayout() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "10", Allowance: "0"}, nil).Once()
	t.mockRepo.On("Patch", mockCtx, id, mock.MatchedBy(func(p bank.AccountPatchable) bool {
		return p.Balance != nil && *p.Balance == "110"
	})).Return(nil).Once()

	t.NoError(t.subject.Payout(mockCtx, id, big.NewInt(100)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestPayoutToFreshAccount() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(nil, domain.ErrNotFound).Once()
	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(a *bank.Account) bool {
		return a.Balance == "100"
	})).Return(nil).Once()

	t.NoError(t.subject.Payout(mockCtx, id, big.NewInt(100)))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestPayoutRejected() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "10", PayoutBlocked: true}, nil).Once()

	t.ErrorIs(t.subject.Payout(mockCtx, id, big.NewInt(100)), domain.ErrPayoutRejected)
	t.mockRepo.AssertNotCalled(t.T(), "Patch")
}

func (t *testsuite) TestSetPayoutBlocked() {
	id := accountId()

	t.mockRepo.On("FindOne", mockCtx, id).Return(&bank.Account{Balance: "10"}, nil).Once()
	t.mockRepo.On("Patch", mockCtx, id, mock.MatchedBy(func(p bank.AccountPatchable) bool {
		return p.PayoutBlocked != nil && *p.PayoutBlocked
	})).Return(nil).Once()

	t.NoError(t.subject.SetPayoutBlocked(mockCtx, id, true))
	t.mockRepo.AssertExpectations(t.T())
}
