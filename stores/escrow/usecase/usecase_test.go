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
	"github.com/gavelhouse/goapi/domain/escrow"
	mockEscrow "github.com/gavelhouse/goapi/domain/escrow/mocks"
	"github.com/gavelhouse/goapi/domain/listing"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	mockRepo *mockEscrow.Repo
	mockBank *mockBank.Service
	subject  *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockEscrow.Repo{}
	t.mockBank = &mockBank.Service{}
	t.subject = &impl{
		repo: t.mockRepo,
		bank: t.mockBank,
	}
}

func mockListing() *listing.Listing {
	return &listing.Listing{
		ListingId: "listing-1",
		ChainId:   1,
		Seller:    "0xseller",
		Denom:     domain.EmptyAddress,
		Status:    listing.StatusActive,
	}
}

func heldDeposit(amount string) *escrow.Deposit {
	return &escrow.Deposit{
		DepositId: "deposit-1",
		ListingId: "listing-1",
		ChainId:   1,
		Bidder:    "0xbidder",
		Denom:     domain.EmptyAddress,
		Amount:    amount,
		State:     escrow.DepositStateHeld,
	}
}

func (t *testsuite) TestDeposit() {
	l := mockListing()

	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(d *escrow.Deposit) bool {
		return d.ListingId == l.ListingId &&
			d.Bidder == domain.Address("0xbidder") &&
			d.Amount == "100" &&
			d.State == escrow.DepositStateHeld &&
			len(d.DepositId) > 0
	})).Return(nil).Once()

	deposit, err := t.subject.Deposit(mockCtx, l, "0xBIDDER", big.NewInt(100))
	t.NoError(err)
	t.Equal(escrow.DepositStateHeld, deposit.State)
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestDepositZeroAmount() {
	l := mockListing()

	_, err := t.subject.Deposit(mockCtx, l, "0xbidder", big.NewInt(0))
	t.ErrorIs(err, domain.ErrAmountZero)

	_, err = t.subject.Deposit(mockCtx, l, "0xbidder", nil)
	t.ErrorIs(err, domain.ErrAmountZero)

	t.mockRepo.AssertNotCalled(t.T(), "Create")
}

func (t *testsuite) TestRefund() {
	l := mockListing()
	deposit := heldDeposit("100")

	t.mockBank.On("Payout", mockCtx, bank.AccountId{
		ChainId: 1,
		Address: "0xbidder",
		Denom:   domain.EmptyAddress,
	}, big.NewInt(100)).Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, "deposit-1", mock.MatchedBy(func(p escrow.DepositPatchable) bool {
		return p.State != nil && *p.State == escrow.DepositStateRefunded
	})).Return(nil).Once()

	t.NoError(t.subject.Refund(mockCtx, l, deposit))
	t.mockBank.AssertExpectations(t.T())
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestRefundRejectedPayout() {
	l := mockListing()
	deposit := heldDeposit("100")

	t.mockBank.On("Payout", mockCtx, mock.Anything, big.NewInt(100)).
		Return(domain.ErrPayoutRejected).Once()

	t.ErrorIs(t.subject.Refund(mockCtx, l, deposit), domain.ErrRefundFailed)
	t.mockRepo.AssertNotCalled(t.T(), "Update")
}

func (t *testsuite) TestRefundNonHeldDeposit() {
	l := mockListing()
	deposit := heldDeposit("100")
	deposit.State = escrow.DepositStateRefunded

	t.ErrorIs(t.subject.Refund(mockCtx, l, deposit), domain.ErrRefundFailed)
	t.mockBank.AssertNotCalled(t.T(), "Payout")
}

func (t *testsuite) TestReleaseWithFee() {
	l := mockListing()

	t.mockRepo.On("FindAll", mockCtx,
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
	).Return([]*escrow.Deposit{heldDeposit("10000")}, nil).Once()

	t.mockBank.On("Payout", mockCtx, bank.AccountId{
		ChainId: 1,
		Address: "0xseller",
		Denom:   domain.EmptyAddress,
	}, big.NewInt(9750)).Return(nil).Once()
	t.mockBank.On("Payout", mockCtx, bank.AccountId{
		ChainId: 1,
		Address: "0xtreasury",
		Denom:   domain.EmptyAddress,
	}, big.NewInt(250)).Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, "deposit-1", mock.MatchedBy(func(p escrow.DepositPatchable) bool {
		return p.State != nil && *p.State == escrow.DepositStateReleased
	})).Return(nil).Once()

	release, err := t.subject.Release(mockCtx, l, "0xSELLER", 250, "0xTREASURY")
	t.NoError(err)
	t.Equal("9750", release.Amount)
	t.Equal("250", release.FeeAmount)
	t.mockBank.AssertExpectations(t.T())
}

func (t *testsuite) TestReleaseNoFee() {
	l := mockListing()

	t.mockRepo.On("FindAll", mockCtx,
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
	).Return([]*escrow.Deposit{heldDeposit("10000")}, nil).Once()

	t.mockBank.On("Payout", mockCtx, bank.AccountId{
		ChainId: 1,
		Address: "0xseller",
		Denom:   domain.EmptyAddress,
	}, big.NewInt(10000)).Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, "deposit-1", mock.Anything).Return(nil).Once()

	release, err := t.subject.Release(mockCtx, l, "0xseller", 0, "")
	t.NoError(err)
	t.Equal("10000", release.Amount)
	t.Equal("0", release.FeeAmount)
	t.mockBank.AssertNumberOfCalls(t.T(), "Payout", 1)
}

func (t *testsuite) TestReleaseRejectedPayout() {
	l := mockListing()

	t.mockRepo.On("FindAll", mockCtx,
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
	).Return([]*escrow.Deposit{heldDeposit("10000")}, nil).Once()

	t.mockBank.On("Payout", mockCtx, mock.Anything, big.NewInt(10000)).
		Return(domain.ErrPayoutRejected).Once()

	_, err := t.subject.Release(mockCtx, l, "0xseller", 0, "")
	t.ErrorIs(err, domain.ErrReleaseFailed)
	t.mockRepo.AssertNotCalled(t.T(), "Update")
}

func (t *testsuite) TestFindHeldNone() {
	t.mockRepo.On("FindAll", mockCtx,
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
		mock.AnythingOfType("escrow.FindAllOptionsFunc"),
	).Return([]*escrow.Deposit{}, nil).Once()

	_, err := t.subject.FindHeld(mockCtx, "listing-1")
	t.ErrorIs(err, domain.ErrNotFound)
}
