package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/metrics"
	mockNormalizer "github.com/gavelhouse/goapi/base/normalizer/mocks"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/activity"
	mockActivity "github.com/gavelhouse/goapi/domain/activity/mocks"
	mockAsset "github.com/gavelhouse/goapi/domain/asset/mocks"
	"github.com/gavelhouse/goapi/domain/bank"
	mockBank "github.com/gavelhouse/goapi/domain/bank/mocks"
	"github.com/gavelhouse/goapi/domain/escrow"
	mockEscrow "github.com/gavelhouse/goapi/domain/escrow/mocks"
	"github.com/gavelhouse/goapi/domain/keys"
	"github.com/gavelhouse/goapi/domain/listing"
	mockListing "github.com/gavelhouse/goapi/domain/listing/mocks"
	mockDomain "github.com/gavelhouse/goapi/domain/mocks"
	"github.com/gavelhouse/goapi/service/query"
	redisSvc "github.com/gavelhouse/goapi/service/redis"
	mockRedis "github.com/gavelhouse/goapi/service/redis/mocks"
)

var (
	mockCtx = bCtx.Background()
)

// fakeMongo runs transactions inline so the usecase flow is observable
// through the injected mocks
type fakeMongo struct {
	query.Mongo
}

func (f *fakeMongo) RunWithTransaction(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
	return run(c)
}

func bigStr(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

type testsuite struct {
	suite.Suite
	mockRepo       *mockListing.Repo
	mockCustodian  *mockAsset.Custodian
	mockEscrow     *mockEscrow.Usecase
	mockBank       *mockBank.Service
	mockDenom      *mockDomain.DenomUsecase
	mockNormalizer *mockNormalizer.Normalizer
	mockActivity   *mockActivity.Repo
	mockRedis      *mockRedis.Service
	now            time.Time
	im             *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockListing.Repo{}
	t.mockCustodian = &mockAsset.Custodian{}
	t.mockEscrow = &mockEscrow.Usecase{}
	t.mockBank = &mockBank.Service{}
	t.mockDenom = &mockDomain.DenomUsecase{}
	t.mockNormalizer = &mockNormalizer.Normalizer{}
	t.mockActivity = &mockActivity.Repo{}
	t.mockRedis = &mockRedis.Service{}
	t.now = time.Unix(1700000000, 0)
	timeNow = func() time.Time { return t.now }
	met = metrics.New("listing")
	t.im = &impl{
		repo:         t.mockRepo,
		q:            &fakeMongo{},
		custodian:    t.mockCustodian,
		escrow:       t.mockEscrow,
		bank:         t.mockBank,
		denom:        t.mockDenom,
		normalizer:   t.mockNormalizer,
		activity:     t.mockActivity,
		redis:        t.mockRedis,
		feeRecipient: "0xtreasury",
	}
}

func (t *testsuite) expectLock(id domain.ListingId) {
	key := keys.RedisKey(keys.PfxListingLock, id.String())
	t.mockRedis.On("SetNX", mockCtx, key, []byte("1"), listingLockTimeout).Return(nil).Once()
	t.mockRedis.On("Del", mockCtx, key).Return(1, nil).Once()
}

// activeListing opened an hour ago, closes in an hour, reserve 10 units
func (t *testsuite) activeListing() *listing.Listing {
	return &listing.Listing{
		ListingId:     "listing-1",
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Denom:         domain.EmptyAddress,
		StartTime:     t.now.Add(-time.Hour),
		EndTime:       t.now.Add(time.Hour),
		MinimumValue:  "10000000000000000000",
		HighestBid:    "0",
		Status:        listing.StatusActive,
		Strategy:      listing.StrategyOracleReserveV1,
		FeeRecipient:  "0xtreasury",
	}
}

func enabledDenom() *domain.Denom {
	return &domain.Denom{
		Name:             "Ether",
		Symbol:           "ETH",
		ChainId:          1,
		Address:          domain.EmptyAddress,
		PriceFeedAddress: "0xfeed",
		TokenDecimals:    domain.UnitDecimals,
		Enabled:          true,
	}
}

func (t *testsuite) TestCreateListing() {
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.EmptyAddress).
		Return(enabledDenom(), nil).Once()
	t.mockRepo.On("Count", mockCtx,
		mock.AnythingOfType("listing.FindAllOptionsFunc"),
		mock.AnythingOfType("listing.FindAllOptionsFunc"),
	).Return(0, nil).Once()
	t.mockCustodian.On("Take", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xseller"), mock.Anything).
		Return(nil).Once()
	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Status == listing.StatusActive &&
			l.Strategy == listing.StrategyOracleReserveV1 &&
			l.FeeRateBps == 0 &&
			l.FeeRecipient == domain.Address("0xtreasury") &&
			l.HighestBid == "0" &&
			l.EndTime.Equal(t.now.Add(2*time.Hour))
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeCreateListing && a.Account == domain.Address("0xseller")
	})).Return(nil).Once()

	l, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xContract",
		TokenId:       "42",
		Seller:        "0xSeller",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	})
	t.NoError(err)
	t.Equal(domain.Address("0xseller"), l.Seller)
	t.Equal(listing.StatusActive, l.Status)
	t.mockRepo.AssertExpectations(t.T())
	t.mockCustodian.AssertExpectations(t.T())
}

func (t *testsuite) TestCreateListingScheduled() {
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.EmptyAddress).
		Return(enabledDenom(), nil).Once()
	t.mockRepo.On("Count", mockCtx, mock.Anything, mock.Anything).Return(0, nil).Once()
	t.mockCustodian.On("Take", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xseller"), mock.Anything).
		Return(nil).Once()
	t.mockRepo.On("Create", mockCtx, mock.Anything).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.Anything).Return(nil).Once()

	l, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		StartTime:     t.now.Add(time.Hour),
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	})
	t.NoError(err)
	t.Equal(listing.StatusPending, l.Status)
	t.True(l.EndTime.Equal(t.now.Add(3 * time.Hour)))
}

func (t *testsuite) TestCreateListingFlatFeeStrategy() {
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.EmptyAddress).
		Return(enabledDenom(), nil).Once()
	t.mockRepo.On("Count", mockCtx, mock.Anything, mock.Anything).Return(0, nil).Once()
	t.mockCustodian.On("Take", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xseller"), mock.Anything).
		Return(nil).Once()
	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Strategy == listing.StrategyFlatFeeV1 && l.FeeRateBps == 250
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.Anything).Return(nil).Once()

	_, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
		Strategy:      listing.StrategyFlatFeeV1,
	})
	t.NoError(err)
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestCreateListingValidation() {
	base := listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	}

	cases := []struct {
		name   string
		mutate func(*listing.CreateListingPayload)
		err    error
	}{
		{"zero duration", func(p *listing.CreateListingPayload) { p.Duration = 0 }, domain.ErrInvalidDuration},
		{"zero minimum", func(p *listing.CreateListingPayload) { p.MinimumValue = big.NewInt(0) }, domain.ErrInvalidMinimumValue},
		{"nil minimum", func(p *listing.CreateListingPayload) { p.MinimumValue = nil }, domain.ErrInvalidMinimumValue},
		{"empty contract", func(p *listing.CreateListingPayload) { p.AssetContract = "" }, domain.ErrInvalidAsset},
		{"bad token id", func(p *listing.CreateListingPayload) { p.TokenId = "not-a-number" }, domain.ErrInvalidAsset},
		{"bad chain", func(p *listing.CreateListingPayload) { p.ChainId = 0 }, domain.ErrInvalidChainId},
		{"bad strategy", func(p *listing.CreateListingPayload) { p.Strategy = "bogus_v9" }, domain.ErrInvalidStrategy},
	}

	for _, c := range cases {
		payload := base
		c.mutate(&payload)
		_, err := t.im.CreateListing(mockCtx, payload)
		t.ErrorIs(err, c.err, c.name)
	}
	t.mockCustodian.AssertNotCalled(t.T(), "Take")
}

func (t *testsuite) TestCreateListingUnknownDenom() {
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.Address("0xtoken")).
		Return(nil, domain.ErrNotFound).Once()

	_, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Denom:         "0xToken",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	})
	t.ErrorIs(err, domain.ErrUnknownDenomination)
}

func (t *testsuite) TestCreateListingDisabledDenom() {
	d := enabledDenom()
	d.Enabled = false
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.EmptyAddress).
		Return(d, nil).Once()

	_, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	})
	t.ErrorIs(err, domain.ErrUnknownDenomination)
}

func (t *testsuite) TestCreateListingAlreadyExists() {
	t.mockDenom.On("Get", mockCtx, domain.ChainId(1), domain.EmptyAddress).
		Return(enabledDenom(), nil).Once()
	t.mockRepo.On("Count", mockCtx, mock.Anything, mock.Anything).Return(1, nil).Once()

	_, err := t.im.CreateListing(mockCtx, listing.CreateListingPayload{
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		Duration:      2 * time.Hour,
		MinimumValue:  bigStr("10000000000000000000"),
	})
	t.ErrorIs(err, domain.ErrListingExists)
	t.mockCustodian.AssertNotCalled(t.T(), "Take")
}

// a 0.01 unit bid at price 2000 normalizes to 20, above the reserve of 10
func (t *testsuite) TestPlaceBidFirstBid() {
	l := t.activeListing()
	raw := bigStr("10000000000000000")

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, bank.AccountId{ChainId: 1, Address: "0xbidder", Denom: domain.EmptyAddress}, raw).
		Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(bigStr("20000000000000000000"), nil).Once()
	t.mockEscrow.On("Deposit", mockCtx, l, domain.Address("0xbidder"), raw).
		Return(&escrow.Deposit{DepositId: "deposit-1"}, nil).Once()
	t.mockRepo.On("RecordBid", mockCtx, l.ListingId, raw.String(), domain.Address("0xbidder")).
		Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypePlaceBid && a.Amount == raw.String() && a.Value == "20000000000000000000"
	})).Return(nil).Once()

	receipt, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xBidder", raw)
	t.NoError(err)
	t.Equal("20000000000000000000", receipt.NormalizedValue)
	t.Equal(raw.String(), receipt.RawAmount)
	t.Equal(int32(1), receipt.BidCount)
	t.mockEscrow.AssertExpectations(t.T())
	t.mockRepo.AssertExpectations(t.T())
}

// the incumbent led with 20; a bid re-normalizing to exactly 10 is not
// strictly greater, so it is rejected even though it clears the reserve
func (t *testsuite) TestPlaceBidNotHigher() {
	l := t.activeListing()
	l.HighestBid = "10000000000000000"
	l.HighestBidder = "0xbidderA"
	l.BidCount = 1
	raw := bigStr("5000000000000000")

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, mock.Anything, raw).Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(bigStr("10000000000000000000"), nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, bigStr("10000000000000000"), true).
		Return(bigStr("20000000000000000000"), nil).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidderB", raw)
	t.ErrorIs(err, domain.ErrBidNotHigher)
	t.mockEscrow.AssertNotCalled(t.T(), "Refund")
	t.mockEscrow.AssertNotCalled(t.T(), "Deposit")
	t.mockRepo.AssertNotCalled(t.T(), "RecordBid")
}

func (t *testsuite) TestPlaceBidBelowMinimum() {
	l := t.activeListing()
	raw := bigStr("2500000000000000")

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, mock.Anything, raw).Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(bigStr("5000000000000000000"), nil).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidder", raw)
	t.ErrorIs(err, domain.ErrBidBelowMinimum)
	t.mockEscrow.AssertNotCalled(t.T(), "Deposit")
}

// displacement refunds the old leader its exact raw deposit before the
// new deposit is recorded
func (t *testsuite) TestPlaceBidDisplacesLeader() {
	l := t.activeListing()
	l.HighestBid = "10000000000000000"
	l.HighestBidder = "0xbiddera"
	l.BidCount = 1
	raw := bigStr("15000000000000000")
	held := &escrow.Deposit{
		DepositId: "deposit-1",
		ListingId: l.ListingId,
		Bidder:    "0xbiddera",
		Amount:    "10000000000000000",
		State:     escrow.DepositStateHeld,
	}

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, bank.AccountId{ChainId: 1, Address: "0xbidderb", Denom: domain.EmptyAddress}, raw).
		Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(bigStr("30000000000000000000"), nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, bigStr("10000000000000000"), true).
		Return(bigStr("20000000000000000000"), nil).Once()
	t.mockEscrow.On("FindHeld", mockCtx, l.ListingId).Return(held, nil).Once()
	t.mockEscrow.On("Refund", mockCtx, l, held).Return(nil).Once()
	t.mockEscrow.On("Deposit", mockCtx, l, domain.Address("0xbidderb"), raw).
		Return(&escrow.Deposit{DepositId: "deposit-2"}, nil).Once()
	t.mockRepo.On("RecordBid", mockCtx, l.ListingId, raw.String(), domain.Address("0xbidderb")).
		Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeBidRefunded && a.Account == domain.Address("0xbiddera") && a.Amount == "10000000000000000"
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypePlaceBid && a.Account == domain.Address("0xbidderb")
	})).Return(nil).Once()

	receipt, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidderB", raw)
	t.NoError(err)
	t.Equal(int32(2), receipt.BidCount)
	t.mockEscrow.AssertExpectations(t.T())
	t.mockActivity.AssertExpectations(t.T())
}

// a leader that refuses the refund blocks every displacing bid
func (t *testsuite) TestPlaceBidRefundFailureRejectsBid() {
	l := t.activeListing()
	l.HighestBid = "10000000000000000"
	l.HighestBidder = "0xbiddera"
	l.BidCount = 1
	raw := bigStr("15000000000000000")
	held := &escrow.Deposit{DepositId: "deposit-1", Amount: "10000000000000000", State: escrow.DepositStateHeld}

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, mock.Anything, raw).Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(bigStr("30000000000000000000"), nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, bigStr("10000000000000000"), true).
		Return(bigStr("20000000000000000000"), nil).Once()
	t.mockEscrow.On("FindHeld", mockCtx, l.ListingId).Return(held, nil).Once()
	t.mockEscrow.On("Refund", mockCtx, l, held).Return(domain.ErrRefundFailed).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidderb", raw)
	t.ErrorIs(err, domain.ErrRefundFailed)
	t.mockEscrow.AssertNotCalled(t.T(), "Deposit")
	t.mockRepo.AssertNotCalled(t.T(), "RecordBid")
}

func (t *testsuite) TestPlaceBidStaleOracle() {
	l := t.activeListing()
	raw := bigStr("10000000000000000")

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("Collect", mockCtx, mock.Anything, raw).Return(nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.EmptyAddress, raw, true).
		Return(nil, domain.ErrOracleStale).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidder", raw)
	t.ErrorIs(err, domain.ErrOracleStale)
	t.mockEscrow.AssertNotCalled(t.T(), "Deposit")
}

// token bids ignore the caller amount and take the full standing allowance
func (t *testsuite) TestPlaceBidTokenTakesFullAllowance() {
	l := t.activeListing()
	l.Denom = "0xtoken"
	allowance := bigStr("500000000")

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("CollectAllowance", mockCtx, bank.AccountId{ChainId: 1, Address: "0xbidder", Denom: "0xtoken"}).
		Return(allowance, nil).Once()
	t.mockNormalizer.On("Normalize", mockCtx, domain.ChainId(1), domain.Address("0xtoken"), allowance, true).
		Return(bigStr("20000000000000000000"), nil).Once()
	t.mockEscrow.On("Deposit", mockCtx, l, domain.Address("0xbidder"), allowance).
		Return(&escrow.Deposit{DepositId: "deposit-1"}, nil).Once()
	t.mockRepo.On("RecordBid", mockCtx, l.ListingId, allowance.String(), domain.Address("0xbidder")).
		Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.Anything).Return(nil).Once()

	receipt, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidder", big.NewInt(42))
	t.NoError(err)
	t.Equal(allowance.String(), receipt.RawAmount)
	t.mockBank.AssertNotCalled(t.T(), "Collect")
}

func (t *testsuite) TestPlaceBidTokenNoAllowance() {
	l := t.activeListing()
	l.Denom = "0xtoken"

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockBank.On("CollectAllowance", mockCtx, mock.Anything).Return(big.NewInt(0), nil).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidder", nil)
	t.ErrorIs(err, domain.ErrAmountZero)
}

func (t *testsuite) TestPlaceBidStateGuards() {
	raw := bigStr("10000000000000000")

	ended := t.activeListing()
	ended.Status = listing.StatusEnded
	pending := t.activeListing()
	pending.Status = listing.StatusPending
	expired := t.activeListing()
	expired.EndTime = t.now.Add(-time.Minute)

	for _, l := range []*listing.Listing{ended, pending, expired} {
		t.SetupTest()
		t.expectLock(l.ListingId)
		t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

		_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xbidder", raw)
		t.ErrorIs(err, domain.ErrAuctionNotActive)
		t.mockBank.AssertNotCalled(t.T(), "Collect")
	}
}

func (t *testsuite) TestPlaceBidSellerCannotBid() {
	l := t.activeListing()

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	_, err := t.im.PlaceBid(mockCtx, l.ListingId, "0xSELLER", bigStr("10000000000000000"))
	t.ErrorIs(err, domain.ErrSellerCannotBid)
}

func (t *testsuite) TestPlaceBidListingLocked() {
	key := keys.RedisKey(keys.PfxListingLock, "listing-1")
	t.mockRedis.On("SetNX", mockCtx, key, []byte("1"), listingLockTimeout).
		Return(redisSvc.ErrNotFound).Once()

	_, err := t.im.PlaceBid(mockCtx, "listing-1", "0xbidder", bigStr("10000000000000000"))
	t.ErrorIs(err, domain.ErrListingInProgress)
	t.mockRepo.AssertNotCalled(t.T(), "FindOne")
	t.mockRedis.AssertNotCalled(t.T(), "Del")
}

func (t *testsuite) TestSettleWithWinner() {
	l := t.activeListing()
	l.EndTime = t.now.Add(-time.Minute)
	l.HighestBid = "10000000000000000"
	l.HighestBidder = "0xwinner"
	l.BidCount = 3
	l.FeeRateBps = 250

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockEscrow.On("Release", mockCtx, l, domain.Address("0xseller"), int32(250), domain.Address("0xtreasury")).
		Return(&escrow.Release{
			Recipient: "0xseller",
			Amount:    "9750000000000000",
			FeeAmount: "250000000000000",
		}, nil).Once()
	t.mockCustodian.On("Return", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xwinner")).
		Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, l.ListingId, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusEnded
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeWonAuction && a.Account == domain.Address("0xwinner")
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeSettled && a.To == domain.Address("0xwinner")
	})).Return(nil).Once()

	outcome, err := t.im.Settle(mockCtx, l.ListingId)
	t.NoError(err)
	t.Equal(domain.Address("0xwinner"), outcome.Winner)
	t.Equal("9750000000000000", outcome.Amount)
	t.Equal("250000000000000", outcome.FeeAmount)
	t.mockEscrow.AssertExpectations(t.T())
	t.mockCustodian.AssertExpectations(t.T())
}

func (t *testsuite) TestSettleNoBids() {
	l := t.activeListing()
	l.EndTime = t.now.Add(-time.Minute)

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockCustodian.On("Return", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xseller")).
		Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, l.ListingId, mock.Anything).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.Anything).Return(nil).Once()

	outcome, err := t.im.Settle(mockCtx, l.ListingId)
	t.NoError(err)
	t.True(outcome.Winner.IsEmpty())
	t.Equal("0", outcome.Amount)
	t.mockEscrow.AssertNotCalled(t.T(), "Release")
}

func (t *testsuite) TestSettleBeforeEnd() {
	l := t.activeListing()

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	_, err := t.im.Settle(mockCtx, l.ListingId)
	t.ErrorIs(err, domain.ErrAuctionNotEnded)
	t.mockRepo.AssertNotCalled(t.T(), "Update")
}

func (t *testsuite) TestSettleTerminal() {
	for _, status := range []listing.Status{listing.StatusEnded, listing.StatusCanceled} {
		t.SetupTest()
		l := t.activeListing()
		l.Status = status
		l.EndTime = t.now.Add(-time.Minute)

		t.expectLock(l.ListingId)
		t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

		_, err := t.im.Settle(mockCtx, l.ListingId)
		t.ErrorIs(err, domain.ErrAuctionNotActive)
		t.mockRepo.AssertNotCalled(t.T(), "Update")
		t.mockCustodian.AssertNotCalled(t.T(), "Return")
	}
}

func (t *testsuite) TestCancel() {
	l := t.activeListing()

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockCustodian.On("Return", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42"), domain.Address("0xseller")).
		Return(nil).Once()
	t.mockRepo.On("Update", mockCtx, l.ListingId, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusCanceled
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeCancelListing
	})).Return(nil).Once()

	t.NoError(t.im.Cancel(mockCtx, l.ListingId, "0xSeller"))
	t.mockCustodian.AssertExpectations(t.T())
}

func (t *testsuite) TestCancelNotSeller() {
	l := t.activeListing()

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	t.ErrorIs(t.im.Cancel(mockCtx, l.ListingId, "0xintruder"), domain.ErrNotSeller)
	t.mockCustodian.AssertNotCalled(t.T(), "Return")
	t.mockRepo.AssertNotCalled(t.T(), "Update")
}

func (t *testsuite) TestCancelWithBids() {
	l := t.activeListing()
	l.BidCount = 1
	l.HighestBidder = "0xbidder"

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	t.ErrorIs(t.im.Cancel(mockCtx, l.ListingId, "0xseller"), domain.ErrCannotCancel)
	t.mockCustodian.AssertNotCalled(t.T(), "Return")
}

func (t *testsuite) TestCancelTerminal() {
	for _, status := range []listing.Status{listing.StatusEnded, listing.StatusCanceled} {
		t.SetupTest()
		l := t.activeListing()
		l.Status = status

		t.expectLock(l.ListingId)
		t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

		t.ErrorIs(t.im.Cancel(mockCtx, l.ListingId, "0xseller"), domain.ErrCannotCancel)
		t.mockRepo.AssertNotCalled(t.T(), "Update")
	}
}

func (t *testsuite) TestActivate() {
	l := t.activeListing()
	l.Status = listing.StatusPending
	l.StartTime = t.now.Add(-time.Minute)

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockRepo.On("Update", mockCtx, l.ListingId, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusActive
	})).Return(nil).Once()
	t.mockActivity.On("Insert", mockCtx, mock.MatchedBy(func(a *activity.Activity) bool {
		return a.Type == activity.TypeStartListing
	})).Return(nil).Once()

	t.NoError(t.im.Activate(mockCtx, l.ListingId))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestActivateTooEarly() {
	l := t.activeListing()
	l.Status = listing.StatusPending
	l.StartTime = t.now.Add(time.Hour)

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	t.ErrorIs(t.im.Activate(mockCtx, l.ListingId), domain.ErrNotStarted)
	t.mockRepo.AssertNotCalled(t.T(), "Update")
}

func (t *testsuite) TestActivateNotPending() {
	l := t.activeListing()

	t.expectLock(l.ListingId)
	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()

	t.ErrorIs(t.im.Activate(mockCtx, l.ListingId), domain.ErrNotPending)
}

func (t *testsuite) TestGetInfo() {
	l := t.activeListing()

	t.mockRepo.On("FindOne", mockCtx, l.ListingId).Return(l, nil).Once()
	t.mockRedis.On("Exists", mockCtx, keys.RedisKey(keys.PfxListingLock, l.ListingId.String())).
		Return(true, nil).Once()

	got, err := t.im.GetInfo(mockCtx, l.ListingId)
	t.NoError(err)
	t.True(got.InProgress)
}
