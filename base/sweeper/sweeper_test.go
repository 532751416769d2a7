package sweeper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/gavelhouse/goapi/base/backoff"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/listing"
	mockListing "github.com/gavelhouse/goapi/domain/listing/mocks"
)

var (
	mockCtx = bCtx.Background()
)

// stubAnnouncer records announcements instead of talking to discord
type stubAnnouncer struct {
	announced []*listing.SettleOutcome
	err       error
}

func (s *stubAnnouncer) AnnounceSettled(_ bCtx.Ctx, _ *listing.Listing, outcome *listing.SettleOutcome) error {
	if s.err != nil {
		return s.err
	}
	s.announced = append(s.announced, outcome)
	return nil
}

type testsuite struct {
	suite.Suite

	listing   *mockListing.Usecase
	announcer *stubAnnouncer
	errCh     chan error
	now       time.Time

	sweeper *Sweeper
}

func (t *testsuite) SetupTest() {
	t.listing = &mockListing.Usecase{}
	t.announcer = &stubAnnouncer{}
	t.errCh = make(chan error, 10)
	t.now = time.Unix(1700000000, 0)
	timeNow = func() time.Time { return t.now }

	t.sweeper = New(&SweeperCfg{
		Listing:    t.listing,
		Announcer:  t.announcer,
		Interval:   time.Hour,
		Batch:      100,
		Workers:    1,
		RetryLimit: 3,
		Backoff:    backoff.NewExponential(time.Millisecond, 2*time.Millisecond),
		ErrorCh:    t.errCh,
	})
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) due(id string, status listing.Status) *listing.Listing {
	return &listing.Listing{
		ListingId:     domain.ListingId(id),
		ChainId:       1,
		AssetContract: "0xcontract",
		TokenId:       "42",
		Seller:        "0xseller",
		StartTime:     t.now.Add(-2 * time.Hour),
		EndTime:       t.now.Add(-time.Hour),
		Status:        status,
	}
}

func (t *testsuite) TestActivateDuePending() {
	l := t.due("listing-1", listing.StatusPending)

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	t.listing.On("Activate", mockCtx, l.ListingId).Return(nil).Once()

	t.NoError(t.sweeper.activatePass(mockCtx))
	t.listing.AssertExpectations(t.T())
}

func (t *testsuite) TestActivateRaceSkipped() {
	l := t.due("listing-1", listing.StatusPending)

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	t.listing.On("Activate", mockCtx, l.ListingId).Return(domain.ErrNotPending).Once()

	t.NoError(t.sweeper.activatePass(mockCtx))
	t.listing.AssertExpectations(t.T())
}

func (t *testsuite) TestSettleExpiredAndAnnounce() {
	l := t.due("listing-1", listing.StatusActive)
	outcome := &listing.SettleOutcome{
		ListingId: l.ListingId,
		Winner:    "0xbidder",
		Seller:    l.Seller,
		Amount:    "20000000000000000000",
		FeeAmount: "0",
	}

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	t.listing.On("Settle", mockCtx, l.ListingId).Return(outcome, nil).Once()

	t.NoError(t.sweeper.settlePass(mockCtx))
	t.listing.AssertExpectations(t.T())

	t.Require().Len(t.announcer.announced, 1)
	t.Equal(outcome, t.announcer.announced[0])
}

func (t *testsuite) TestSettlePayoutRejectedKeepsSweeping() {
	blocked := t.due("listing-1", listing.StatusActive)
	healthy := t.due("listing-2", listing.StatusActive)
	outcome := &listing.SettleOutcome{
		ListingId: healthy.ListingId,
		Winner:    "0xbidder",
		Seller:    healthy.Seller,
		Amount:    "20000000000000000000",
		FeeAmount: "0",
	}

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{blocked, healthy}, nil).Once()
	t.listing.On("Settle", mockCtx, blocked.ListingId).Return(nil, domain.ErrPayoutRejected).Once()
	t.listing.On("Settle", mockCtx, healthy.ListingId).Return(outcome, nil).Once()

	t.NoError(t.sweeper.settlePass(mockCtx))
	t.listing.AssertExpectations(t.T())

	t.Require().Len(t.announcer.announced, 1)
	t.Equal(outcome, t.announcer.announced[0])
}

func (t *testsuite) TestAnnounceFailureTolerated() {
	t.announcer.err = errors.New("discord down")

	l := t.due("listing-1", listing.StatusActive)
	outcome := &listing.SettleOutcome{ListingId: l.ListingId, Winner: "0xbidder"}

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	t.listing.On("Settle", mockCtx, l.ListingId).Return(outcome, nil).Once()

	t.NoError(t.sweeper.settlePass(mockCtx))
	t.listing.AssertExpectations(t.T())
}

func (t *testsuite) TestFindDueExhaustsRetries() {
	boom := errors.New("mongo down")

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, boom).Times(3)

	t.Equal(boom, t.sweeper.activatePass(mockCtx))
	t.listing.AssertExpectations(t.T())
}

func (t *testsuite) TestRunOnce() {
	pending := t.due("listing-1", listing.StatusPending)
	expired := t.due("listing-2", listing.StatusActive)
	outcome := &listing.SettleOutcome{ListingId: expired.ListingId, Winner: "0xbidder"}

	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{pending}, nil).Once()
	t.listing.On("Activate", mockCtx, pending.ListingId).Return(nil).Once()
	t.listing.On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{expired}, nil).Once()
	t.listing.On("Settle", mockCtx, expired.ListingId).Return(outcome, nil).Once()

	t.NoError(t.sweeper.RunOnce(mockCtx))
	t.listing.AssertExpectations(t.T())
	t.Len(t.announcer.announced, 1)
}

func (t *testsuite) TestLoopStopsOnCancel() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	t.listing.On("FindAll", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{}, nil)

	t.sweeper.Start(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()
	t.sweeper.Wait()
}
