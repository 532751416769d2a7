package sweeper

import (
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"github.com/gavelhouse/goapi/base/backoff"
	"github.com/gavelhouse/goapi/base/counter"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/metrics"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/listing"
	"github.com/gavelhouse/goapi/service/announcer"
)

var metOnce sync.Once
var met metrics.Service

var timeNow = time.Now

const (
	defaultBatch      = int32(100)
	defaultWorkers    = 8
	defaultRetryLimit = 3
)

type SweeperCfg struct {
	Listing listing.Usecase
	// Announcer is optional, settlements are swept either way
	Announcer  announcer.Announcer
	Interval   time.Duration
	Batch      int32
	Workers    int
	RetryLimit int
	Backoff    *backoff.Backoff
	ErrorCh    chan<- error
}

// Sweeper drives time-based listing transitions that no user request
// triggers. Every pass activates due pending listings and settles expired
// active ones through the same usecase guards the api uses, so racing a
// user call is harmless
type Sweeper struct {
	listing    listing.Usecase
	announcer  announcer.Announcer
	interval   time.Duration
	batch      int32
	workers    int
	retryLimit int
	backoff    *backoff.Backoff
	errorCh    chan<- error
	stoppedCh  chan interface{}
}

func New(cfg *SweeperCfg) *Sweeper {
	metOnce.Do(func() {
		met = metrics.New("sweeper")
	})
	batch := cfg.Batch
	if batch == 0 {
		batch = defaultBatch
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = defaultWorkers
	}
	retryLimit := cfg.RetryLimit
	if retryLimit == 0 {
		retryLimit = defaultRetryLimit
	}
	return &Sweeper{
		listing:    cfg.Listing,
		announcer:  cfg.Announcer,
		interval:   cfg.Interval,
		batch:      batch,
		workers:    workers,
		retryLimit: retryLimit,
		backoff:    cfg.Backoff,
		errorCh:    cfg.ErrorCh,
		stoppedCh:  make(chan interface{}),
	}
}

func (s *Sweeper) Start(ctx bCtx.Ctx) {
	go s.loop(ctx)
}

func (s *Sweeper) Wait() {
	<-s.stoppedCh
}

// RunOnce performs one activation and one settlement pass synchronously.
// Exists for the run-once mode used by manual sweeps and cron setups
func (s *Sweeper) RunOnce(ctx bCtx.Ctx) error {
	if err := s.activatePass(ctx); err != nil {
		return err
	}
	return s.settlePass(ctx)
}

func (s *Sweeper) loop(ctx bCtx.Ctx) {
	errAndStop := func(err error) {
		s.errorCh <- err
		close(s.stoppedCh)
	}

	nextTick := time.Second * 0

	for {
		select {
		case <-ctx.Done():
			close(s.stoppedCh)
			return
		case <-time.After(nextTick):
			if err := s.activatePass(ctx); err != nil {
				errAndStop(err)
				return
			}
			if err := s.settlePass(ctx); err != nil {
				errAndStop(err)
				return
			}
			nextTick = s.interval
		}
	}
}

func (s *Sweeper) activatePass(ctx bCtx.Ctx) error {
	due, err := s.findDue(ctx, listing.StatusPending)
	if err != nil {
		ctx.WithField("err", err).Error("fetching due pending listings failed")
		return err
	}
	if len(due) == 0 {
		return nil
	}

	done := counter.NewCounter()
	b := goroutines.NewBatch(s.workers, goroutines.WithBatchSize(len(due)))
	defer b.Close()
	for i := 0; i < len(due); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			s.activateOne(ctx, due[idx], done)
			return nil, nil
		})
	}
	b.QueueComplete()
	for range b.Results() {
	}
	if n := done.Count(); n > 0 {
		ctx.WithField("count", n).Info("activation pass done")
	}
	return nil
}

func (s *Sweeper) settlePass(ctx bCtx.Ctx) error {
	due, err := s.findDue(ctx, listing.StatusActive)
	if err != nil {
		ctx.WithField("err", err).Error("fetching expired active listings failed")
		return err
	}
	if len(due) == 0 {
		return nil
	}

	done := counter.NewCounter()
	b := goroutines.NewBatch(s.workers, goroutines.WithBatchSize(len(due)))
	defer b.Close()
	for i := 0; i < len(due); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			s.settleOne(ctx, due[idx], done)
			return nil, nil
		})
	}
	b.QueueComplete()
	for range b.Results() {
	}
	if n := done.Count(); n > 0 {
		ctx.WithField("count", n).Info("settlement pass done")
	}
	return nil
}

// findDue fetches one batch of listings whose boundary has passed. Items
// beyond the batch are picked up on following ticks
func (s *Sweeper) findDue(ctx bCtx.Ctx, status listing.Status) ([]*listing.Listing, error) {
	now := timeNow()
	opts := []listing.FindAllOptionsFunc{
		listing.WithStatus(status),
		listing.WithPagination(0, s.batch),
	}
	if status == listing.StatusPending {
		opts = append(opts, listing.WithStartTimeLTE(now))
	} else {
		opts = append(opts, listing.WithEndTimeLT(now))
	}

	var (
		retries = 0
		due     []*listing.Listing
		err     error
	)
	s.backoff.Reset()
	for retries < s.retryLimit {
		due, err = s.listing.FindAll(ctx, opts...)
		if err == nil {
			break
		}
		retries++
		if s.backoff.Backoff(ctx) != nil {
			// ctx closed
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return due, nil
}

func (s *Sweeper) activateOne(ctx bCtx.Ctx, l *listing.Listing, done *counter.Counter) {
	err := s.listing.Activate(ctx, l.ListingId)
	switch err {
	case nil:
		done.Add(1)
		met.BumpSum("sweep.activated", 1)
		ctx.WithField("listingId", l.ListingId).Info("listing activated")
	case domain.ErrNotPending, domain.ErrNotStarted, domain.ErrListingInProgress:
		// lost the race against a user call or a sibling sweeper
		ctx.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Warn("activation skipped")
	default:
		met.BumpSum("sweep.activateFailed", 1)
		ctx.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("listing.Activate failed")
	}
}

func (s *Sweeper) settleOne(ctx bCtx.Ctx, l *listing.Listing, done *counter.Counter) {
	outcome, err := s.listing.Settle(ctx, l.ListingId)
	switch err {
	case nil:
	case domain.ErrAuctionNotActive, domain.ErrAuctionNotEnded, domain.ErrListingInProgress:
		ctx.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Warn("settlement skipped")
		return
	default:
		// a failing payout leaves this listing expired but settleable
		// later, the rest of the batch is unaffected
		met.BumpSum("sweep.settleFailed", 1)
		ctx.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("listing.Settle failed")
		return
	}

	done.Add(1)
	met.BumpSum("sweep.settled", 1)
	ctx.WithFields(log.Fields{
		"listingId": l.ListingId,
		"winner":    outcome.Winner,
		"amount":    outcome.Amount,
	}).Info("listing settled")

	if s.announcer == nil {
		return
	}
	if err := s.announcer.AnnounceSettled(ctx, l, outcome); err != nil {
		ctx.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Warn("announcer.AnnounceSettled failed")
	}
}
