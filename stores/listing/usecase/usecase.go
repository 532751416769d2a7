package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/metrics"
	"github.com/gavelhouse/goapi/base/normalizer"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/activity"
	"github.com/gavelhouse/goapi/domain/asset"
	"github.com/gavelhouse/goapi/domain/bank"
	"github.com/gavelhouse/goapi/domain/escrow"
	"github.com/gavelhouse/goapi/domain/keys"
	"github.com/gavelhouse/goapi/domain/listing"
	"github.com/gavelhouse/goapi/service/query"
	redisSvc "github.com/gavelhouse/goapi/service/redis"
)

var (
	met     metrics.Service
	metOnce sync.Once

	timeNow = time.Now
)

// listingLockTimeout bounds how long one operation may hold a listing.
// An operation exceeding it loses exclusivity instead of wedging the
// listing forever
const listingLockTimeout = 30 * time.Second

type ListingUsecaseCfg struct {
	Repo         listing.Repo
	Query        query.Mongo
	Custodian    asset.Custodian
	Escrow       escrow.Usecase
	Bank         bank.Service
	Denom        domain.DenomUsecase
	Normalizer   normalizer.Normalizer
	Activity     activity.Repo
	Redis        redisSvc.Service
	FeeRecipient domain.Address
}

type impl struct {
	repo         listing.Repo
	q            query.Mongo
	custodian    asset.Custodian
	escrow       escrow.Usecase
	bank         bank.Service
	denom        domain.DenomUsecase
	normalizer   normalizer.Normalizer
	activity     activity.Repo
	redis        redisSvc.Service
	feeRecipient domain.Address
}

func New(cfg *ListingUsecaseCfg) listing.Usecase {
	metOnce.Do(func() {
		met = metrics.New("listing")
	})
	return &impl{
		repo:         cfg.Repo,
		q:            cfg.Query,
		custodian:    cfg.Custodian,
		escrow:       cfg.Escrow,
		bank:         cfg.Bank,
		denom:        cfg.Denom,
		normalizer:   cfg.Normalizer,
		activity:     cfg.Activity,
		redis:        cfg.Redis,
		feeRecipient: cfg.FeeRecipient.ToLower(),
	}
}

func (im *impl) CreateListing(c bCtx.Ctx, payload listing.CreateListingPayload) (*listing.Listing, error) {
	if payload.ChainId <= 0 {
		return nil, domain.ErrInvalidChainId
	}
	if payload.Seller.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	if payload.AssetContract.IsEmpty() {
		return nil, domain.ErrInvalidAsset
	}
	if _, err := payload.TokenId.ToBig(); err != nil {
		return nil, domain.ErrInvalidAsset
	}
	if payload.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if payload.MinimumValue == nil || payload.MinimumValue.Sign() <= 0 {
		return nil, domain.ErrInvalidMinimumValue
	}

	strategy, err := listing.GetStrategy(payload.Strategy)
	if err != nil {
		return nil, err
	}

	denomAddr := payload.Denom.ToLower()
	if denomAddr.IsNativeDenom() {
		denomAddr = domain.EmptyAddress
	}

	d, err := im.denom.Get(c, payload.ChainId, denomAddr)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownDenomination
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": payload.ChainId,
			"denom":   denomAddr,
		}).Error("denom.Get failed")
		return nil, err
	}
	if !d.Enabled {
		c.WithFields(log.Fields{
			"chainId": payload.ChainId,
			"denom":   denomAddr,
		}).Warn("denomination disabled for new listings")
		return nil, domain.ErrUnknownDenomination
	}

	assetId := listing.AssetId{
		ChainId:       payload.ChainId,
		AssetContract: payload.AssetContract.ToLower(),
		TokenId:       payload.TokenId,
	}
	count, err := im.repo.Count(c,
		listing.WithAssetId(assetId),
		listing.WithStatuses(listing.StatusPending, listing.StatusActive),
	)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.Count failed")
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrListingExists
	}

	id, err := uuid.NewRandom()
	if err != nil {
		c.WithField("err", err).Error("failed to uuid.NewRandom")
		return nil, err
	}

	now := timeNow()
	start := payload.StartTime
	if start.IsZero() {
		start = now
	}
	status := listing.StatusActive
	if start.After(now) {
		status = listing.StatusPending
	}

	l := &listing.Listing{
		ListingId:     domain.ListingId(id.String()),
		ChainId:       payload.ChainId,
		AssetContract: payload.AssetContract.ToLower(),
		TokenId:       payload.TokenId,
		Seller:        payload.Seller.ToLower(),
		Denom:         denomAddr,
		StartTime:     start,
		EndTime:       start.Add(payload.Duration),
		MinimumValue:  payload.MinimumValue.String(),
		HighestBid:    "0",
		Status:        status,
		Strategy:      strategy.Version,
		FeeRateBps:    strategy.FeeRateBps,
		FeeRecipient:  im.feeRecipient,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	run := func(c bCtx.Ctx) error {
		if err := im.custodian.Take(c, l.ChainId, l.AssetContract, l.TokenId, l.Seller, l.ListingId); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
				"seller":  l.Seller,
			}).Error("custodian.Take failed")
			return err
		}
		if err := im.repo.Create(c, l); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"listing": l,
			}).Error("repo.Create failed")
			return err
		}
		return im.insertActivity(c, l, activity.TypeCreateListing, l.Seller, "", "", "", now)
	}
	if err := im.q.RunWithTransaction(c, run); err != nil {
		return nil, err
	}

	met.BumpSum("listing.created", 1, "chainId", fmt.Sprint(l.ChainId))
	return l, nil
}

func (im *impl) PlaceBid(c bCtx.Ctx, id domain.ListingId, bidder domain.Address, rawAmount *big.Int) (*listing.BidReceipt, error) {
	if bidder.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	unlock, err := im.lock(c, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if l.Status != listing.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}
	if !timeNow().Before(l.EndTime) {
		return nil, domain.ErrAuctionNotActive
	}
	if bidder.Equals(l.Seller) {
		return nil, domain.ErrSellerCannotBid
	}

	strategy, err := listing.GetStrategy(l.Strategy)
	if err != nil {
		return nil, err
	}

	isNative := l.Denom.IsNativeDenom()
	if isNative && (rawAmount == nil || rawAmount.Sign() <= 0) {
		return nil, domain.ErrAmountZero
	}

	accountId := bank.AccountId{
		ChainId: l.ChainId,
		Address: bidder.ToLower(),
		Denom:   l.Denom,
	}

	now := timeNow()
	var receipt *listing.BidReceipt

	run := func(c bCtx.Ctx) error {
		raw := rawAmount
		if isNative {
			if err := im.bank.Collect(c, accountId, raw); err != nil {
				c.WithFields(log.Fields{
					"err":    err,
					"bidder": bidder,
					"amount": raw,
				}).Error("bank.Collect failed")
				return err
			}
		} else {
			// token bids consume the full standing pre-authorization,
			// the caller-supplied amount is ignored
			taken, err := im.bank.CollectAllowance(c, accountId)
			if err != nil {
				c.WithFields(log.Fields{
					"err":    err,
					"bidder": bidder,
				}).Error("bank.CollectAllowance failed")
				return err
			}
			if taken.Sign() == 0 {
				return domain.ErrAmountZero
			}
			raw = taken
		}

		value, err := im.normalizer.Normalize(c, l.ChainId, l.Denom, raw, strategy.StrictOracle)
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
				"amount":    raw,
			}).Error("normalizer.Normalize failed")
			return err
		}

		minimum, err := domain.ToBig(l.MinimumValue)
		if err != nil {
			return err
		}
		if value.Cmp(minimum) < 0 {
			return domain.ErrBidBelowMinimum
		}

		if l.HasLeader() {
			prevRaw, err := domain.ToBig(l.HighestBid)
			if err != nil {
				return err
			}
			// the incumbent is re-normalized at the current price, so the
			// value it defends with drifts with the oracle between bids
			prevValue, err := im.normalizer.Normalize(c, l.ChainId, l.Denom, prevRaw, strategy.StrictOracle)
			if err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
					"amount":    prevRaw,
				}).Error("normalizer.Normalize failed for incumbent")
				return err
			}
			if value.Cmp(prevValue) <= 0 {
				return domain.ErrBidNotHigher
			}

			held, err := im.escrow.FindHeld(c, l.ListingId)
			if err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
				}).Error("escrow.FindHeld failed")
				return err
			}
			// a refund that cannot complete rejects the incoming bid whole,
			// the incumbent keeps both escrow and leadership
			if err := im.escrow.Refund(c, l, held); err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
					"leader":    l.HighestBidder,
				}).Error("refund of displaced leader failed, bid rejected")
				return err
			}
			if err := im.insertActivity(c, l, activity.TypeBidRefunded, l.HighestBidder, "", l.HighestBid, "", now); err != nil {
				return err
			}
		}

		if _, err := im.escrow.Deposit(c, l, bidder, raw); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
				"bidder":    bidder,
			}).Error("escrow.Deposit failed")
			return err
		}

		if err := im.repo.RecordBid(c, l.ListingId, raw.String(), bidder); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
				"bidder":    bidder,
			}).Error("repo.RecordBid failed")
			return err
		}

		if err := im.insertActivity(c, l, activity.TypePlaceBid, bidder, "", raw.String(), value.String(), now); err != nil {
			return err
		}

		receipt = &listing.BidReceipt{
			ListingId:       l.ListingId,
			Bidder:          bidder.ToLower(),
			RawAmount:       raw.String(),
			NormalizedValue: value.String(),
			Denom:           l.Denom,
			BidCount:        l.BidCount + 1,
		}
		return nil
	}
	if err := im.q.RunWithTransaction(c, run); err != nil {
		return nil, err
	}

	met.BumpSum("bid.placed", 1, "chainId", fmt.Sprint(l.ChainId))
	return receipt, nil
}

func (im *impl) Settle(c bCtx.Ctx, id domain.ListingId) (*listing.SettleOutcome, error) {
	unlock, err := im.lock(c, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if l.Status != listing.StatusActive {
		return nil, domain.ErrAuctionNotActive
	}
	if timeNow().Before(l.EndTime) {
		return nil, domain.ErrAuctionNotEnded
	}

	outcome := &listing.SettleOutcome{
		ListingId: l.ListingId,
		Seller:    l.Seller,
		Denom:     l.Denom,
		Amount:    "0",
		FeeAmount: "0",
	}

	now := timeNow()
	run := func(c bCtx.Ctx) error {
		if l.HasLeader() {
			release, err := im.escrow.Release(c, l, l.Seller, l.FeeRateBps, l.FeeRecipient)
			if err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
				}).Error("escrow.Release failed")
				return err
			}
			if err := im.custodian.Return(c, l.ChainId, l.AssetContract, l.TokenId, l.HighestBidder); err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
					"winner":    l.HighestBidder,
				}).Error("custodian.Return failed")
				return err
			}
			outcome.Winner = l.HighestBidder
			outcome.Amount = release.Amount
			outcome.FeeAmount = release.FeeAmount

			if err := im.insertActivity(c, l, activity.TypeWonAuction, l.HighestBidder, "", l.HighestBid, "", now); err != nil {
				return err
			}
		} else {
			if err := im.custodian.Return(c, l.ChainId, l.AssetContract, l.TokenId, l.Seller); err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
					"seller":    l.Seller,
				}).Error("custodian.Return failed")
				return err
			}
		}

		status := listing.StatusEnded
		if err := im.repo.Update(c, l.ListingId, listing.Patchable{
			Status:    &status,
			UpdatedAt: &now,
		}); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
			}).Error("repo.Update failed")
			return err
		}

		return im.insertActivity(c, l, activity.TypeSettled, l.Seller, outcome.Winner, outcome.Amount, "", now)
	}
	if err := im.q.RunWithTransaction(c, run); err != nil {
		return nil, err
	}

	met.BumpSum("listing.settled", 1, "chainId", fmt.Sprint(l.ChainId))
	return outcome, nil
}

func (im *impl) Cancel(c bCtx.Ctx, id domain.ListingId, caller domain.Address) error {
	unlock, err := im.lock(c, id)
	if err != nil {
		return err
	}
	defer unlock()

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !caller.Equals(l.Seller) {
		return domain.ErrNotSeller
	}
	if l.Status != listing.StatusPending && !(l.Status == listing.StatusActive && l.BidCount == 0) {
		return domain.ErrCannotCancel
	}

	now := timeNow()
	run := func(c bCtx.Ctx) error {
		if err := im.custodian.Return(c, l.ChainId, l.AssetContract, l.TokenId, l.Seller); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
				"seller":    l.Seller,
			}).Error("custodian.Return failed")
			return err
		}

		status := listing.StatusCanceled
		if err := im.repo.Update(c, l.ListingId, listing.Patchable{
			Status:    &status,
			UpdatedAt: &now,
		}); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
			}).Error("repo.Update failed")
			return err
		}

		return im.insertActivity(c, l, activity.TypeCancelListing, l.Seller, "", "", "", now)
	}
	if err := im.q.RunWithTransaction(c, run); err != nil {
		return err
	}

	met.BumpSum("listing.canceled", 1, "chainId", fmt.Sprint(l.ChainId))
	return nil
}

func (im *impl) Activate(c bCtx.Ctx, id domain.ListingId) error {
	unlock, err := im.lock(c, id)
	if err != nil {
		return err
	}
	defer unlock()

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}

	if l.Status != listing.StatusPending {
		return domain.ErrNotPending
	}
	if timeNow().Before(l.StartTime) {
		return domain.ErrNotStarted
	}

	now := timeNow()
	run := func(c bCtx.Ctx) error {
		status := listing.StatusActive
		if err := im.repo.Update(c, l.ListingId, listing.Patchable{
			Status:    &status,
			UpdatedAt: &now,
		}); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": l.ListingId,
			}).Error("repo.Update failed")
			return err
		}
		return im.insertActivity(c, l, activity.TypeStartListing, l.Seller, "", "", "", now)
	}
	return im.q.RunWithTransaction(c, run)
}

func (im *impl) GetInfo(c bCtx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	locked, err := im.redis.Exists(c, keys.RedisKey(keys.PfxListingLock, id.String()))
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Warn("redis.Exists failed")
		return l, nil
	}
	l.InProgress = locked
	return l, nil
}

func (im *impl) FindAll(c bCtx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, opts...)
}

func (im *impl) Count(c bCtx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	return im.repo.Count(c, opts...)
}

// lock serializes mutating operations per listing. The returned unlock
// must run in the same call, reentry while held fails instead of waiting
func (im *impl) lock(c bCtx.Ctx, id domain.ListingId) (func(), error) {
	key := keys.RedisKey(keys.PfxListingLock, id.String())
	err := im.redis.SetNX(c, key, []byte("1"), listingLockTimeout)
	if err == redisSvc.ErrNotFound {
		return nil, domain.ErrListingInProgress
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("redis.SetNX failed")
		return nil, err
	}
	return func() {
		if _, err := im.redis.Del(c, key); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Warn("redis.Del failed")
		}
	}, nil
}

func (im *impl) insertActivity(c bCtx.Ctx, l *listing.Listing, typ activity.Type, account, to domain.Address, amount, value string, t time.Time) error {
	a := &activity.Activity{
		ListingId: l.ListingId,
		ChainId:   l.ChainId,
		Contract:  l.AssetContract,
		TokenId:   l.TokenId,
		Type:      typ,
		Account:   account.ToLower(),
		To:        to.ToLower(),
		Amount:    amount,
		Value:     value,
		Denom:     l.Denom,
		Time:      t,
	}
	if err := im.activity.Insert(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("activity.Insert failed")
		return err
	}
	return nil
}
