package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/bank"
	"github.com/gavelhouse/goapi/domain/escrow"
	"github.com/gavelhouse/goapi/domain/listing"
)

const feeDenominatorBps = 10000

type EscrowUsecaseCfg struct {
	Repo escrow.Repo
	Bank bank.Service
}

type impl struct {
	repo escrow.Repo
	bank bank.Service
}

func New(cfg *EscrowUsecaseCfg) escrow.Usecase {
	return &impl{
		repo: cfg.Repo,
		bank: cfg.Bank,
	}
}

// Deposit records funds the caller already collected. The transfer is a
// precondition, not something this ledger performs
func (im *impl) Deposit(c bCtx.Ctx, l *listing.Listing, bidder domain.Address, amount *big.Int) (*escrow.Deposit, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrAmountZero
	}

	id, err := uuid.NewRandom()
	if err != nil {
		c.WithField("err", err).Error("failed to uuid.NewRandom")
		return nil, err
	}

	now := time.Now()
	deposit := &escrow.Deposit{
		DepositId: id.String(),
		ListingId: l.ListingId,
		ChainId:   l.ChainId,
		Bidder:    bidder.ToLower(),
		Denom:     l.Denom,
		Amount:    amount.String(),
		State:     escrow.DepositStateHeld,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := im.repo.Create(c, deposit); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"deposit": deposit,
		}).Error("repo.Create failed")
		return nil, err
	}

	return deposit, nil
}

// Refund returns the deposit to its bidder in full. A rejected payout
// fails the whole call, the displaced leader keeps its escrow claim and
// the caller must treat the triggering operation as failed
func (im *impl) Refund(c bCtx.Ctx, l *listing.Listing, deposit *escrow.Deposit) error {
	if deposit.State != escrow.DepositStateHeld {
		c.WithFields(log.Fields{
			"depositId": deposit.DepositId,
			"state":     deposit.State,
		}).Error("deposit is not held")
		return domain.ErrRefundFailed
	}

	amount, err := domain.ToBig(deposit.Amount)
	if err != nil {
		return err
	}

	if err := im.bank.Payout(c, bank.AccountId{
		ChainId: deposit.ChainId,
		Address: deposit.Bidder,
		Denom:   deposit.Denom,
	}, amount); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"depositId": deposit.DepositId,
			"bidder":    deposit.Bidder,
		}).Error("bank.Payout failed")
		return domain.ErrRefundFailed
	}

	now := time.Now()
	state := escrow.DepositStateRefunded
	return im.repo.Update(c, deposit.DepositId, escrow.DepositPatchable{
		State:     &state,
		UpdatedAt: &now,
	})
}

// Release moves the held deposit out at settlement, split into a seller
// portion and an optional fee portion
func (im *impl) Release(c bCtx.Ctx, l *listing.Listing, recipient domain.Address, feeRateBps int32, feeRecipient domain.Address) (*escrow.Release, error) {
	deposit, err := im.FindHeld(c, l.ListingId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("FindHeld failed")
		return nil, err
	}

	amount, err := domain.ToBig(deposit.Amount)
	if err != nil {
		return nil, err
	}

	fee := big.NewInt(0)
	if feeRateBps > 0 && !feeRecipient.IsEmpty() {
		fee = new(big.Int).Div(new(big.Int).Mul(amount, big.NewInt(int64(feeRateBps))), big.NewInt(feeDenominatorBps))
	}
	sellerPart := new(big.Int).Sub(amount, fee)

	if err := im.bank.Payout(c, bank.AccountId{
		ChainId: deposit.ChainId,
		Address: recipient.ToLower(),
		Denom:   deposit.Denom,
	}, sellerPart); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
			"recipient": recipient,
		}).Error("bank.Payout failed")
		return nil, domain.ErrReleaseFailed
	}

	if fee.Sign() > 0 {
		if err := im.bank.Payout(c, bank.AccountId{
			ChainId: deposit.ChainId,
			Address: feeRecipient.ToLower(),
			Denom:   deposit.Denom,
		}, fee); err != nil {
			c.WithFields(log.Fields{
				"err":          err,
				"listingId":    l.ListingId,
				"feeRecipient": feeRecipient,
			}).Error("bank.Payout failed")
			return nil, domain.ErrReleaseFailed
		}
	}

	now := time.Now()
	state := escrow.DepositStateReleased
	if err := im.repo.Update(c, deposit.DepositId, escrow.DepositPatchable{
		State:     &state,
		UpdatedAt: &now,
	}); err != nil {
		return nil, err
	}

	return &escrow.Release{
		Recipient:    recipient.ToLower(),
		Amount:       sellerPart.String(),
		FeeRecipient: feeRecipient.ToLower(),
		FeeAmount:    fee.String(),
	}, nil
}

// FindHeld returns the deposit currently held for a listing. At most one
// deposit is held per listing at any time, the current leader's
func (im *impl) FindHeld(c bCtx.Ctx, id domain.ListingId) (*escrow.Deposit, error) {
	deposits, err := im.repo.FindAll(c, escrow.WithListingId(id), escrow.WithState(escrow.DepositStateHeld))
	if err != nil {
		return nil, err
	}
	if len(deposits) == 0 {
		return nil, domain.ErrNotFound
	}
	return deposits[0], nil
}

func (im *impl) FindAll(c bCtx.Ctx, opts ...escrow.FindAllOptionsFunc) ([]*escrow.Deposit, error) {
	return im.repo.FindAll(c, opts...)
}
