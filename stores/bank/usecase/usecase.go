package usecase

import (
	"math/big"
	"time"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/ptr"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/bank"
)

type impl struct {
	repo bank.Repo
}

func New(repo bank.Repo) bank.Service {
	return &impl{
		repo: repo,
	}
}

func (im *impl) GetAccount(c bCtx.Ctx, id bank.AccountId) (*bank.Account, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) FindAccounts(c bCtx.Ctx, opts ...bank.FindAllOptionsFunc) ([]*bank.Account, error) {
	return im.repo.FindAll(c, opts...)
}

func (im *impl) Deposit(c bCtx.Ctx, id bank.AccountId, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	account, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return im.createAccount(c, id, amount, domain.Big0)
	} else if err != nil {
		return err
	}

	balance, err := domain.ToBig(account.Balance)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"id":      id,
			"balance": account.Balance,
		}).Error("balance is malformed")
		return err
	}

	return im.patchBalance(c, id, new(big.Int).Add(balance, amount))
}

func (im *impl) Approve(c bCtx.Ctx, id bank.AccountId, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}

	_, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return im.createAccount(c, id, domain.Big0, amount)
	} else if err != nil {
		return err
	}

	now := time.Now()
	return im.repo.Patch(c, id, bank.AccountPatchable{
		Allowance: ptr.String(amount.String()),
		UpdatedAt: &now,
	})
}

func (im *impl) GetAllowance(c bCtx.Ctx, id bank.AccountId) (*big.Int, error) {
	account, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}
	return domain.ToBig(account.Allowance)
}

func (im *impl) Collect(c bCtx.Ctx, id bank.AccountId, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	account, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrInsufficientFunds
	} else if err != nil {
		return err
	}

	balance, err := domain.ToBig(account.Balance)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		c.WithFields(log.Fields{
			"id":      id,
			"balance": account.Balance,
			"amount":  amount.String(),
		}).Warn("balance below collect amount")
		return domain.ErrInsufficientFunds
	}

	return im.patchBalance(c, id, new(big.Int).Sub(balance, amount))
}

func (im *impl) CollectAllowance(c bCtx.Ctx, id bank.AccountId) (*big.Int, error) {
	account, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}

	allowance, err := domain.ToBig(account.Allowance)
	if err != nil {
		return nil, err
	}
	if allowance.Sign() == 0 {
		return allowance, nil
	}

	balance, err := domain.ToBig(account.Balance)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(allowance) < 0 {
		c.WithFields(log.Fields{
			"id":        id,
			"balance":   account.Balance,
			"allowance": account.Allowance,
		}).Warn("balance below standing allowance")
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now()
	if err := im.repo.Patch(c, id, bank.AccountPatchable{
		Balance:   ptr.String(new(big.Int).Sub(balance, allowance).String()),
		Allowance: ptr.String("0"),
		UpdatedAt: &now,
	}); err != nil {
		return nil, err
	}

	return allowance, nil
}

func (im *impl) Payout(c bCtx.Ctx, id bank.AccountId, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	account, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return im.createAccount(c, id, amount, domain.Big0)
	} else if err != nil {
		return err
	}

	if account.PayoutBlocked {
		c.WithFields(log.Fields{
			"id":     id,
			"amount": amount.String(),
		}).Warn("payout rejected by recipient")
		return domain.ErrPayoutRejected
	}

	balance, err := domain.ToBig(account.Balance)
	if err != nil {
		return err
	}

	return im.patchBalance(c, id, new(big.Int).Add(balance, amount))
}

func (im *impl) SetPayoutBlocked(c bCtx.Ctx, id bank.AccountId, blocked bool) error {
	_, err := im.repo.FindOne(c, id)
	if err == domain.ErrNotFound {
		now := time.Now()
		return im.repo.Create(c, &bank.Account{
			ChainId:       id.ChainId,
			Address:       id.Address,
			Denom:         id.Denom,
			Balance:       "0",
			Allowance:     "0",
			PayoutBlocked: blocked,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	} else if err != nil {
		return err
	}

	now := time.Now()
	return im.repo.Patch(c, id, bank.AccountPatchable{
		PayoutBlocked: &blocked,
		UpdatedAt:     &now,
	})
}

func (im *impl) createAccount(c bCtx.Ctx, id bank.AccountId, balance, allowance *big.Int) error {
	now := time.Now()
	return im.repo.Create(c, &bank.Account{
		ChainId:   id.ChainId,
		Address:   id.Address,
		Denom:     id.Denom,
		Balance:   balance.String(),
		Allowance: allowance.String(),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (im *impl) patchBalance(c bCtx.Ctx, id bank.AccountId, balance *big.Int) error {
	now := time.Now()
	return im.repo.Patch(c, id, bank.AccountPatchable{
		Balance:   ptr.String(balance.String()),
		UpdatedAt: &now,
	})
}
