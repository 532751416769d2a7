package bank

import (
	"math/big"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

// AccountId identifies one balance bucket, an owner holds one bucket
// per denomination per chain
type AccountId struct {
	ChainId domain.ChainId `bson:"chainId"`
	Address domain.Address `bson:"address"`
	Denom   domain.Address `bson:"denom"`
}

// Account is the bookkeeping row behind fund movement. Balance and
// Allowance are raw denom amounts in base 10
type Account struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
	Address domain.Address `json:"address" bson:"address"`
	Denom   domain.Address `json:"denom" bson:"denom"`
	Balance string         `json:"balance" bson:"balance"`
	// Allowance is the standing pre authorization a bid may take. Token
	// bids always consume it whole
	Allowance string `json:"allowance" bson:"allowance"`
	// PayoutBlocked makes every payout to this account fail, which is how
	// a refusing recipient is modelled
	PayoutBlocked bool      `json:"payoutBlocked" bson:"payoutBlocked"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Account) ToId() *AccountId {
	return &AccountId{
		ChainId: a.ChainId,
		Address: a.Address,
		Denom:   a.Denom,
	}
}

type AccountPatchable struct {
	Balance       *string    `bson:"balance,omitempty"`
	Allowance     *string    `bson:"allowance,omitempty"`
	PayoutBlocked *bool      `bson:"payoutBlocked,omitempty"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ChainId *domain.ChainId
	Address *domain.Address
	Denom   *domain.Address
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithAddress(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		address = address.ToLower()
		options.Address = &address
		return nil
	}
}

func WithDenom(denom domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		denom = denom.ToLower()
		options.Denom = &denom
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Account, error)
	FindOne(c ctx.Ctx, id AccountId) (*Account, error)
	Create(c ctx.Ctx, account *Account) error
	Patch(c ctx.Ctx, id AccountId, patchable AccountPatchable) error
}

// Service is the transfer mechanism escrow runs on. Collect debits an
// account, Payout credits one and is the step a recipient can reject
type Service interface {
	GetAccount(c ctx.Ctx, id AccountId) (*Account, error)
	FindAccounts(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Account, error)
	// Deposit credits the account balance, creating the account if needed
	Deposit(c ctx.Ctx, id AccountId, amount *big.Int) error
	// Approve sets the standing allowance to exactly amount
	Approve(c ctx.Ctx, id AccountId, amount *big.Int) error
	GetAllowance(c ctx.Ctx, id AccountId) (*big.Int, error)
	// Collect debits amount from the account balance
	Collect(c ctx.Ctx, id AccountId, amount *big.Int) error
	// CollectAllowance takes the full standing allowance, zeroes it and
	// debits the balance by the same amount. Returns the amount taken
	CollectAllowance(c ctx.Ctx, id AccountId) (*big.Int, error)
	// Payout credits amount to the account balance, fails with
	// ErrPayoutRejected when the account blocks payouts
	Payout(c ctx.Ctx, id AccountId, amount *big.Int) error
	SetPayoutBlocked(c ctx.Ctx, id AccountId, blocked bool) error
}
