package escrow

import (
	"math/big"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/listing"
)

// DepositState tracks what happened to escrowed funds. Held funds belong
// to exactly one listing until refunded or released
type DepositState string

const (
	DepositStateHeld     DepositState = "held"
	DepositStateRefunded DepositState = "refunded"
	DepositStateReleased DepositState = "released"
)

type Deposit struct {
	DepositId string           `json:"depositId" bson:"depositId"`
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	Bidder    domain.Address   `json:"bidder" bson:"bidder"`
	Denom     domain.Address   `json:"denom" bson:"denom"`
	// Amount is the raw denom amount, refunds always return it in full
	Amount    string       `json:"amount" bson:"amount"`
	State     DepositState `json:"state" bson:"state"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

type DepositPatchable struct {
	State     *DepositState `bson:"state,omitempty"`
	UpdatedAt *time.Time    `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ListingId *domain.ListingId
	Bidder    *domain.Address
	State     *DepositState
	Offset    *int32
	Limit     *int32
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

func WithListingId(id domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func WithBidder(bidder domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Bidder = bidder.ToLowerPtr()
		return nil
	}
}

func WithState(state DepositState) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.State = &state
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Deposit, error)
	FindOne(c ctx.Ctx, depositId string) (*Deposit, error)
	Create(c ctx.Ctx, deposit *Deposit) error
	Update(c ctx.Ctx, depositId string, patchable DepositPatchable) error
}

// Release is the settlement fund movement, seller portion plus an
// optional fee portion
type Release struct {
	Recipient    domain.Address `json:"recipient"`
	Amount       string         `json:"amount"`
	FeeRecipient domain.Address `json:"feeRecipient"`
	FeeAmount    string         `json:"feeAmount"`
}

// Usecase is the escrow ledger. Deposit only records funds the caller
// already collected through the bank, Refund and Release move funds out
type Usecase interface {
	Deposit(c ctx.Ctx, l *listing.Listing, bidder domain.Address, amount *big.Int) (*Deposit, error)
	Refund(c ctx.Ctx, l *listing.Listing, deposit *Deposit) error
	Release(c ctx.Ctx, l *listing.Listing, recipient domain.Address, feeRateBps int32, feeRecipient domain.Address) (*Release, error)
	FindHeld(c ctx.Ctx, id domain.ListingId) (*Deposit, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Deposit, error)
}
