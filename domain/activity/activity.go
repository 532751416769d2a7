package activity

import (
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

type Type string

const (
	TypeCreateListing Type = "createListing"
	TypeStartListing  Type = "startListing"
	TypePlaceBid      Type = "placeBid"
	TypeBidRefunded   Type = "bidRefunded"
	TypeSettled       Type = "settled"
	TypeWonAuction    Type = "wonAuction"
	TypeCancelListing Type = "cancelListing"
)

type Activity struct {
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	Contract  domain.Address   `json:"contract" bson:"contract"`
	TokenId   domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Type      Type             `json:"type" bson:"type"`
	Account   domain.Address   `json:"account" bson:"account"`
	To        domain.Address   `json:"to,omitempty" bson:"to,omitempty"`
	Amount    string           `json:"amount,omitempty" bson:"amount,omitempty"`
	Value     string           `json:"value,omitempty" bson:"value,omitempty"`
	Denom     domain.Address   `json:"denom,omitempty" bson:"denom,omitempty"`
	Time      time.Time        `json:"time" bson:"time"`
}

type findOptions struct {
	Offset    *int32
	Limit     *int32
	ListingId *domain.ListingId
	ChainId   *domain.ChainId
	Account   *domain.Address
	Types     []Type
	TimeGTE   *time.Time
}

type FindOptions func(*findOptions) error

func GetFindOptions(opts ...FindOptions) (*findOptions, error) {
	res := &findOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func WithPagination(offset, limit int32) FindOptions {
	return func(opts *findOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

func WithListingId(id domain.ListingId) FindOptions {
	return func(opts *findOptions) error {
		opts.ListingId = &id
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindOptions {
	return func(opts *findOptions) error {
		opts.ChainId = &chainId
		return nil
	}
}

func WithAccount(account domain.Address) FindOptions {
	return func(opts *findOptions) error {
		opts.Account = account.ToLowerPtr()
		return nil
	}
}

func WithTypes(types ...Type) FindOptions {
	return func(opts *findOptions) error {
		opts.Types = types
		return nil
	}
}

func WithTimeGTE(t time.Time) FindOptions {
	return func(opts *findOptions) error {
		opts.TimeGTE = &t
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Activity, error)
	Insert(c ctx.Ctx, a *Activity) error
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindOptions) ([]*Activity, error)
}
