package asset

import (
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

// Vault is a custody record. One record exists per asset while a
// listing holds it, key is chainId + contract + tokenId
type Vault struct {
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	Contract  domain.Address   `json:"contract" bson:"contract"`
	TokenId   domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Owner     domain.Address   `json:"owner" bson:"owner"`
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	ChainId *domain.ChainId
	Owner   *domain.Address
	Offset  *int32
	Limit   *int32
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

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
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
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Vault, error)
	FindOne(c ctx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) (*Vault, error)
	Create(c ctx.Ctx, vault *Vault) error
	Delete(c ctx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) error
}

// Custodian moves assets in and out of custody. Take verifies the
// seller owns the token on chain before recording custody, Return hands
// it to the recipient and drops the record
type Custodian interface {
	Take(c ctx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId, owner domain.Address, id domain.ListingId) error
	Return(c ctx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId, recipient domain.Address) error
	Holding(c ctx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) (*Vault, error)
}
