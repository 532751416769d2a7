package domain

import (
	"github.com/gavelhouse/goapi/base/ctx"
)

// DenomId identifies a denomination on a chain. The native value unit is
// registered under EmptyAddress
type DenomId struct {
	ChainId ChainId `bson:"chainId"`
	Address Address `bson:"address"`
}

// Denom is the registered configuration of one bid denomination.
// Bids cannot be normalized before the denomination is registered
type Denom struct {
	Name    string  `json:"name" bson:"name"`
	Symbol  string  `json:"symbol" bson:"symbol"`
	ChainId ChainId `json:"chainId" bson:"chainId"`
	Address Address `json:"address" bson:"address"`
	// PriceFeedAddress is the aggregator reporting denom price in the unit of account.
	// The answer precision is read from the feed, not stored here
	PriceFeedAddress Address `json:"priceFeedAddress" bson:"priceFeedAddress"`
	// TokenDecimals is the decimals of the denomination itself, must be in 1..=18
	// for fungible tokens. The native unit is fixed at 18
	TokenDecimals int32 `json:"tokenDecimals" bson:"tokenDecimals"`
	Enabled       bool  `json:"enabled" bson:"enabled"`
}

func (d *Denom) ToId() *DenomId {
	return &DenomId{
		ChainId: d.ChainId,
		Address: d.Address,
	}
}

func (d *Denom) IsNative() bool {
	return d.Address.IsNativeDenom()
}

type DenomPatchable struct {
	PriceFeedAddress *Address `bson:"priceFeedAddress,omitempty"`
	TokenDecimals    *int32   `bson:"tokenDecimals,omitempty"`
	Enabled          *bool    `bson:"enabled,omitempty"`
}

type DenomFindAllOptions struct {
	ChainId *ChainId
	Enabled *bool
}

type DenomFindAllOptionsFunc func(*DenomFindAllOptions) error

func GetDenomFindAllOptions(opts ...DenomFindAllOptionsFunc) (DenomFindAllOptions, error) {
	res := DenomFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func DenomWithChainId(chainId ChainId) DenomFindAllOptionsFunc {
	return func(options *DenomFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func DenomWithEnabled(enabled bool) DenomFindAllOptionsFunc {
	return func(options *DenomFindAllOptions) error {
		options.Enabled = &enabled
		return nil
	}
}

type DenomRepo interface {
	FindOne(ctx.Ctx, ChainId, Address) (*Denom, error)
	FindAll(c ctx.Ctx, opts ...DenomFindAllOptionsFunc) ([]*Denom, error)
	Create(ctx.Ctx, *Denom) error
	Upsert(ctx.Ctx, *Denom) error
	Patch(c ctx.Ctx, id DenomId, patchable DenomPatchable) error
}

// DenomUsecase is the injected configuration surface consumed by the
// oracle adapter and the normalizer. Reads are snapshotted per call,
// a caller holding a *Denom keeps the exact configuration it read
type DenomUsecase interface {
	Get(c ctx.Ctx, chainId ChainId, address Address) (*Denom, error)
	List(c ctx.Ctx, opts ...DenomFindAllOptionsFunc) ([]*Denom, error)
	Register(c ctx.Ctx, denom *Denom) error
	SetPriceFeed(c ctx.Ctx, id DenomId, feed Address) error
	SetDecimals(c ctx.Ctx, id DenomId, tokenDecimals int32) error
	SetEnabled(c ctx.Ctx, id DenomId, enabled bool) error
}
