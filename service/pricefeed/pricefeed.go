package pricefeed

import (
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
)

// Pricefeed reads chainlink aggregator contracts. Every call goes to
// the chain, answers are never cached so callers always observe the
// current round
type Pricefeed interface {
	GetLatestRoundData(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*oracle.RoundData, error)
	GetDecimals(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (uint8, error)
}
