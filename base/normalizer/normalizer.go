package normalizer

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

// Normalizer converts raw bid amounts into the 18 decimal unit of
// account. strict selects the oracle validation mode, strict rejects
// stale and round inconsistent answers while relaxed only rejects non
// positive ones. Every call reads the denomination config and the feed
// fresh, nothing is cached, so the same raw amount can normalize to
// different values over time
type Normalizer interface {
	Normalize(c bCtx.Ctx, chainId domain.ChainId, denom domain.Address, rawAmount *big.Int, strict bool) (*big.Int, error)
	ToDisplay(value *big.Int) decimal.Decimal
}
