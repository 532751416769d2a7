package oracle

import (
	"math/big"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

// MaxPriceAge is how old a feed round may be before it is rejected as
// stale, measured against updatedAt
const MaxPriceAge = 3600

// Price is a positive feed answer together with the feed's own decimal
// precision
type Price struct {
	Value     *big.Int
	Precision uint8
}

// RoundData mirrors one latestRoundData answer
type RoundData struct {
	RoundId         *big.Int
	Answer          *big.Int
	StartedAt       *big.Int
	UpdatedAt       *big.Int
	AnsweredInRound *big.Int
}

// Adapter reads prices from on chain feeds. GetPrice rejects
// non-positive answers, rounds answered before they were asked and
// rounds older than MaxPriceAge. GetPriceRelaxed only rejects
// non-positive answers. Both hit the feed on every call, answers are
// never cached
type Adapter interface {
	GetPrice(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*Price, error)
	GetPriceRelaxed(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*Price, error)
	GetDecimals(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (uint8, error)
}
