package listing

import (
	"github.com/gavelhouse/goapi/domain"
)

// StrategyVersion tags the bidding rules a listing was created under.
// A listing keeps its version for life, upgrading the engine means new
// listings get a new version while in-flight auctions are untouched
type StrategyVersion string

const (
	// StrategyOracleReserveV1 is the oracle-normalized design: full round
	// and freshness validation on every price read, no platform fee
	StrategyOracleReserveV1 StrategyVersion = "oracle_reserve_v1"
	// StrategyFlatFeeV1 is the simpler design: price sign validation only,
	// flat percentage fee taken from the winning amount at settlement
	StrategyFlatFeeV1 StrategyVersion = "flat_fee_v1"
)

// Strategy is an immutable behavior table resolved from a version tag
type Strategy struct {
	Version StrategyVersion
	// FeeRateBps is taken from the winning amount at settlement, out of 10000
	FeeRateBps int32
	// StrictOracle requires round consistency and freshness on every
	// price read, not just a positive answer
	StrictOracle bool
}

var strategies = map[StrategyVersion]Strategy{
	StrategyOracleReserveV1: {
		Version:      StrategyOracleReserveV1,
		FeeRateBps:   0,
		StrictOracle: true,
	},
	StrategyFlatFeeV1: {
		Version:      StrategyFlatFeeV1,
		FeeRateBps:   250,
		StrictOracle: false,
	},
}

// GetStrategy resolves a version tag, empty resolves to the default
// oracle reserve strategy
func GetStrategy(version StrategyVersion) (Strategy, error) {
	if version == "" {
		return strategies[StrategyOracleReserveV1], nil
	}
	s, ok := strategies[version]
	if !ok {
		return Strategy{}, domain.ErrInvalidStrategy
	}
	return s, nil
}
