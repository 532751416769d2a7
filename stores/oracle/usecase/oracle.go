package usecase

import (
	"math/big"
	"time"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
	"github.com/gavelhouse/goapi/service/pricefeed"
)

type impl struct {
	pricefeed pricefeed.Pricefeed
}

func New(pricefeed pricefeed.Pricefeed) oracle.Adapter {
	return &impl{
		pricefeed: pricefeed,
	}
}

func (im *impl) GetPrice(c bCtx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*oracle.Price, error) {
	return im.getPrice(c, chainId, feedAddress, true)
}

func (im *impl) GetPriceRelaxed(c bCtx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*oracle.Price, error) {
	return im.getPrice(c, chainId, feedAddress, false)
}

func (im *impl) GetDecimals(c bCtx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (uint8, error) {
	if feedAddress.IsEmpty() {
		return 0, domain.ErrOracleUnavailable
	}

	decimals, err := im.pricefeed.GetDecimals(c, chainId, feedAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"feed":    feedAddress,
		}).Error("pricefeed.GetDecimals failed")
		return 0, domain.ErrOracleUnavailable
	}
	return decimals, nil
}

// getPrice reads the current round and validates it. Strict reads
// reject carried over rounds and rounds older than oracle.MaxPriceAge,
// relaxed reads only require a positive answer
func (im *impl) getPrice(c bCtx.Ctx, chainId domain.ChainId, feedAddress domain.Address, strict bool) (*oracle.Price, error) {
	if feedAddress.IsEmpty() {
		return nil, domain.ErrOracleUnavailable
	}

	round, err := im.pricefeed.GetLatestRoundData(c, chainId, feedAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"feed":    feedAddress,
		}).Error("pricefeed.GetLatestRoundData failed")
		return nil, domain.ErrOracleUnavailable
	}

	if round.Answer == nil || round.Answer.Sign() <= 0 {
		return nil, domain.ErrOraclePriceInvalid
	}

	if strict {
		// an answer carried over from an earlier round than the one
		// reporting it is not a valid observation
		if round.AnsweredInRound == nil || round.RoundId == nil || round.AnsweredInRound.Cmp(round.RoundId) < 0 {
			return nil, domain.ErrOraclePriceInvalid
		}

		if round.UpdatedAt == nil {
			return nil, domain.ErrOracleStale
		}
		age := new(big.Int).Sub(big.NewInt(time.Now().Unix()), round.UpdatedAt)
		if age.Cmp(big.NewInt(oracle.MaxPriceAge)) > 0 {
			c.WithFields(log.Fields{
				"chainId":   chainId,
				"feed":      feedAddress,
				"updatedAt": round.UpdatedAt,
				"age":       age,
			}).Warn("feed answer is stale")
			return nil, domain.ErrOracleStale
		}
	}

	decimals, err := im.pricefeed.GetDecimals(c, chainId, feedAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"feed":    feedAddress,
		}).Error("pricefeed.GetDecimals failed")
		return nil, domain.ErrOracleUnavailable
	}

	return &oracle.Price{
		Value:     round.Answer,
		Precision: decimals,
	}, nil
}
