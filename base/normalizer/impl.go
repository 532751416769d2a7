package normalizer

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
)

// maxValueBits caps every intermediate product, values that need more
// bits fail instead of wrapping
const maxValueBits = 256

type NormalizerCfg struct {
	Denom  domain.DenomUsecase
	Oracle oracle.Adapter
}

type impl struct {
	denom  domain.DenomUsecase
	oracle oracle.Adapter
}

func New(cfg *NormalizerCfg) Normalizer {
	return &impl{
		denom:  cfg.Denom,
		oracle: cfg.Oracle,
	}
}

func (im *impl) Normalize(c bCtx.Ctx, chainId domain.ChainId, denom domain.Address, rawAmount *big.Int, strict bool) (*big.Int, error) {
	if rawAmount == nil || rawAmount.Sign() <= 0 {
		return nil, domain.ErrAmountZero
	}

	d, err := im.denom.Get(c, chainId, denom)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownDenomination
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"denom":   denom,
		}).Error("denom.Get failed")
		return nil, err
	}

	price, err := im.getPrice(c, d, strict)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"denom":   denom,
			"strict":  strict,
		}).Error("getPrice failed")
		return nil, err
	}

	if int32(price.Precision) > domain.UnitDecimals {
		return nil, domain.ErrInvalidPrecision
	}

	// scale the answer up to the 18 decimal unit of account
	scale := new(big.Int).Exp(domain.Big10, big.NewInt(int64(domain.UnitDecimals-int32(price.Precision))), nil)
	price18, err := checkedMul(price.Value, scale)
	if err != nil {
		return nil, err
	}

	decimals := int32(domain.UnitDecimals)
	if !d.IsNative() {
		if d.TokenDecimals < 1 || d.TokenDecimals > domain.UnitDecimals {
			return nil, domain.ErrInvalidPrecision
		}
		decimals = d.TokenDecimals
	}

	product, err := checkedMul(rawAmount, price18)
	if err != nil {
		return nil, err
	}

	div := new(big.Int).Exp(domain.Big10, big.NewInt(int64(decimals)), nil)
	return new(big.Int).Quo(product, div), nil
}

func (im *impl) ToDisplay(value *big.Int) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -domain.UnitDecimals)
}

func (im *impl) getPrice(c bCtx.Ctx, d *domain.Denom, strict bool) (*oracle.Price, error) {
	if strict {
		return im.oracle.GetPrice(c, d.ChainId, d.PriceFeedAddress)
	}
	return im.oracle.GetPriceRelaxed(c, d.ChainId, d.PriceFeedAddress)
}

func checkedMul(a, b *big.Int) (*big.Int, error) {
	res := new(big.Int).Mul(a, b)
	if res.BitLen() > maxValueBits {
		return nil, domain.ErrArithmeticOverflow
	}
	return res, nil
}
