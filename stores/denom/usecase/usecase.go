package usecase

import (
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/ptr"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
)

type DenomUsecaseCfg struct {
	Repo   domain.DenomRepo
	Oracle oracle.Adapter
}

type impl struct {
	repo   domain.DenomRepo
	oracle oracle.Adapter
}

func New(cfg *DenomUsecaseCfg) domain.DenomUsecase {
	return &impl{
		repo:   cfg.Repo,
		oracle: cfg.Oracle,
	}
}

// Get returns the denomination whether or not it is enabled. Disabled
// denominations stop new listings, bids on existing listings still
// need the configuration
func (im *impl) Get(c bCtx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.Denom, error) {
	return im.repo.FindOne(c, chainId, address)
}

func (im *impl) List(c bCtx.Ctx, opts ...domain.DenomFindAllOptionsFunc) ([]*domain.Denom, error) {
	return im.repo.FindAll(c, opts...)
}

func (im *impl) Register(c bCtx.Ctx, denom *domain.Denom) error {
	if denom.ChainId <= 0 {
		return domain.ErrInvalidChainId
	}
	if len(denom.Symbol) == 0 {
		return domain.ErrBadParamInput
	}

	if denom.IsNative() {
		// the native unit always carries the unit of account scale
		denom.Address = domain.EmptyAddress
		denom.TokenDecimals = domain.UnitDecimals
	} else if denom.TokenDecimals < 1 || denom.TokenDecimals > domain.UnitDecimals {
		return domain.ErrInvalidPrecision
	}

	if !denom.PriceFeedAddress.IsEmpty() {
		if err := im.checkFeed(c, denom.ChainId, denom.PriceFeedAddress); err != nil {
			return err
		}
	}

	if err := im.repo.Create(c, denom); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"denom": denom,
		}).Error("repo.Create failed")
		return err
	}
	return nil
}

func (im *impl) SetPriceFeed(c bCtx.Ctx, id domain.DenomId, feed domain.Address) error {
	if feed.IsEmpty() {
		return domain.ErrBadParamInput
	}

	if err := im.checkFeed(c, id.ChainId, feed); err != nil {
		return err
	}

	return im.repo.Patch(c, id, domain.DenomPatchable{
		PriceFeedAddress: &feed,
	})
}

func (im *impl) SetDecimals(c bCtx.Ctx, id domain.DenomId, tokenDecimals int32) error {
	if id.Address.IsNativeDenom() {
		if tokenDecimals != domain.UnitDecimals {
			return domain.ErrInvalidPrecision
		}
	} else if tokenDecimals < 1 || tokenDecimals > domain.UnitDecimals {
		return domain.ErrInvalidPrecision
	}

	return im.repo.Patch(c, id, domain.DenomPatchable{
		TokenDecimals: ptr.Int32(tokenDecimals),
	})
}

func (im *impl) SetEnabled(c bCtx.Ctx, id domain.DenomId, enabled bool) error {
	return im.repo.Patch(c, id, domain.DenomPatchable{
		Enabled: ptr.Bool(enabled),
	})
}

// checkFeed reads the feed decimals once so a typoed feed address is
// rejected at configuration time instead of at the first bid
func (im *impl) checkFeed(c bCtx.Ctx, chainId domain.ChainId, feed domain.Address) error {
	if _, err := im.oracle.GetDecimals(c, chainId, feed); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"feed":    feed,
		}).Error("oracle.GetDecimals failed")
		return err
	}
	return nil
}
