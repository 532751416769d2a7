package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/delivery"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/middleware"
	authMiddleware "github.com/gavelhouse/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	denom domain.DenomUsecase
}

// New registers the denomination endpoints. The admin surface mutates the
// registry, the public read only exposes enabled denominations
func New(e *echo.Echo, denom domain.DenomUsecase, am *authMiddleware.AuthMiddleware) {
	h := &handler{denom}

	e.GET("/denominations", h.listEnabled, middleware.CacheHttp(30*time.Second))

	e.GET("/admin/denominations", h.list, am.Auth(), am.IsAdmin())

	e.POST("/admin/denominations", h.register, am.Auth(), am.IsAdmin())

	g := e.Group("/admin/denomination/:chainId/:address", am.Auth(), am.IsAdmin(), middleware.IsValidAddress("address"))

	g.PUT("/feed", h.setPriceFeed)

	g.PUT("/decimals", h.setDecimals)

	g.PUT("/enabled", h.setEnabled)
}

func (h *handler) listEnabled(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId *domain.ChainId `query:"chainId"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []domain.DenomFindAllOptionsFunc{domain.DenomWithEnabled(true)}
	if p.ChainId != nil {
		opts = append(opts, domain.DenomWithChainId(*p.ChainId))
	}

	if res, err := h.denom.List(ctx, opts...); err != nil {
		ctx.WithField("err", err).Error("denom.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId *domain.ChainId `query:"chainId"`
		Enabled *bool           `query:"enabled"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []domain.DenomFindAllOptionsFunc{}
	if p.ChainId != nil {
		opts = append(opts, domain.DenomWithChainId(*p.ChainId))
	}
	if p.Enabled != nil {
		opts = append(opts, domain.DenomWithEnabled(*p.Enabled))
	}

	if res, err := h.denom.List(ctx, opts...); err != nil {
		ctx.WithField("err", err).Error("denom.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId          domain.ChainId `json:"chainId" validate:"required,gt=0"`
		Address          domain.Address `json:"address"`
		Name             string         `json:"name" validate:"required"`
		Symbol           string         `json:"symbol" validate:"required"`
		PriceFeedAddress domain.Address `json:"priceFeedAddress"`
		TokenDecimals    int32          `json:"tokenDecimals"`
		Enabled          bool           `json:"enabled"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	denom := &domain.Denom{
		ChainId:          p.ChainId,
		Address:          p.Address,
		Name:             p.Name,
		Symbol:           p.Symbol,
		PriceFeedAddress: p.PriceFeedAddress,
		TokenDecimals:    p.TokenDecimals,
		Enabled:          p.Enabled,
	}

	if err := h.denom.Register(ctx, denom); err != nil {
		switch err {
		case domain.ErrInvalidChainId, domain.ErrBadParamInput, domain.ErrInvalidPrecision:
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		case domain.ErrConflict:
			return delivery.MakeJsonResp(c, http.StatusConflict, err)
		case domain.ErrOracleUnavailable, domain.ErrOraclePriceInvalid:
			return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
		default:
			ctx.WithField("err", err).Error("denom.Register failed")
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, denom)
}

func (h *handler) setPriceFeed(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId domain.ChainId `param:"chainId" validate:"required,gt=0"`
		Address domain.Address `param:"address"`
		Feed    domain.Address `json:"feed" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.DenomId{ChainId: p.ChainId, Address: p.Address}

	if err := h.denom.SetPriceFeed(ctx, id, p.Feed); err != nil {
		switch err {
		case domain.ErrBadParamInput:
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		case domain.ErrNotFound:
			return delivery.MakeJsonResp(c, http.StatusNotFound, err)
		case domain.ErrOracleUnavailable, domain.ErrOraclePriceInvalid:
			return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
		default:
			ctx.WithField("err", err).Error("denom.SetPriceFeed failed")
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) setDecimals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId       domain.ChainId `param:"chainId" validate:"required,gt=0"`
		Address       domain.Address `param:"address"`
		TokenDecimals int32          `json:"tokenDecimals" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.DenomId{ChainId: p.ChainId, Address: p.Address}

	if err := h.denom.SetDecimals(ctx, id, p.TokenDecimals); err != nil {
		switch err {
		case domain.ErrInvalidPrecision:
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		case domain.ErrNotFound:
			return delivery.MakeJsonResp(c, http.StatusNotFound, err)
		default:
			ctx.WithField("err", err).Error("denom.SetDecimals failed")
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) setEnabled(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId domain.ChainId `param:"chainId" validate:"required,gt=0"`
		Address domain.Address `param:"address"`
		Enabled *bool          `json:"enabled" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := domain.DenomId{ChainId: p.ChainId, Address: p.Address}

	if err := h.denom.SetEnabled(ctx, id, *p.Enabled); err != nil {
		if err == domain.ErrNotFound {
			return delivery.MakeJsonResp(c, http.StatusNotFound, err)
		}
		ctx.WithField("err", err).Error("denom.SetEnabled failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
