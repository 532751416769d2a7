package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/delivery"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/bank"
	authMiddleware "github.com/gavelhouse/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	bank bank.Service
}

// New registers the funding endpoints. Deposits and approvals are bound to
// the caller's wallet, only admins can flip the payout block of an account
func New(e *echo.Echo, bank bank.Service, am *authMiddleware.AuthMiddleware) {
	h := &handler{bank}

	g := e.Group("/bank", am.Auth())

	g.GET("/accounts", h.getAccounts)

	g.POST("/deposit", h.deposit)

	g.POST("/approve", h.approve)

	e.POST("/admin/bank/payoutBlocked", h.setPayoutBlocked, am.Auth(), am.IsAdmin())
}

func (h *handler) getAccounts(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := &struct {
		ChainId *domain.ChainId `query:"chainId"`
		Denom   *domain.Address `query:"denom"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []bank.FindAllOptionsFunc{bank.WithAddress(address)}
	if p.ChainId != nil {
		opts = append(opts, bank.WithChainId(*p.ChainId))
	}
	if p.Denom != nil {
		opts = append(opts, bank.WithDenom(*p.Denom))
	}

	if res, err := h.bank.FindAccounts(ctx, opts...); err != nil {
		ctx.WithField("err", err).Error("bank.FindAccounts failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := &struct {
		ChainId domain.ChainId `json:"chainId" validate:"required,gt=0"`
		Denom   domain.Address `json:"denom"`
		Amount  string         `json:"amount" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ToBig(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := bank.AccountId{ChainId: p.ChainId, Address: address.ToLower(), Denom: p.Denom.ToLower()}

	if err := h.bank.Deposit(ctx, id, amount); err != nil {
		if err == domain.ErrBadParamInput {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		ctx.WithField("err", err).Error("bank.Deposit failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := &struct {
		ChainId domain.ChainId `json:"chainId" validate:"required,gt=0"`
		Denom   domain.Address `json:"denom"`
		Amount  string         `json:"amount" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := domain.ToBig(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := bank.AccountId{ChainId: p.ChainId, Address: address.ToLower(), Denom: p.Denom.ToLower()}

	if err := h.bank.Approve(ctx, id, amount); err != nil {
		if err == domain.ErrBadParamInput {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		ctx.WithField("err", err).Error("bank.Approve failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) setPayoutBlocked(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId domain.ChainId `json:"chainId" validate:"required,gt=0"`
		Address domain.Address `json:"address" validate:"required"`
		Denom   domain.Address `json:"denom"`
		Blocked *bool          `json:"blocked" validate:"required"`
	}{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := bank.AccountId{ChainId: p.ChainId, Address: p.Address.ToLower(), Denom: p.Denom.ToLower()}

	if err := h.bank.SetPayoutBlocked(ctx, id, *p.Blocked); err != nil {
		ctx.WithField("err", err).Error("bank.SetPayoutBlocked failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
