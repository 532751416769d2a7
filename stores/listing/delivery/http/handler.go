package http

import (
	"math/big"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/delivery"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/activity"
	"github.com/gavelhouse/goapi/domain/listing"
	"github.com/gavelhouse/goapi/middleware"
	authMiddleware "github.com/gavelhouse/goapi/stores/auth/delivery/http/middleware"
)

const (
	defaultPageSize = int32(20)
	maxPageSize     = int32(100)
)

type handler struct {
	listing  listing.Usecase
	activity activity.Usecase
}

func New(e *echo.Echo, lst listing.Usecase, act activity.Usecase, am *authMiddleware.AuthMiddleware) {
	h := &handler{
		listing:  lst,
		activity: act,
	}

	gs := e.Group("/listings")

	gs.POST("", h.create, am.Auth())

	gs.GET("", h.list, middleware.CacheHttp(15*time.Second))

	g := e.Group("/listing/:listingId")

	g.GET("", h.get, middleware.CacheHttp(5*time.Second))

	g.POST("/bids", h.placeBid, am.Auth())

	g.POST("/settle", h.settle)

	g.POST("/cancel", h.cancel, am.Auth())

	g.POST("/activate", h.activate)

	g.GET("/activities", h.getActivities)

	e.GET("/account/:address/activities", h.getAccountActivities, middleware.IsValidAddress("address"))
}

// statusOf maps domain errors onto http statuses, anything unknown is a
// server fault. Not-found mapping lives in MakeJsonResp
func statusOf(err error) int {
	switch err {
	case domain.ErrBadParamInput, domain.ErrInvalidChainId, domain.ErrInvalidAsset,
		domain.ErrInvalidDuration, domain.ErrInvalidMinimumValue, domain.ErrInvalidStrategy,
		domain.ErrUnknownDenomination, domain.ErrAmountZero, domain.ErrInvalidNumberFormat:
		return http.StatusBadRequest
	case domain.ErrSellerCannotBid, domain.ErrNotSeller:
		return http.StatusForbidden
	case domain.ErrListingExists, domain.ErrListingInProgress:
		return http.StatusConflict
	case domain.ErrAuctionNotActive, domain.ErrAuctionNotEnded, domain.ErrCannotCancel,
		domain.ErrNotPending, domain.ErrNotStarted, domain.ErrBidBelowMinimum,
		domain.ErrBidNotHigher, domain.ErrRefundFailed, domain.ErrInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domain.ErrOracleUnavailable, domain.ErrOraclePriceInvalid, domain.ErrOracleStale:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	seller := c.Get("address").(domain.Address)

	type params struct {
		ChainId       domain.ChainId          `json:"chainId" validate:"required"`
		AssetContract domain.Address          `json:"assetContract" validate:"required"`
		TokenId       domain.TokenId          `json:"tokenId" validate:"required"`
		Denom         domain.Address          `json:"denom"`
		StartTime     int64                   `json:"startTime"`
		Duration      int64                   `json:"duration" validate:"required,gt=0"`
		MinimumValue  string                  `json:"minimumValue" validate:"required"`
		Strategy      listing.StrategyVersion `json:"strategy"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	minimum, err := domain.ToBig(p.MinimumValue)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	payload := listing.CreateListingPayload{
		ChainId:       p.ChainId,
		AssetContract: p.AssetContract,
		TokenId:       p.TokenId,
		Seller:        seller,
		Denom:         p.Denom,
		Duration:      time.Duration(p.Duration) * time.Second,
		MinimumValue:  minimum,
		Strategy:      p.Strategy,
	}
	if p.StartTime > 0 {
		payload.StartTime = time.Unix(p.StartTime, 0)
	}

	if l, err := h.listing.CreateListing(ctx, payload); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, l)
	}
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	bidder := c.Get("address").(domain.Address)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
		Amount    string           `json:"amount"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}

	var amount *big.Int
	if p.Amount != "" {
		var err error
		if amount, err = domain.ToBig(p.Amount); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
	}

	if receipt, err := h.listing.PlaceBid(ctx, p.ListingId, bidder, amount); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, receipt)
	}
}

func (h *handler) settle(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if outcome, err := h.listing.Settle(ctx, p.ListingId); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, outcome)
	}
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	caller := c.Get("address").(domain.Address)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.listing.Cancel(ctx, p.ListingId, caller); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) activate(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.listing.Activate(ctx, p.ListingId); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if l, err := h.listing.GetInfo(ctx, p.ListingId); err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, l)
	}
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Offset  int32           `query:"offset"`
		Limit   int32           `query:"limit"`
		ChainId *domain.ChainId `query:"chainId"`
		Seller  *domain.Address `query:"seller"`
		Denom   *domain.Address `query:"denom"`
		Status  *listing.Status `query:"status"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	} else if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	opts := []listing.FindAllOptionsFunc{
		listing.WithPagination(p.Offset, p.Limit),
		listing.WithSortByCreated(domain.SortDirDesc),
	}
	if p.ChainId != nil {
		opts = append(opts, listing.WithChainId(*p.ChainId))
	}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Denom != nil {
		opts = append(opts, listing.WithDenom(*p.Denom))
	}
	if p.Status != nil {
		opts = append(opts, listing.WithStatus(*p.Status))
	}

	items, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	count, err := h.listing.Count(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Items []*listing.Listing `json:"items"`
		Count int                `json:"count"`
	}{
		Items: items,
		Count: count,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		ListingId domain.ListingId `param:"listingId"`
		Offset    int32            `query:"offset"`
		Limit     int32            `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	} else if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}

	if res, err := h.activity.FindAll(ctx,
		activity.WithListingId(p.ListingId),
		activity.WithPagination(p.Offset, p.Limit),
	); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getAccountActivities(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	type params struct {
		Address domain.Address `param:"address"`
		Offset  int32          `query:"offset"`
		Limit   int32          `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	} else if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}

	if res, err := h.activity.FindAll(ctx,
		activity.WithAccount(p.Address),
		activity.WithPagination(p.Offset, p.Limit),
	); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
