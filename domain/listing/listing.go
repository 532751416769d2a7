package listing

import (
	"math/big"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

// Status is the lifecycle state of a listing. Ended and canceled are
// terminal, a terminal listing is never mutated again
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
	StatusCanceled Status = "canceled"
)

func (s Status) IsTerminal() bool {
	return s == StatusEnded || s == StatusCanceled
}

// AssetId is the asset reference a listing is bound to
type AssetId struct {
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	AssetContract domain.Address `json:"assetContract" bson:"assetContract"`
	TokenId       domain.TokenId `json:"tokenId" bson:"tokenId"`
}

// Listing is one auction instance. Amounts are stored as base 10 strings,
// HighestBid in raw denom units, MinimumValue in the unit of account
type Listing struct {
	ListingId     domain.ListingId `json:"listingId" bson:"listingId"`
	ChainId       domain.ChainId   `json:"chainId" bson:"chainId"`
	AssetContract domain.Address   `json:"assetContract" bson:"assetContract"`
	TokenId       domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Seller        domain.Address   `json:"seller" bson:"seller"`
	// Denom of every bid on this listing, EmptyAddress for the native unit
	Denom     domain.Address `json:"denom" bson:"denom"`
	StartTime time.Time      `json:"startTime" bson:"startTime"`
	EndTime   time.Time      `json:"endTime" bson:"endTime"`
	// MinimumValue is the reserve in the 18 decimals unit of account
	MinimumValue  string          `json:"minimumValue" bson:"minimumValue"`
	HighestBid    string          `json:"highestBid" bson:"highestBid"`
	HighestBidder domain.Address  `json:"highestBidder" bson:"highestBidder"`
	BidCount      int32           `json:"bidCount" bson:"bidCount"`
	Status        Status          `json:"status" bson:"status"`
	Strategy      StrategyVersion `json:"strategy" bson:"strategy"`
	// FeeRateBps and FeeRecipient are snapshotted from the strategy at
	// creation time so later strategy changes never touch live auctions
	FeeRateBps   int32          `json:"feeRateBps" bson:"feeRateBps"`
	FeeRecipient domain.Address `json:"feeRecipient" bson:"feeRecipient"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
	// InProgress reports a mutating operation currently holding this
	// listing's lock. Derived at read time, never stored
	InProgress bool `json:"inProgress" bson:"-"`
}

func (l *Listing) ToAssetId() AssetId {
	return AssetId{
		ChainId:       l.ChainId,
		AssetContract: l.AssetContract,
		TokenId:       l.TokenId,
	}
}

func (l *Listing) HasLeader() bool {
	return !l.HighestBidder.IsEmpty()
}

type Patchable struct {
	Status        *Status         `bson:"status,omitempty"`
	HighestBid    *string         `bson:"highestBid,omitempty"`
	HighestBidder *domain.Address `bson:"highestBidder,omitempty"`
	BidCount      *int32          `bson:"bidCount,omitempty"`
	UpdatedAt     *time.Time      `bson:"updatedAt,omitempty"`
}

// CreateListingPayload carries everything needed to open an auction.
// StartTime zero means start immediately
type CreateListingPayload struct {
	ChainId       domain.ChainId  `json:"chainId"`
	AssetContract domain.Address  `json:"assetContract"`
	TokenId       domain.TokenId  `json:"tokenId"`
	Seller        domain.Address  `json:"seller"`
	Denom         domain.Address  `json:"denom"`
	StartTime     time.Time       `json:"startTime"`
	Duration      time.Duration   `json:"duration"`
	MinimumValue  *big.Int        `json:"minimumValue"`
	Strategy      StrategyVersion `json:"strategy"`
}

// BidReceipt is the bid-accepted signal payload
type BidReceipt struct {
	ListingId       domain.ListingId `json:"listingId"`
	Bidder          domain.Address   `json:"bidder"`
	RawAmount       string           `json:"rawAmount"`
	NormalizedValue string           `json:"normalizedValue"`
	Denom           domain.Address   `json:"denom"`
	BidCount        int32            `json:"bidCount"`
}

// SettleOutcome is the settled signal payload. Winner is empty and
// Amount zero when the auction ended without bids
type SettleOutcome struct {
	ListingId domain.ListingId `json:"listingId"`
	Winner    domain.Address   `json:"winner"`
	Seller    domain.Address   `json:"seller"`
	Amount    string           `json:"amount"`
	FeeAmount string           `json:"feeAmount"`
	Denom     domain.Address   `json:"denom"`
}

type FindAllOptions struct {
	ChainId       *domain.ChainId
	Seller        *domain.Address
	AssetId       *AssetId
	Denom         *domain.Address
	Status        *Status
	Statuses      []Status
	EndTimeLT     *time.Time
	StartTimeLTE  *time.Time
	Offset        *int32
	Limit         *int32
	SortByCreated *domain.SortDir
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithAssetId(id AssetId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		id.AssetContract = id.AssetContract.ToLower()
		options.AssetId = &id
		return nil
	}
}

func WithDenom(denom domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Denom = denom.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Statuses = statuses
		return nil
	}
}

func WithEndTimeLT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndTimeLT = &t
		return nil
	}
}

func WithStartTimeLTE(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.StartTimeLTE = &t
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSortByCreated(dir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortByCreated = &dir
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	Create(c ctx.Ctx, listing *Listing) error
	Update(c ctx.Ctx, id domain.ListingId, patchable Patchable) error
	// RecordBid replaces the leader and bumps bidCount in one write,
	// matching only while the listing is still active
	RecordBid(c ctx.Ctx, id domain.ListingId, bid string, bidder domain.Address) error
}

type Usecase interface {
	CreateListing(c ctx.Ctx, payload CreateListingPayload) (*Listing, error)
	PlaceBid(c ctx.Ctx, id domain.ListingId, bidder domain.Address, rawAmount *big.Int) (*BidReceipt, error)
	Settle(c ctx.Ctx, id domain.ListingId) (*SettleOutcome, error)
	Cancel(c ctx.Ctx, id domain.ListingId, caller domain.Address) error
	Activate(c ctx.Ctx, id domain.ListingId) error
	GetInfo(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
}
