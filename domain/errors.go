package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrInvalidSignature    = errors.New("Invalid signature")
	ErrInvalidNonce        = errors.New("invalid or expired nonce")

	// listing creation
	ErrInvalidAsset        = errors.New("invalid asset")
	ErrUnknownDenomination = errors.New("unknown denomination")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidMinimumValue = errors.New("invalid minimum value")
	ErrListingExists       = errors.New("active listing already exists for asset")
	ErrInvalidStrategy     = errors.New("invalid strategy")

	// bidding
	ErrSellerCannotBid = errors.New("seller cannot bid")
	ErrBidBelowMinimum = errors.New("bid below minimum value")
	ErrBidNotHigher    = errors.New("bid not higher than current leader")
	ErrAmountZero      = errors.New("amount is zero")

	// lifecycle
	ErrAuctionNotActive  = errors.New("auction not active")
	ErrAuctionNotEnded   = errors.New("auction not ended")
	ErrNotSeller         = errors.New("caller is not the seller")
	ErrCannotCancel      = errors.New("auction cannot be canceled")
	ErrNotPending        = errors.New("auction not pending")
	ErrNotStarted        = errors.New("auction not started")
	ErrListingInProgress = errors.New("another operation on this listing is in progress")

	// normalization
	ErrInvalidPrecision   = errors.New("invalid denomination precision")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// oracle
	ErrOracleUnavailable  = errors.New("price oracle unavailable")
	ErrOraclePriceInvalid = errors.New("price oracle answer invalid")
	ErrOracleStale        = errors.New("price oracle answer stale")

	// fund movement
	ErrRefundFailed      = errors.New("refund failed")
	ErrReleaseFailed     = errors.New("release failed")
	ErrPayoutRejected    = errors.New("payout rejected by recipient")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
