package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

var (
	Big0  = big.NewInt(0)
	Big1  = big.NewInt(1)
	Big10 = big.NewInt(10)
)

// UnitDecimals is the fraction digits of the unit of account. Every bid is
// normalized into this scale before comparison
const UnitDecimals = 18

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// IsNativeDenom reports whether the address denotes the native value unit.
// The native unit is registered under the zero address
func (a Address) IsNativeDenom() bool {
	return a.IsEmpty() || a.Equals(EmptyAddress)
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ToBig parses the decimal token id for contract calls
func (i TokenId) ToBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid token id %s", i)
	}
	return id, nil
}

// ListingId identifies one auction instance
type ListingId string

func (l ListingId) String() string {
	return string(l)
}

// ToBig parses a base 10 amount string as stored in mongo
func ToBig(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}
