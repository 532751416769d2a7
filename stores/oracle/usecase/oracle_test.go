package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
	mockPricefeed "github.com/gavelhouse/goapi/service/pricefeed/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	mockPricefeed *mockPricefeed.Pricefeed
	subject       *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockPricefeed = &mockPricefeed.Pricefeed{}
	t.subject = &impl{
		pricefeed: t.mockPricefeed,
	}
}

func freshRound() *oracle.RoundData {
	return &oracle.RoundData{
		RoundId:         big.NewInt(100),
		Answer:          big.NewInt(200000000000),
		StartedAt:       big.NewInt(time.Now().Unix() - 120),
		UpdatedAt:       big.NewInt(time.Now().Unix() - 60),
		AnsweredInRound: big.NewInt(100),
	}
}

func (t *testsuite) TestGetPrice() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(freshRound(), nil)
	t.mockPricefeed.
		On("GetDecimals", mockCtx, chainId, feedAddr).
		Return(uint8(8), nil)

	price, err := t.subject.GetPrice(mockCtx, chainId, feedAddr)
	t.NoError(err)
	t.Equal(big.NewInt(200000000000), price.Value)
	t.Equal(uint8(8), price.Precision)
}

func (t *testsuite) TestGetPriceNoFeed() {
	_, err := t.subject.GetPrice(mockCtx, domain.ChainId(1), domain.Address(""))
	t.ErrorIs(err, domain.ErrOracleUnavailable)
	t.mockPricefeed.AssertNotCalled(t.T(), "GetLatestRoundData")
}

func (t *testsuite) TestGetPriceFeedUnreachable() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(nil, errors.New("connection refused"))

	_, err := t.subject.GetPrice(mockCtx, chainId, feedAddr)
	t.ErrorIs(err, domain.ErrOracleUnavailable)
}

func (t *testsuite) TestGetPriceNonPositiveAnswer() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	for _, answer := range []*big.Int{big.NewInt(0), big.NewInt(-1)} {
		t.SetupTest()

		round := freshRound()
		round.Answer = answer
		t.mockPricefeed.
			On("GetLatestRoundData", mockCtx, chainId, feedAddr).
			Return(round, nil)

		_, err := t.subject.GetPrice(mockCtx, chainId, feedAddr)
		t.ErrorIs(err, domain.ErrOraclePriceInvalid)
	}
}

func (t *testsuite) TestGetPriceCarriedOverRound() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	round := freshRound()
	round.RoundId = big.NewInt(100)
	round.AnsweredInRound = big.NewInt(99)
	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(round, nil)

	_, err := t.subject.GetPrice(mockCtx, chainId, feedAddr)
	t.ErrorIs(err, domain.ErrOraclePriceInvalid)
}

func (t *testsuite) TestGetPriceStale() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	round := freshRound()
	round.UpdatedAt = big.NewInt(time.Now().Unix() - oracle.MaxPriceAge - 100)
	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(round, nil)

	_, err := t.subject.GetPrice(mockCtx, chainId, feedAddr)
	t.ErrorIs(err, domain.ErrOracleStale)
}

func (t *testsuite) TestGetPriceRelaxedAcceptsStale() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	round := freshRound()
	round.UpdatedAt = big.NewInt(time.Now().Unix() - oracle.MaxPriceAge - 100)
	round.AnsweredInRound = big.NewInt(99)
	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(round, nil)
	t.mockPricefeed.
		On("GetDecimals", mockCtx, chainId, feedAddr).
		Return(uint8(8), nil)

	price, err := t.subject.GetPriceRelaxed(mockCtx, chainId, feedAddr)
	t.NoError(err)
	t.Equal(big.NewInt(200000000000), price.Value)
}

func (t *testsuite) TestGetPriceRelaxedRejectsNonPositive() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	round := freshRound()
	round.Answer = big.NewInt(0)
	t.mockPricefeed.
		On("GetLatestRoundData", mockCtx, chainId, feedAddr).
		Return(round, nil)

	_, err := t.subject.GetPriceRelaxed(mockCtx, chainId, feedAddr)
	t.ErrorIs(err, domain.ErrOraclePriceInvalid)
}

func (t *testsuite) TestGetDecimals() {
	var (
		chainId  = domain.ChainId(1)
		feedAddr = domain.Address("0xfeed")
	)

	t.mockPricefeed.
		On("GetDecimals", mockCtx, chainId, feedAddr).
		Return(uint8(18), nil)

	decimals, err := t.subject.GetDecimals(mockCtx, chainId, feedAddr)
	t.NoError(err)
	t.Equal(uint8(18), decimals)
}
