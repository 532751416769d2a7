package pricefeed

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gavelhouse/goapi/base/abi"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/oracle"
	"github.com/gavelhouse/goapi/service/chain"
)

type impl struct {
	chainClient chain.Client
}

func New(chainClient chain.Client) Pricefeed {
	return &impl{
		chainClient: chainClient,
	}
}

func (im *impl) GetLatestRoundData(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*oracle.RoundData, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, chainId, feedAddr, abi.PriceFeedABI, "latestRoundData")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call failed")
		return nil, err
	}

	return &oracle.RoundData{
		RoundId:         res[0].(*big.Int),
		Answer:          res[1].(*big.Int),
		StartedAt:       res[2].(*big.Int),
		UpdatedAt:       res[3].(*big.Int),
		AnsweredInRound: res[4].(*big.Int),
	}, nil
}

func (im *impl) GetDecimals(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (uint8, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, chainId, feedAddr, abi.PriceFeedABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call failed")
		return 0, err
	}

	return res[0].(uint8), nil
}
