package chain

import (
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	eth "github.com/gavelhouse/goapi/base/ethereum"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

const defaultMaxInflight = 8

type ClientCfg struct {
	RpcUrls map[domain.ChainId]string
	// MaxInflight bounds concurrent calls per endpoint, zero means default
	MaxInflight int
}

type Client interface {
	Call(bCtx.Ctx, domain.ChainId, common.Address, abi.ABI, string, ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	clients map[domain.ChainId]*eth.ThrottledClient
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	maxInflight := cfg.MaxInflight
	if maxInflight == 0 {
		maxInflight = defaultMaxInflight
	}
	clients := make(map[domain.ChainId]*eth.ThrottledClient)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = eth.NewThrottledClient(client, maxInflight)
	}
	return &clientImpl{
		clients: clients,
	}, anyerr
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
