package chain

import (
	"github.com/gavelhouse/goapi/domain"
)

var (
	chainIdToText = map[domain.ChainId]string{
		domain.ChainId(1):   "ethereum",
		domain.ChainId(3):   "ropsten",
		domain.ChainId(5):   "goerli",
		domain.ChainId(56):  "binance-smart-chain",
		domain.ChainId(97):  "binance-smart-chain-testnet",
		domain.ChainId(250): "fantom",
	}
)

func GetChainDisplayName(chainId domain.ChainId) (string, error) {
	if val, ok := chainIdToText[chainId]; !ok {
		return "", domain.ErrNotFound
	} else {
		return val, nil
	}
}
