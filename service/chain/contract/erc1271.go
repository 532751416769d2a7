package contract

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/gavelhouse/goapi/base/abi"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/service/chain"
)

// magicValue is the selector of isValidSignature(bytes32,bytes), EIP-1271
// contracts return it to accept a signature
var magicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

// Erc1271Contract verifies signatures made by contract wallets
type Erc1271Contract interface {
	IsValidSignature(ctx bCtx.Ctx, chainId domain.ChainId, addr string, hash common.Hash, signature []byte) (bool, error)
}

type Erc1271 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc1271(chainService chain.Client) *Erc1271 {
	return &Erc1271{
		abi:          baseabi.ERC1271ABI,
		chainService: chainService,
	}
}

func (e *Erc1271) IsValidSignature(ctx bCtx.Ctx, chainId domain.ChainId, addr string, hash common.Hash, signature []byte) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), e.abi, "isValidSignature", hash, signature)
	if err != nil {
		return false, err
	}
	return unpacked[0].([4]byte) == magicValue, nil
}
