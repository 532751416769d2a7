package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/gavelhouse/goapi/base/abi"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/service/chain"
)

// erc721InterfaceId is the ERC-165 identifier of the ERC-721 interface
var erc721InterfaceId = [4]byte{0x80, 0xac, 0x58, 0xcd}

// Erc721Contract exposes the token reads custody verification relies on
type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx, chainId domain.ChainId, addr string) (bool, error)
	OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error)
}

type Erc721 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc721(chainService chain.Client) *Erc721 {
	return &Erc721{
		abi:          baseabi.ERC721TokenABI,
		chainService: chainService,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, chainId domain.ChainId, addr string) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), e.abi, "supportsInterface", erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), e.abi, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(common.Address).String(), nil
}
