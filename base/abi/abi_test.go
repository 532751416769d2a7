package abi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParsedMethods(t *testing.T) {
	req := require.New(t)

	// the EIP-1271 magic return value is the selector of isValidSignature
	m, ok := ERC1271ABI.Methods["isValidSignature"]
	req.True(ok)
	req.Equal(common.Hex2Bytes("1626ba7e"), m.ID)

	for _, name := range []string{"supportsInterface", "ownerOf"} {
		_, ok := ERC721TokenABI.Methods[name]
		req.True(ok, name)
	}

	for _, name := range []string{"decimals", "latestRoundData"} {
		_, ok := PriceFeedABI.Methods[name]
		req.True(ok, name)
	}
}
