// Package abi embeds the contract interfaces the api calls on chain.
// Each ABI covers only the methods we invoke, not the full contract.
package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

func mustParse(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
