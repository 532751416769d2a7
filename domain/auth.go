package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/gavelhouse/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

// AuthUsecase issues wallet-bound access tokens. Callers prove control of
// an address by signing a one-time nonce, contract wallets are verified
// through eip-1271
type AuthUsecase interface {
	GenerateNonce(ctx ctx.Ctx, address Address) (int32, error)
	SignToken(ctx ctx.Ctx, chainId ChainId, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
