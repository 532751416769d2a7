package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/ethereum"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/keys"
	"github.com/gavelhouse/goapi/service/chain/contract"
	redisSvc "github.com/gavelhouse/goapi/service/redis"
)

const (
	nonceRange = int32(9999999)
	// nonceTtl bounds the window between fetching a nonce and signing it
	nonceTtl = 10 * time.Minute

	tokenTtl = 24 * time.Hour
)

type AuthUsecaseCfg struct {
	JwtSecret    string
	SignatureMsg string
	Redis        redisSvc.Service
	Erc1271      contract.Erc1271Contract
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	redis        redisSvc.Service
	erc1271      contract.Erc1271Contract
}

func New(cfg *AuthUsecaseCfg) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		redis:        cfg.Redis,
		erc1271:      cfg.Erc1271,
	}
}

func (im *impl) GenerateNonce(c bCtx.Ctx, address domain.Address) (int32, error) {
	nonce := rand.Int31n(nonceRange)
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
	if err := im.redis.Set(c, key, []byte(strconv.Itoa(int(nonce))), nonceTtl); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("redis.Set failed")
		return 0, err
	}
	return nonce, nil
}

func (im *impl) SignToken(c bCtx.Ctx, chainId domain.ChainId, address domain.Address, signature string) (string, error) {
	key := keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
	nonce, err := im.redis.Get(c, key)
	if err == redisSvc.ErrNotFound {
		return "", domain.ErrInvalidNonce
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("redis.Get failed")
		return "", err
	}

	// a nonce is burned by the first signing attempt, valid or not
	defer func() {
		if _, err := im.redis.Del(c, key); err != nil {
			c.WithField("err", err).Warn("redis.Del failed")
		}
	}()

	msg := []byte(fmt.Sprintf(im.signatureMsg, string(nonce)))
	if err := im.verifySignature(c, chainId, address, msg, signature); err != nil {
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

// verifySignature accepts either a plain ecdsa signature over the
// personal-sign hash of msg or an eip-1271 approval from a contract wallet
func (im *impl) verifySignature(c bCtx.Ctx, chainId domain.ChainId, address domain.Address, msg []byte, signature string) error {
	valid, err := ethereum.ValidateMsgSignature(msg, signature, address.ToLowerStr())
	if err == nil && valid {
		return nil
	}
	c.WithFields(log.Fields{
		"err":     err,
		"valid":   valid,
		"address": address,
	}).Warn("validating eoa signature failed")

	hash := accounts.TextHash(msg)
	valid, err = im.erc1271.IsValidSignature(c, chainId, address.ToLowerStr(), common.BytesToHash(hash), common.FromHex(signature))
	if err == nil && valid {
		return nil
	}
	c.WithFields(log.Fields{
		"err":     err,
		"valid":   valid,
		"address": address,
	}).Warn("validating eip1271 signature failed")

	return domain.ErrInvalidSignature
}

func (im *impl) ParseToken(c bCtx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}
