package usecase

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	redisSvc "github.com/gavelhouse/goapi/service/redis"
	mockRedis "github.com/gavelhouse/goapi/service/redis/mocks"
)

var (
	mockCtx = bCtx.Background()

	signatureMsg = "Welcome to GavelHouse!\n\nNonce: %s"
)

// stub1271 answers every contract wallet query with a fixed verdict
type stub1271 struct {
	valid bool
	err   error
}

func (s *stub1271) IsValidSignature(_ bCtx.Ctx, _ domain.ChainId, _ string, _ common.Hash, _ []byte) (bool, error) {
	return s.valid, s.err
}

type testsuite struct {
	suite.Suite
	mockRedis *mockRedis.Service
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRedis = &mockRedis.Service{}
}

func (t *testsuite) subject(wallet *stub1271) domain.AuthUsecase {
	return New(&AuthUsecaseCfg{
		JwtSecret:    "jwt-secret",
		SignatureMsg: signatureMsg,
		Redis:        t.mockRedis,
		Erc1271:      wallet,
	})
}

func (t *testsuite) TestGenerateNonce() {
	t.mockRedis.On("Set", mockCtx, "nonce:0xb732d1f0635053bc0e5f1106518a7995aad583cd", mock.Anything, 10*time.Minute).
		Return(nil).Once()

	u := t.subject(&stub1271{})
	nonce, err := u.GenerateNonce(mockCtx, "0xB732d1f0635053bc0e5F1106518a7995aAd583cd")
	t.NoError(err)
	t.GreaterOrEqual(nonce, int32(0))
	t.mockRedis.AssertExpectations(t.T())
}

func (t *testsuite) TestSignAndParseToken() {
	key, err := crypto.GenerateKey()
	t.NoError(err)
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	t.NoError(err)

	t.mockRedis.On("Get", mockCtx, "nonce:"+address).Return([]byte("12345"), nil).Once()
	t.mockRedis.On("Del", mockCtx, "nonce:"+address).Return(1, nil).Once()

	u := t.subject(&stub1271{})
	tkn, err := u.SignToken(mockCtx, 1, domain.Address(address), hexutil.Encode(sig))
	t.NoError(err)
	t.NotEmpty(tkn)

	ads, err := u.ParseToken(mockCtx, tkn)
	t.NoError(err)
	t.Equal(address, ads)
	t.mockRedis.AssertExpectations(t.T())
}

func (t *testsuite) TestSignTokenNoNonce() {
	t.mockRedis.On("Get", mockCtx, "nonce:0xb732d1f0635053bc0e5f1106518a7995aad583cd").
		Return(nil, redisSvc.ErrNotFound).Once()

	u := t.subject(&stub1271{})
	_, err := u.SignToken(mockCtx, 1, "0xb732d1f0635053bc0e5f1106518a7995aad583cd", "0x00")
	t.ErrorIs(err, domain.ErrInvalidNonce)
	t.mockRedis.AssertNotCalled(t.T(), "Del")
}

// signing with a different key burns the nonce and yields no token
func (t *testsuite) TestSignTokenWrongSigner() {
	key, err := crypto.GenerateKey()
	t.NoError(err)
	intruder, err := crypto.GenerateKey()
	t.NoError(err)
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), intruder)
	t.NoError(err)

	t.mockRedis.On("Get", mockCtx, "nonce:"+address).Return([]byte("12345"), nil).Once()
	t.mockRedis.On("Del", mockCtx, "nonce:"+address).Return(1, nil).Once()

	u := t.subject(&stub1271{})
	_, err = u.SignToken(mockCtx, 1, domain.Address(address), hexutil.Encode(sig))
	t.ErrorIs(err, domain.ErrInvalidSignature)
	t.mockRedis.AssertExpectations(t.T())
}

// a contract wallet fails ecdsa recovery but passes through eip-1271
func (t *testsuite) TestSignTokenContractWallet() {
	key, err := crypto.GenerateKey()
	t.NoError(err)
	wallet := "0xac461fdfc10c71861f37fe42589334e021baa1ee"

	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	t.NoError(err)

	t.mockRedis.On("Get", mockCtx, "nonce:"+wallet).Return([]byte("12345"), nil).Once()
	t.mockRedis.On("Del", mockCtx, "nonce:"+wallet).Return(1, nil).Once()

	u := t.subject(&stub1271{valid: true})
	tkn, err := u.SignToken(mockCtx, 1, domain.Address(wallet), hexutil.Encode(sig))
	t.NoError(err)
	t.NotEmpty(tkn)

	ads, err := u.ParseToken(mockCtx, tkn)
	t.NoError(err)
	t.Equal(wallet, ads)
}

func (t *testsuite) TestParseTokenGarbage() {
	u := t.subject(&stub1271{})
	_, err := u.ParseToken(mockCtx, "not-a-jwt")
	t.Error(err)
}

func (t *testsuite) TestParseTokenWrongSecret() {
	other := New(&AuthUsecaseCfg{
		JwtSecret:    "other-secret",
		SignatureMsg: signatureMsg,
		Redis:        t.mockRedis,
		Erc1271:      &stub1271{},
	})

	key, err := crypto.GenerateKey()
	t.NoError(err)
	address := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	t.NoError(err)

	t.mockRedis.On("Get", mockCtx, "nonce:"+address).Return([]byte("12345"), nil).Once()
	t.mockRedis.On("Del", mockCtx, "nonce:"+address).Return(1, nil).Once()

	u := t.subject(&stub1271{})
	tkn, err := u.SignToken(mockCtx, 1, domain.Address(address), hexutil.Encode(sig))
	t.NoError(err)

	_, err = other.ParseToken(mockCtx, tkn)
	t.Error(err)
}
