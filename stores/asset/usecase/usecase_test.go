package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/asset"
	mockAsset "github.com/gavelhouse/goapi/domain/asset/mocks"
)

var (
	mockCtx = bCtx.Background()
)

type mockChainService struct {
	is721  bool
	holder string
	err    error
}

func (m *mockChainService) Supports721Interface(ctx bCtx.Ctx, chainId domain.ChainId, addr string) (bool, error) {
	return m.is721, nil
}

func (m *mockChainService) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int) (string, error) {
	return m.holder, m.err
}

type testsuite struct {
	suite.Suite
	mockRepo *mockAsset.Repo
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.mockRepo = &mockAsset.Repo{}
}

func (t *testsuite) subject(chain *mockChainService) *impl {
	return &impl{
		repo:   t.mockRepo,
		erc721: chain,
	}
}

func (t *testsuite) TestTake() {
	im := t.subject(&mockChainService{is721: true, holder: "0xSeLLeR"})

	t.mockRepo.On("Create", mockCtx, mock.MatchedBy(func(v *asset.Vault) bool {
		return v.ChainId == domain.ChainId(1) &&
			v.Contract == domain.Address("0xcontract") &&
			v.TokenId == domain.TokenId("42") &&
			v.Owner == domain.Address("0xseller") &&
			v.ListingId == domain.ListingId("listing-1")
	})).Return(nil).Once()

	t.NoError(im.Take(mockCtx, 1, "0xContract", "42", "0xseller", "listing-1"))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestTakeNotOwner() {
	im := t.subject(&mockChainService{is721: true, holder: "0xsomeoneelse"})

	t.ErrorIs(im.Take(mockCtx, 1, "0xcontract", "42", "0xseller", "listing-1"), domain.ErrInvalidAsset)
	t.mockRepo.AssertNotCalled(t.T(), "Create")
}

func (t *testsuite) TestTakeNot721() {
	im := t.subject(&mockChainService{is721: false})

	t.ErrorIs(im.Take(mockCtx, 1, "0xcontract", "42", "0xseller", "listing-1"), domain.ErrInvalidAsset)
	t.mockRepo.AssertNotCalled(t.T(), "Create")
}

func (t *testsuite) TestTakeOwnerOfReverts() {
	im := t.subject(&mockChainService{is721: true, err: errors.New("execution reverted")})

	t.ErrorIs(im.Take(mockCtx, 1, "0xcontract", "42", "0xseller", "listing-1"), domain.ErrInvalidAsset)
	t.mockRepo.AssertNotCalled(t.T(), "Create")
}

func (t *testsuite) TestReturn() {
	im := t.subject(&mockChainService{})

	t.mockRepo.On("FindOne", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42")).
		Return(&asset.Vault{ChainId: 1, Contract: "0xcontract", TokenId: "42"}, nil).Once()
	t.mockRepo.On("Delete", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42")).
		Return(nil).Once()

	t.NoError(im.Return(mockCtx, 1, "0xcontract", "42", "0xwinner"))
	t.mockRepo.AssertExpectations(t.T())
}

func (t *testsuite) TestReturnNotInCustody() {
	im := t.subject(&mockChainService{})

	t.mockRepo.On("FindOne", mockCtx, domain.ChainId(1), domain.Address("0xcontract"), domain.TokenId("42")).
		Return(nil, domain.ErrNotFound).Once()

	t.ErrorIs(im.Return(mockCtx, 1, "0xcontract", "42", "0xwinner"), domain.ErrNotFound)
	t.mockRepo.AssertNotCalled(t.T(), "Delete")
}
