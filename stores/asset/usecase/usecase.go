package usecase

import (
	"time"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/asset"
	"github.com/gavelhouse/goapi/service/chain/contract"
)

type CustodianCfg struct {
	Repo   asset.Repo
	Erc721 contract.Erc721Contract
}

type impl struct {
	repo   asset.Repo
	erc721 contract.Erc721Contract
}

func New(cfg *CustodianCfg) asset.Custodian {
	return &impl{
		repo:   cfg.Repo,
		erc721: cfg.Erc721,
	}
}

// Take verifies ownership on chain and records custody. The asset stays
// in custody until Return drops the record
func (im *impl) Take(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId, owner domain.Address, id domain.ListingId) error {
	is721, err := im.erc721.Supports721Interface(c, chainId, contract.ToLowerStr())
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
		}).Error("erc721.Supports721Interface failed")
		return err
	}
	if !is721 {
		return domain.ErrInvalidAsset
	}

	tid, err := tokenId.ToBig()
	if err != nil {
		return domain.ErrInvalidAsset
	}

	// ownerOf reverts for tokens that were never minted
	holder, err := im.erc721.OwnerOf(c, chainId, contract.ToLowerStr(), tid)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
		}).Error("erc721.OwnerOf failed")
		return domain.ErrInvalidAsset
	}
	if domain.Address(holder).ToLower() != owner.ToLower() {
		c.WithFields(log.Fields{
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
			"holder":   holder,
			"owner":    owner,
		}).Warn("asset not owned by seller")
		return domain.ErrInvalidAsset
	}

	vault := &asset.Vault{
		ChainId:   chainId,
		Contract:  contract.ToLower(),
		TokenId:   tokenId,
		Owner:     owner.ToLower(),
		ListingId: id,
		CreatedAt: time.Now(),
	}
	if err := im.repo.Create(c, vault); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"vault": vault,
		}).Error("repo.Create failed")
		return err
	}
	return nil
}

func (im *impl) Return(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId, recipient domain.Address) error {
	if _, err := im.repo.FindOne(c, chainId, contract, tokenId); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
		}).Error("repo.FindOne failed")
		return err
	}

	if err := im.repo.Delete(c, chainId, contract, tokenId); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
		}).Error("repo.Delete failed")
		return err
	}

	c.WithFields(log.Fields{
		"chainId":   chainId,
		"contract":  contract,
		"tokenId":   tokenId,
		"recipient": recipient,
	}).Info("asset released from custody")
	return nil
}

func (im *impl) Holding(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) (*asset.Vault, error) {
	return im.repo.FindOne(c, chainId, contract, tokenId)
}
