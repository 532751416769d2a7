package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/asset"
	"github.com/gavelhouse/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) asset.Repo {
	return &impl{q}
}

func makeVaultSelector(chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) bson.M {
	return bson.M{
		"chainId":  chainId,
		"contract": contract.ToLower(),
		"tokenId":  tokenId,
	}
}

func makeFindQuery(opts asset.FindAllOptions) bson.M {
	qry := bson.M{}
	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}
	if opts.Owner != nil {
		qry["owner"] = *opts.Owner
	}
	return qry
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...asset.FindAllOptionsFunc) ([]*asset.Vault, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("asset.GetFindAllOptions failed")
		return nil, err
	}

	offset := int(0)
	limit := int(0)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*asset.Vault{}
	if err := im.q.Search(c, domain.TableAssets, offset, limit, "-createdAt", makeFindQuery(opts), &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) (*asset.Vault, error) {
	res := &asset.Vault{}
	if err := im.q.FindOne(c, domain.TableAssets, makeVaultSelector(chainId, contract, tokenId), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c bCtx.Ctx, vault *asset.Vault) error {
	if err := im.q.Insert(c, domain.TableAssets, vault); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		c.WithFields(log.Fields{
			"err":   err,
			"vault": vault,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Delete(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address, tokenId domain.TokenId) error {
	if err := im.q.Remove(c, domain.TableAssets, makeVaultSelector(chainId, contract, tokenId)); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"err":      err,
			"chainId":  chainId,
			"contract": contract,
			"tokenId":  tokenId,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
