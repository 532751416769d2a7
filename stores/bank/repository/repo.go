package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/bank"
	"github.com/gavelhouse/goapi/service/query"
)

func makeFindQuery(optFns ...bank.FindAllOptionsFunc) (bson.M, error) {
	opts, err := bank.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Address != nil {
		qry["address"] = *opts.Address
	}

	if opts.Denom != nil {
		qry["denom"] = *opts.Denom
	}

	return qry, nil
}

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) bank.Repo {
	return &repo{q: q}
}

func (r *repo) FindAll(c bCtx.Ctx, optFns ...bank.FindAllOptionsFunc) ([]*bank.Account, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	res := []*bank.Account{}

	if err := r.q.Search(c, domain.TableBankAccounts, 0, 0, "denom", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (r *repo) FindOne(c bCtx.Ctx, id bank.AccountId) (*bank.Account, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	account := &bank.Account{}

	if err := r.q.FindOne(c, domain.TableBankAccounts, qry, account); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}

	return account, nil
}

func (r *repo) Create(c bCtx.Ctx, account *bank.Account) error {
	if err := r.q.Insert(c, domain.TableBankAccounts, account); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("q.Insert failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repo) Patch(c bCtx.Ctx, id bank.AccountId, patchable bank.AccountPatchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := r.q.Patch(c, domain.TableBankAccounts, selector, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Patch failed")
		return err
	}

	return nil
}
