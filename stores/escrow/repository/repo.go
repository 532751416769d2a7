package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/escrow"
	"github.com/gavelhouse/goapi/service/query"
)

func makeFindQuery(optFns ...escrow.FindAllOptionsFunc) (bson.M, error) {
	opts, err := escrow.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}

	if opts.Bidder != nil {
		qry["bidder"] = *opts.Bidder
	}

	if opts.State != nil {
		qry["state"] = *opts.State
	}

	return qry, nil
}

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) escrow.Repo {
	return &repo{q: q}
}

func (r *repo) FindAll(c bCtx.Ctx, optFns ...escrow.FindAllOptionsFunc) ([]*escrow.Deposit, error) {
	opts, err := escrow.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("escrow.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)

	if opts.Offset != nil {
		offset = *opts.Offset
	}

	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []*escrow.Deposit{}

	if err := r.q.SearchNSorts(c, domain.TableEscrowDeposits, int(offset), int(limit), []string{"-createdAt", "_id"}, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}

	return res, nil
}

func (r *repo) FindOne(c bCtx.Ctx, depositId string) (*escrow.Deposit, error) {
	deposit := &escrow.Deposit{}

	if err := r.q.FindOne(c, domain.TableEscrowDeposits, bson.M{"depositId": depositId}, deposit); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"depositId": depositId,
		}).Error("q.FindOne failed")
		return nil, err
	}

	return deposit, nil
}

func (r *repo) Create(c bCtx.Ctx, deposit *escrow.Deposit) error {
	if err := r.q.Insert(c, domain.TableEscrowDeposits, deposit); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"deposit": deposit,
		}).Error("q.Insert failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repo) Update(c bCtx.Ctx, depositId string, patchable escrow.DepositPatchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := r.q.Patch(c, domain.TableEscrowDeposits, bson.M{"depositId": depositId}, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"depositId": depositId,
		}).Error("q.Patch failed")
		return err
	}

	return nil
}
