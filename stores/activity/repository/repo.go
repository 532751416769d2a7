package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/activity"
	"github.com/gavelhouse/goapi/service/query"
)

func makeFindQuery(optFns ...activity.FindOptions) (bson.M, error) {
	opts, err := activity.GetFindOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Account != nil {
		qry["$or"] = bson.A{
			bson.M{"account": *opts.Account},
			bson.M{"to": *opts.Account},
		}
	}

	if opts.TimeGTE != nil {
		qry["time"] = bson.M{"$gte": *opts.TimeGTE}
	}

	if len(opts.Types) > 1 {
		qry["type"] = bson.M{"$in": opts.Types}
	} else if len(opts.Types) > 0 {
		qry["type"] = opts.Types[0]
	}

	return qry, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) activity.Repo {
	return &impl{q: q}
}

func (im *impl) Insert(c bCtx.Ctx, a *activity.Activity) error {
	if err := im.q.Insert(c, domain.TableActivities, a); err != nil {
		c.WithFields(log.Fields{
			"activity": a,
			"err":      err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...activity.FindOptions) ([]*activity.Activity, error) {
	opts, err := activity.GetFindOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("activity.GetFindOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}

	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*activity.Activity{}

	err = im.q.Search(c, domain.TableActivities, offset, limit, "-time", qry, &res)

	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("query", qry).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}
