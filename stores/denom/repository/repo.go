package repository

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/keys"
	"github.com/gavelhouse/goapi/service/cache"
	"github.com/gavelhouse/goapi/service/cache/provider"
	"github.com/gavelhouse/goapi/service/cache/provider/compound"
	"github.com/gavelhouse/goapi/service/cache/provider/primitive"
	redisCache "github.com/gavelhouse/goapi/service/cache/provider/redis"
	"github.com/gavelhouse/goapi/service/query"
	"github.com/gavelhouse/goapi/service/redis"
)

type impl struct {
	query      query.Mongo
	denomCache cache.Service
}

// New creates new denom repo
func New(query query.Mongo, redis redis.Service) domain.DenomRepo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive(32),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &impl{
		query: query,
		denomCache: cache.New(cache.Config{
			Ttl:   time.Hour,
			Pfx:   "denom",
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func cacheKey(chainId domain.ChainId, address domain.Address) string {
	return keys.RedisKey(strconv.Itoa(int(chainId)), address.ToLowerStr())
}

func (im *impl) FindOne(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.Denom, error) {
	res := &domain.Denom{}

	if err := im.denomCache.GetOrLoad(c, cacheKey(chainId, address), res, func() (interface{}, error) {
		return im.findOne(c, chainId, address)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("denomCache.GetOrLoad failed")
		}
		return nil, err
	}

	return res, nil
}

func (im *impl) findOne(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*domain.Denom, error) {
	denom := &domain.Denom{}
	qry := bson.M{
		"chainId": chainId,
		"address": address.ToLower(),
	}
	err := im.query.FindOne(c, domain.TableDenoms, qry, denom)
	if err != nil && err != query.ErrNotFound {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("find denom failed")
	} else if err == query.ErrNotFound {
		err = domain.ErrNotFound
	}
	return denom, err
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...domain.DenomFindAllOptionsFunc) ([]*domain.Denom, error) {
	opts, err := domain.GetDenomFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("domain.GetDenomFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Enabled != nil {
		qry["enabled"] = *opts.Enabled
	}

	res := []*domain.Denom{}

	if err := im.query.Search(c, domain.TableDenoms, 0, 0, "symbol", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Create(c ctx.Ctx, denom *domain.Denom) error {
	denom.Address = denom.Address.ToLower()
	if err := im.query.Insert(c, domain.TableDenoms, denom); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"denom": denom,
		}).Error("insert denom failed")
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (im *impl) Upsert(c ctx.Ctx, denom *domain.Denom) error {
	denom.Address = denom.Address.ToLower()
	selector, err := mongoclient.MakeBsonM(denom.ToId())
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"denom": denom,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.query.Upsert(c, domain.TableDenoms, selector, denom); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"denom": denom,
		}).Error("upsert denom failed")
		return err
	}

	if err := im.denomCache.Del(c, cacheKey(denom.ChainId, denom.Address)); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"denom": denom,
		}).Error("denomCache.Del failed")
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, id domain.DenomId, patchable domain.DenomPatchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	selector := bson.M{
		"chainId": id.ChainId,
		"address": id.Address.ToLower(),
	}

	if err := im.query.Patch(c, domain.TableDenoms, selector, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("patch denom failed")
		return err
	}

	if err := im.denomCache.Del(c, cacheKey(id.ChainId, id.Address)); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("denomCache.Del failed")
	}
	return nil
}
