package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/domain/listing"
	"github.com/gavelhouse/goapi/service/query"
)

func makeFindQuery(optFns ...listing.FindAllOptionsFunc) (bson.M, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Seller != nil {
		qry["seller"] = *opts.Seller
	}

	if opts.AssetId != nil {
		qry["chainId"] = opts.AssetId.ChainId
		qry["assetContract"] = opts.AssetId.AssetContract
		qry["tokenId"] = opts.AssetId.TokenId
	}

	if opts.Denom != nil {
		qry["denom"] = *opts.Denom
	}

	if opts.Status != nil {
		qry["status"] = *opts.Status
	}

	if len(opts.Statuses) > 1 {
		qry["status"] = bson.M{"$in": opts.Statuses}
	} else if len(opts.Statuses) > 0 {
		qry["status"] = opts.Statuses[0]
	}

	if opts.EndTimeLT != nil {
		qry["endTime"] = bson.M{"$lt": *opts.EndTimeLT}
	}

	if opts.StartTimeLTE != nil {
		qry["startTime"] = bson.M{"$lte": *opts.StartTimeLTE}
	}

	return qry, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q}
}

func (im *impl) FindAll(c bCtx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
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

	// _id breaks ties so pages never overlap
	sorts := []string{"-createdAt", "_id"}
	if opts.SortByCreated != nil && *opts.SortByCreated == domain.SortDirAsc {
		sorts = []string{"createdAt", "_id"}
	}

	res := []*listing.Listing{}

	if err := im.q.SearchNSorts(c, domain.TableListings, offset, limit, sorts, qry, &res); err != nil {
		c.WithField("err", err).WithField("query", qry).Error("q.SearchNSorts failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c bCtx.Ctx, optFns ...listing.FindAllOptionsFunc) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	count, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}

	return count, nil
}

func (im *impl) FindOne(c bCtx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{"listingId": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c bCtx.Ctx, l *listing.Listing) error {
	if err := im.q.Insert(c, domain.TableListings, l); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		c.WithFields(log.Fields{
			"err":     err,
			"listing": l,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Update(c bCtx.Ctx, id domain.ListingId, patchable listing.Patchable) error {
	val, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableListings, bson.M{"listingId": id}, val); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"patchable": patchable,
		}).Error("q.Patch failed")
		return err
	}

	return nil
}

func (im *impl) RecordBid(c bCtx.Ctx, id domain.ListingId, bid string, bidder domain.Address) error {
	selector := bson.M{
		"listingId": id,
		"status":    listing.StatusActive,
	}
	update := bson.M{
		"$set": bson.M{
			"highestBid":    bid,
			"highestBidder": bidder.ToLower(),
			"updatedAt":     time.Now(),
		},
		"$inc": bson.M{"bidCount": 1},
	}

	if err := im.q.CustomPatch(c, domain.TableListings, selector, update, false); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrAuctionNotActive
		}
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"bidder":    bidder,
		}).Error("q.CustomPatch failed")
		return err
	}

	return nil
}
