package cache

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/domain/keys"
	"github.com/gavelhouse/goapi/service/cache/provider"
)

type impl struct {
	ttl         time.Duration
	pfx         string
	cache       provider.Provider
	serialize   Serializer
	deserialize Deserializer
}

func New(cfg Config) Service {
	if cfg.Serialize == nil {
		cfg.Serialize = json.Marshal
	}

	if cfg.Deserialize == nil {
		cfg.Deserialize = json.Unmarshal
	}

	return &impl{
		ttl:         cfg.Ttl,
		pfx:         cfg.Pfx,
		cache:       cfg.Cache,
		serialize:   cfg.Serialize,
		deserialize: cfg.Deserialize,
	}
}

func (im *impl) GetOrLoad(c ctx.Ctx, key string, container interface{}, loader Loader) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if err != ErrNotFound {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("cache.Get failed")
		return err
	}

	val, err := loader()
	if err != nil {
		return err
	}

	// best effort, serving the loaded value matters more than caching it
	if err := im.Set(c, key, val); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("cache.Set failed")
	}

	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())

	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, _, err := im.cache.Get(c, key)
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("provider.Get failed")
		return err
	}

	if err := im.deserialize(val, container); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("deserialize failed")
		return err
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, err := im.serialize(value)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("serialize failed")
		return err
	}

	if err := im.cache.Set(c, key, val, im.ttl); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("provider.Set failed")
		return err
	}

	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = keys.RedisKey(im.pfx, key)

	if err := im.cache.Del(c, key); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("provider.Del failed")
		return err
	}

	return nil
}
