package primitive

import (
	"time"

	"github.com/coocood/freecache"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/service/cache/provider"
)

type impl struct {
	cache *freecache.Cache
}

// NewPrimitive creates an in-process cache holding up to sizeMB megabytes.
// freecache caps single entries at 1/1024 of the total size
func NewPrimitive(sizeMB int) provider.Provider {
	return &impl{freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("freecache.GetWithExpiration failed")
		return nil, time.Duration(0), err
	}

	// expireAt is an epoch timestamp, zero means the entry never expires
	var ttl time.Duration
	if expireAt > 0 {
		ttl = time.Until(time.Unix(int64(expireAt), 0))
	}
	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		if err == freecache.ErrLargeEntry || err == freecache.ErrLargeKey {
			// entry does not fit the local cache, other layers can still hold it
			return nil
		}
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
