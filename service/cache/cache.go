package cache

import (
	"errors"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Loader fetches the value on a cache miss
type Loader func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service caches serialized values on top of a raw provider
type Service interface {
	// GetOrLoad reads through the cache, invoking loader and filling the
	// cache on a miss. container must be a pointer
	GetOrLoad(c ctx.Ctx, key string, container interface{}, loader Loader) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type Config struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
	// Serialize and Deserialize default to json
	Serialize   Serializer
	Deserialize Deserializer
}
