package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/gavelhouse/goapi/base/ctx"
)

// Forever cache the value without expiration
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned by TTL when the key exists but has no associated expire
	ErrNoTTL = errors.New("key has no associated ttl")

	// ErrGapTime is returned when no pool is available for the command
	ErrGapTime = errors.New("no pool available")
)

// Service abstract the redis commands we rely on. SetNX returns
// ErrNotFound when the key already exists, which is how lock
// contention surfaces
type Service interface {
	Get(context ctx.Ctx, key string) (val []byte, err error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	TTL(context ctx.Ctx, key string) (int, error)
}
