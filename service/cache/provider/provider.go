package provider

import (
	"errors"
	"time"

	"github.com/gavelhouse/goapi/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Provider is a raw byte cache. Get reports the remaining ttl so stacked
// layers can fill each other without extending an entry's lifetime
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
