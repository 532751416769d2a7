package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/service/cache"
	"github.com/gavelhouse/goapi/service/cache/provider"
	"github.com/gavelhouse/goapi/service/cache/provider/compound"
	"github.com/gavelhouse/goapi/service/cache/provider/primitive"
	redisCache "github.com/gavelhouse/goapi/service/cache/provider/redis"
	"github.com/gavelhouse/goapi/service/redis"
)

var (
	httpCacheLocal provider.Provider
	httpCacheRedis provider.Provider

	httpCachePfx = "httpCache"

	once = sync.Once{}
)

// SetupCache wires the layers backing CacheHttp, it must run before any
// route registers the middleware. Oversized responses skip the local layer
// and are served from redis only
func SetupCache(redis redis.Service) {
	once.Do(func() {
		httpCacheLocal = primitive.NewPrimitive(64)
		httpCacheRedis = redisCache.NewRedis(redis)
	})
}

// cachedResponse is the serialized form of a cached reply
type cachedResponse struct {
	Body   []byte
	Header http.Header
}

type teeResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *teeResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *teeResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *teeResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *teeResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

// sortQueryParams normalizes the query so param order does not fragment
// the cache
func sortQueryParams(u *url.URL) {
	params := u.Query()
	for _, param := range params {
		sort.Slice(param, func(i, j int) bool {
			return param[i] < param[j]
		})
	}
	u.RawQuery = params.Encode()
}

func cacheKey(url string) string {
	hash := fnv.New64a()
	hash.Write([]byte(url))

	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp caches successful responses of the wrapped route for ttl. The
// local layer soaks up bursts, the redis layer is shared across instances
func CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	if httpCacheLocal == nil || httpCacheRedis == nil {
		panic("need SetupCache before using CacheHttp")
	}

	store := cache.New(cache.Config{
		Ttl: ttl,
		Pfx: httpCachePfx,
		Cache: compound.NewCompound([]provider.Provider{
			httpCacheLocal,
			httpCacheRedis,
		}),
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)

			sortQueryParams(c.Request().URL)
			key := cacheKey(c.Request().URL.String())

			cached := cachedResponse{}
			err := store.Get(ctx, key, &cached)
			if err == nil {
				for k, v := range cached.Header {
					c.Response().Header().Set(k, strings.Join(v, ","))
				}
				c.Response().WriteHeader(http.StatusOK)
				c.Response().Write(cached.Body)
				return nil
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
					"key": key,
				}).Error("store.Get failed")
			}

			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &teeResponseWriter{Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode < 400 {
				err := store.Set(ctx, key, cachedResponse{
					Body:   resBody.Bytes(),
					Header: writer.Header(),
				})
				if err != nil {
					ctx.WithFields(log.Fields{
						"err": err,
						"key": key,
					}).Error("store.Set failed")
				}
			}

			return nil
		}
	}
}
