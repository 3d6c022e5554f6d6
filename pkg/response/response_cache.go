package response

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"todolist/pkg/telemetry"
)

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

type ResponseCache struct {
	cache   *gocache.Cache
	config  map[string]ResponseCacheConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode int
	Body       []byte
	Timestamp  time.Time
}

func NewResponseCache(logger *zap.Logger, metrics *telemetry.AppMetrics) *ResponseCache {
	return &ResponseCache{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
		config: map[string]ResponseCacheConfig{
			"default": {TTL: 1 * time.Second, Enabled: true},
		},
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) SetConfig(path string, config ResponseCacheConfig) {
	rc.config[path] = config
}

// CacheMiddleware caches successful GET responses for a short TTL. Entries
// are scoped by the Authorization header so one user's todo list is never
// served to another, and a successful mutation flushes the caller's scope
// so the next list read reflects the write.
func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()

			if c.Writer.Status() < http.StatusBadRequest {
				rc.invalidateScope(rc.scopeKey(c))
			}

			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]

		if !exists {
			config = rc.config["default"]
		}

		if !config.Enabled {
			c.Next()
			return
		}

		key := rc.cacheKey(c)

		if cached, found := rc.cache.Get(key); found {
			if response, ok := cached.(CachedResponse); ok {
				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				c.Data(response.StatusCode, "application/json; charset=utf-8", response.Body)
				c.Abort()
				return
			}
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &bufferedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			rc.cache.Set(key, CachedResponse{
				StatusCode: writer.Status(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}, config.TTL)
		}
	}
}

func (rc *ResponseCache) cacheKey(c *gin.Context) string {
	request := c.Request.URL.Path + "?" + c.Request.URL.RawQuery

	return rc.scopeKey(c) + ":" + fmt.Sprintf("%x", md5.Sum([]byte(request)))
}

func (rc *ResponseCache) scopeKey(c *gin.Context) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(c.GetHeader("Authorization"))))
}

func (rc *ResponseCache) invalidateScope(scope string) {
	prefix := scope + ":"

	for key := range rc.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			rc.cache.Delete(key)
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.body.Write(data)

	return w.ResponseWriter.Write(data)
}

func (w *bufferedWriter) WriteString(data string) (int, error) {
	w.body.WriteString(data)

	return w.ResponseWriter.WriteString(data)
}
