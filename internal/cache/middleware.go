package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Page returns middleware that caches successful GET responses under
// {prefix}:{path}?{sorted query params} for the given TTL. Cached entries are
// served without touching the handler; anything except a 200 on a GET is
// never cached.
func Page(c *Client, prefix string, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := Key(prefix, ctx.Request.URL.Path, ctx.Request.URL.Query())
		if data, ok := c.Get(ctx.Request.Context(), key); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
			ctx.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = recorder
		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			c.Set(ctx.Request.Context(), key, recorder.body.Bytes(), ttl)
		}
	}
}
