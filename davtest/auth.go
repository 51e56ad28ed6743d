package davtest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const defaultRealm = `Basic realm="Nextcloud", charset="UTF-8"`

func basicAuthMiddleware(users map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uak, usk, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", defaultRealm)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		sk, ok := users[uak]
		if !ok || sk != usk {
			logutil.GetLogger(c.Request.Context()).Error("auth failed", zap.String("user", uak))
			c.Header("WWW-Authenticate", defaultRealm)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
