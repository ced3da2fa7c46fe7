package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "rxconsole/internal/core/context"
)

const (
	HeaderOperatorID   = "X-Operator-Id"
	HeaderOperatorName = "X-Operator-Name"
)

// Operator middleware captures the operator identity forwarded by the
// authenticating gateway. The console does not authenticate; it only carries
// the identity into context so resolve actions record who acted.
func Operator() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderOperatorID)
		if id == "" {
			c.Next()
			return
		}

		op := &appctx.OperatorContext{
			ID:   id,
			Name: c.GetHeader(HeaderOperatorName),
		}
		ctx := appctx.WithOperator(c.Request.Context(), op)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
