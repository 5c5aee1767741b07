package middleware

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// RequestLog 请求日志中间件，记录方法、路径、状态码与耗时
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		body := c.Request.Body
		readBody, err := io.ReadAll(body)
		if err != nil {
			logc.Error(context.Background(), err)
			return
		}
		// 将 body 数据放回请求中
		c.Request.Body = io.NopCloser(bytes.NewBuffer(readBody))

		c.Next()

		logc.Infof(context.Background(), "%s %s, status: %d, client: %s, 耗时: %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start).String(),
		)
	}
}
