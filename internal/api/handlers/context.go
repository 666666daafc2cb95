package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"ridehail/internal/api/middleware"
	"ridehail/pkg/utils"
)

// requestContext carries the request and session IDs into the service layer
// so its log lines can be matched to the access log.
func requestContext(c *gin.Context) context.Context {
	return utils.WithRequestInfo(c.Request.Context(), middleware.GetRequestID(c), middleware.GetUserID(c))
}
