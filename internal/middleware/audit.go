package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/service"
)

// Audit records an audit trail entry after a mutation completes successfully.
// Failed requests (4xx/5xx) and redirect-only auth failures are not recorded.
func Audit(audit *service.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		entry := &models.AuditLog{
			Action:    action,
			Resource:  resource,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if sess := CurrentSession(c); sess != nil {
			entry.ActorID = &sess.UserID
			entry.ActorName = sess.Name
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		entry.Detail, _ = json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		audit.Record(c.Request.Context(), entry)
	}
}
