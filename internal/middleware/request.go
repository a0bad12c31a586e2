package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carmarket/internal/pkg/response"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestID tags every request with an id, reusing the client's X-Request-ID when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	if id := c.GetString(ContextRequestID); id != "" {
		return id
	}
	return c.GetHeader(HeaderRequestID)
}

// BodyLimit caps request bodies at limit bytes. Reading past it yields
// *http.MaxBytesError, which the storage error responder turns into 413.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RequireBody rejects with 400 when any of fields is absent or null in the
// JSON body. The body is restored for the handler.
func RequireBody(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw []byte
		if c.Request.Body != nil {
			var err error
			raw, err = io.ReadAll(c.Request.Body)
			if err != nil {
				response.Fail(c, err)
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		body := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &body); err != nil {
			body = map[string]json.RawMessage{}
		}

		var missing []string
		for _, f := range fields {
			v, ok := body[f]
			if !ok || string(v) == "null" {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			response.Error(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
			return
		}

		c.Next()
	}
}
