package ginmw

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	shapemap "github.com/shapemap/shapemap"
	"github.com/shapemap/shapemap/middleware"
)

// MapJSON reads the request body as JSON, projects it onto T's declared shape
// under opts, and stores the result in the request context for downstream
// handlers. Declaration problems return 400 with an Issues payload.
func MapJSON[T any](opts ...shapemap.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		out, err := shapemap.MapJSONValue[T](body, opts...)
		if err != nil {
			if iss, ok := shapemap.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				c.Abort()
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		ctx := middleware.ContextWithMapped[T](c.Request.Context(), out)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RenderMapped responds with the request body projected onto T's declared
// shape. A JSON null body renders as null.
func RenderMapped[T any](opts ...shapemap.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := shapemap.MapJSONValue[T](body, opts...)
		if err != nil {
			if iss, ok := shapemap.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if out == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
