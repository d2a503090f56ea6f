package middleware

import (
	"errors"

	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

// AbortStoreError maps store-layer failures onto the HTTP error taxonomy.
// A device the caller cannot see is Forbidden, not NotFound: under the
// caller's capability the two cases are indistinguishable.
func AbortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthenticated):
		response.Unauthorized(c, "store rejected credential")
	case errors.Is(err, store.ErrNotOwned):
		response.Forbidden(c, "")
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, "not found")
	default:
		response.InternalError(c, err)
	}
}
