package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/endpoint"

	"github.com/flarexio/librarian"
)

// abortWithError maps service errors onto HTTP statuses. Readiness failures
// are a 503 the client can retry; everything unexpected is a 500 with a
// generic body so internals are not leaked.
func abortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()

	switch {
	case errors.Is(err, librarian.ErrIndexNotReady),
		errors.Is(err, librarian.ErrInitializationFailed),
		errors.Is(err, librarian.ErrEmbeddingService):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "the AI librarian is not ready yet, please try again shortly",
		})

	case errors.Is(err, librarian.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "book not found",
		})

	case errors.Is(err, librarian.ErrInvalidBookID),
		errors.Is(err, librarian.ErrNoBooksFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal error",
		})
	}
}

func RecommendHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req librarian.RecommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func SearchBooksHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req librarian.SearchBooksRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func RefreshIndexHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		_, err := endpoint(ctx, nil)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.String(http.StatusOK, "OK")
	}
}

func StatusHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func GetBookHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.String(http.StatusBadRequest, "invalid book id")
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}
