package handler

import (
	"log/slog"
	"net/http"

	"contacts_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Keys under which a soft failure's message is returned
const (
	keyMessage = "message"
	keyDetail  = "detail"
)

func statusCode(status service.Status, success int) int {
	switch status {
	case service.StatusOK:
		return success
	case service.StatusNotFound:
		return http.StatusNotFound
	case service.StatusConflict:
		return http.StatusConflict
	case service.StatusUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeResult sends body on success; otherwise the mapped status code with
// the result message under failureKey.
func writeResult(c *gin.Context, res service.Result, success int, body any, failureKey string) {
	if res.OK() {
		c.JSON(success, body)
		return
	}
	code := statusCode(res.Status, success)
	if code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(code, gin.H{failureKey: res.Message})
}

// internalError logs err and answers 500 without leaking the detail.
func internalError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Error(msg,
		slog.String("error", err.Error()),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
