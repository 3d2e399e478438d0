package handlers

import (
	"log/slog"
	"net/http"

	"fintrack/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError renders the error page for a known error code. The status comes
// from the code registry; the message is the code's registered message
// unless overridden.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	status := errorResponse.GetHTTPStatus()

	if err := c.Render(status, "error", map[string]interface{}{
		"Message": errorResponse.Error.Message,
		"TraceID": traceID,
	}); err != nil {
		// No renderer configured (JSON callers, some tests)
		return c.JSON(status, errorResponse)
	}
	return nil
}

// SendSystemError logs the internal error and renders a generic failure
// page. The underlying error never reaches the client.
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", internal.Error(),
	)

	if renderErr := c.Render(http.StatusInternalServerError, "error", map[string]interface{}{
		"Message": errorResponse.Error.Message,
		"TraceID": traceID,
	}); renderErr != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse)
	}
	return nil
}
