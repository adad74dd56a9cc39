package devserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/labstack/echo/v4"
)

// errorResponse is the error envelope. The console shows "message".
type errorResponse struct {
	Message string `json:"message"`
}

func newHTTPErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error(c.Request().Context(), "unhandled error",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, ErrRootProtected):
		return http.StatusForbidden, "Root users cannot be modified"
	}
	return http.StatusInternalServerError, "Internal server error"
}
