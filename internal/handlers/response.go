package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Envelope wraps every response body, successful or not
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func respond(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// ErrorHandler renders errors as envelopes. It is installed as echo's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := http.StatusInternalServerError, "internal error"
	var appErr *apperr.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.Status(), appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	entry := logger.From(c.Request().Context()).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = respond(c, status, nil, message)
	}
	if err != nil {
		entry.WithError(err).Error("failed to write error response")
	}
}
