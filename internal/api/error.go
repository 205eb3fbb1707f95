package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"error"`
}

var (
	InternalServerError  = ErrorResponse{"Internal server error"}  //nolint:gochecknoglobals // constant response body
	BadRequestError      = ErrorResponse{"Bad request"}            //nolint:gochecknoglobals // constant response body
	InsufficientPoolBody = ErrorResponse{"Insufficient word pool"} //nolint:gochecknoglobals // constant response body
)

func HTTPErrorHandler(log *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		log.ErrorContext(c.Request().Context(), "failed to process request", "error", err)

		var echoError *echo.HTTPError
		if !errors.As(err, &echoError) {
			if err := c.JSON(http.StatusInternalServerError, InternalServerError); err != nil { //nolint:govet // ignore shadow declaration
				log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
			}
			return
		}

		message, ok := echoError.Message.(string)
		if !ok || message == "" || echoError.Code == http.StatusInternalServerError {
			message = InternalServerError.Message
		}
		if err := c.JSON(echoError.Code, ErrorResponse{Message: message}); err != nil { //nolint:govet // ignore shadow declaration
			log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
