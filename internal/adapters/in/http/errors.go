package http

import (
	"context"
	"errors"
	"net/http"

	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/generated/servers"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/i18n"

	"github.com/labstack/echo/v4"
)

// classify maps an error to a status and a message key. Internal error text
// never reaches the client.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		switch {
		case httpErr.Code == http.StatusNotFound:
			return httpErr.Code, i18n.NotFound
		case httpErr.Code < http.StatusInternalServerError:
			return httpErr.Code, i18n.InvalidRequest
		default:
			return httpErr.Code, i18n.TryAgainLater
		}
	case errors.Is(err, queries.ErrSearchNotFound):
		return http.StatusNotFound, i18n.SearchExpired
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, i18n.NotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, i18n.InvalidRequest
	case errors.Is(err, ports.ErrProviderUnavailable),
		errors.Is(err, commands.ErrTransportNotConfigured):
		return http.StatusServiceUnavailable, i18n.ServiceUnavailable
	case errors.Is(err, commands.ErrSendFailed):
		return http.StatusBadGateway, i18n.TryAgainLater
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.TryAgainLater
	default:
		return http.StatusInternalServerError, i18n.TryAgainLater
	}
}

func errorResponse(ctx echo.Context, err error) error {
	code, key := classify(err)
	if code >= http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), err)
	}
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: i18n.Printer(language(ctx)).Sprintf(key),
	})
}

// errorHandler replaces echo's default so that routing, binding and
// validation failures get the same localized body as handler errors.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	if respErr := errorResponse(ctx, err); respErr != nil {
		ctx.Logger().Error(respErr)
	}
}
