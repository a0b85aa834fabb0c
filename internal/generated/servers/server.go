package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /api/v1/callbacks)
	HandleCallback(ctx echo.Context) error
	// (GET /api/v1/users/{userId}/searches)
	GetRecentSearches(ctx echo.Context, userId UserId, params GetRecentSearchesParams) error
	// (POST /api/v1/users/{userId}/searches)
	SearchVacancies(ctx echo.Context, userId UserId) error
	// (GET /api/v1/users/{userId}/searches/page)
	GetSearchPage(ctx echo.Context, userId UserId, params GetSearchPageParams) error
	// (POST /api/v1/users/{userId}/deliveries)
	DeliverVacancies(ctx echo.Context, userId UserId, params DeliverVacanciesParams) error
	// (POST /api/v1/users/{userId}/vacancies/{vacancyId}/click)
	MarkVacancyClicked(ctx echo.Context, userId UserId, vacancyId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

// HandleCallback converts echo context to params.
func (w *ServerInterfaceWrapper) HandleCallback(ctx echo.Context) error {
	return w.Handler.HandleCallback(ctx)
}

// GetRecentSearches converts echo context to params.
func (w *ServerInterfaceWrapper) GetRecentSearches(ctx echo.Context) error {
	userId, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	var params GetRecentSearchesParams
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetRecentSearches(ctx, userId, params)
}

// SearchVacancies converts echo context to params.
func (w *ServerInterfaceWrapper) SearchVacancies(ctx echo.Context) error {
	userId, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.SearchVacancies(ctx, userId)
}

// GetSearchPage converts echo context to params.
func (w *ServerInterfaceWrapper) GetSearchPage(ctx echo.Context) error {
	userId, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	var params GetSearchPageParams
	err = runtime.BindQueryParameter("form", true, true, "query", ctx.QueryParams(), &params.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter query: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, true, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	return w.Handler.GetSearchPage(ctx, userId, params)
}

// DeliverVacancies converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverVacancies(ctx echo.Context) error {
	userId, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	var params DeliverVacanciesParams
	err = runtime.BindQueryParameter("form", true, false, "force", ctx.QueryParams(), &params.Force)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter force: %s", err))
	}
	err = runtime.BindQueryParameter("form", true, false, "mark", ctx.QueryParams(), &params.Mark)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter mark: %s", err))
	}

	return w.Handler.DeliverVacancies(ctx, userId, params)
}

// MarkVacancyClicked converts echo context to params.
func (w *ServerInterfaceWrapper) MarkVacancyClicked(ctx echo.Context) error {
	userId, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	var vacancyId openapi_types.UUID
	err = runtime.BindStyledParameterWithOptions("simple", "vacancyId", ctx.Param("vacancyId"), &vacancyId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter vacancyId: %s", err))
	}

	return w.Handler.MarkVacancyClicked(ctx, userId, vacancyId)
}

func bindUserID(ctx echo.Context) (UserId, error) {
	var userId UserId
	err := runtime.BindStyledParameterWithOptions("simple", "userId", ctx.Param("userId"), &userId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter userId: %s", err))
	}
	return userId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for routing.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends baseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.POST(baseURL+"/api/v1/callbacks", wrapper.HandleCallback)
	router.GET(baseURL+"/api/v1/users/:userId/searches", wrapper.GetRecentSearches)
	router.POST(baseURL+"/api/v1/users/:userId/searches", wrapper.SearchVacancies)
	router.GET(baseURL+"/api/v1/users/:userId/searches/page", wrapper.GetSearchPage)
	router.POST(baseURL+"/api/v1/users/:userId/deliveries", wrapper.DeliverVacancies)
	router.POST(baseURL+"/api/v1/users/:userId/vacancies/:vacancyId/click", wrapper.MarkVacancyClicked)
}
