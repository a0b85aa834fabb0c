package http

import (
	"fmt"

	"vacancybot/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API: request validation
// against the embedded OpenAPI document, localized errors, panic recovery
// and the Swagger UI under /swagger/.
func NewRouter(server *Server, logLevel log.Lvl) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, fmt.Errorf("register swagger document: %w", err)
	}

	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(logLevel)
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validate)
	servers.RegisterHandlers(api, server)

	return e, nil
}
