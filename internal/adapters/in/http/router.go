package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the echo instance with recovery, error rendering and
// OpenAPI request validation. The document is also browsable under /swagger/.
func NewEcho(s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(e)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s.Register(e, validator)
	return e, nil
}
