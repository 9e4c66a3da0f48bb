package router

import (
	"net/http"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"campusai/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *charmlog.Logger,
	db *gorm.DB,
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	askHandler *handler.AskHandler,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", pageHandler.Index)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Signup and login hold one database connection for the whole request.
	scoped := ScopedConnection(db)
	api.POST("/signup", authHandler.Signup, scoped)
	api.POST("/login", authHandler.Login, scoped)

	api.POST("/ask-ai", askHandler.Ask)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
