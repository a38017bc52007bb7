package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/auth"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/config"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/handler"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/middleware"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// protected routes require a valid, unrevoked token resolving to a live user
	protected := []echo.MiddlewareFunc{
		middleware.JWT(jwtService),
		middleware.LoadUser(authService, tokenStore),
	}

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", authHandler.Profile, protected...)
	authGroup.POST("/logout", authHandler.Logout, protected...)

	projects := api.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("/create", projectHandler.Create, protected...)
	projects.PUT("/:id", projectHandler.Update, protected...)
	projects.DELETE("/:id", projectHandler.Delete, protected...)
	projects.POST("/:id/gallery", projectHandler.UploadGallery, protected...)
	projects.DELETE("/:id/gallery", projectHandler.RemoveGalleryImage, protected...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
