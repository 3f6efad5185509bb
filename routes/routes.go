package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
	"github.com/ishala/illegal-waste-reporter-BE/middleware"
	"github.com/ishala/illegal-waste-reporter-BE/ratelimit"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/services"
)

// Dependencies are the constructed services the HTTP layer is built on.
type Dependencies struct {
	Store         repository.Store
	Gate          *services.Gate
	Auth          *services.AuthService
	Users         *services.UserService
	Reports       *services.ReportService
	Locations     *services.LocationService
	Media         *services.MediaService
	Verifications *services.VerificationService
	AuthLimiter   ratelimit.Limiter
}

type RouterOptions struct {
	Prefix      string
	CORSOrigins []string
}

// NewRouter builds the engine with logging, recovery, CORS and every route.
func NewRouter(deps Dependencies, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.SlogLogger())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	SetupRoutes(r, deps, opts.Prefix)

	r.NoRoute(func(c *gin.Context) {
		controllers.RespondError(c, controllers.NewHTTPError(http.StatusNotFound, controllers.CodeNotFound, "Not Found: "+c.Request.URL.Path))
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && strings.TrimSpace(origins[0]) == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRoutes(r *gin.Engine, deps Dependencies, prefix string) {
	if prefix == "" {
		prefix = "/api/v1"
	}

	authController := controllers.NewAuthController(deps.Auth)
	userController := controllers.NewUserController(deps.Users)
	reportController := controllers.NewReportController(deps.Reports)
	locationController := controllers.NewLocationController(deps.Locations)
	mediaController := controllers.NewMediaController(deps.Media)
	verificationController := controllers.NewVerificationController(deps.Verifications)
	healthController := controllers.NewHealthController(deps.Store)

	r.GET("/health", healthController.Health)

	api := r.Group(prefix)
	authRequired := middleware.AuthMiddleware(deps.Gate)

	SetupAuthRoutes(api, authController, authRequired, deps.AuthLimiter)
	SetupUserRoutes(api, userController, authRequired)
	SetupReportRoutes(api, reportController, authRequired)
	SetupLocationRoutes(api, locationController, authRequired)
	SetupMediaRoutes(api, mediaController, authRequired)
	SetupVerificationRoutes(api, verificationController, authRequired)
}
