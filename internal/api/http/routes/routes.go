package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/harwoodcarpentry/tracker-backend/config"
	httpapi "github.com/harwoodcarpentry/tracker-backend/internal/api/http"
	"github.com/harwoodcarpentry/tracker-backend/internal/api/http/middleware"
	trackinghttp "github.com/harwoodcarpentry/tracker-backend/internal/tracking/http"
	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/service"
)

type Deps struct {
	Cfg *config.Config
	DB  *pgxpool.Pool
	Svc *service.ProjectService
}

// Register wires middleware and all route groups onto the engine.
func Register(r *gin.Engine, dep Deps) {
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(dep.Cfg.CORS)))

	httpapi.NewHealthHandler("tracker-backend", dep.Cfg.App.Version, dep.DB).RegisterRoutes(r)

	api := r.Group("/api")
	trackinghttp.RegisterPublic(api, dep.Svc)

	admin := api.Group("")
	admin.Use(middleware.RateLimit(rate.Limit(5), 10))
	admin.Use(middleware.AdminKey(dep.Cfg.Admin.Key))
	trackinghttp.RegisterAdmin(admin, dep.Svc)
}

// corsConfig echoes the requesting origin only when it is on the configured
// allow-list or is a local development origin; the middleware emits
// Vary: Origin and handles OPTIONS preflights.
func corsConfig(c config.CORSConfig) cors.Config {
	allowed := make(map[string]struct{}, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		allowed[o] = struct{}{}
	}

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := allowed[origin]; ok {
				return true
			}
			return isLocalOrigin(origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

func isLocalOrigin(origin string) bool {
	for _, prefix := range []string{"http://localhost", "http://127.0.0.1"} {
		if origin == prefix || strings.HasPrefix(origin, prefix+":") {
			return true
		}
	}
	return false
}
