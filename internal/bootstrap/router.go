package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gbtraders/storefront-api/config"
	httpapi "github.com/gbtraders/storefront-api/internal/api/http"
	"github.com/gbtraders/storefront-api/internal/api/http/middleware"
	"github.com/gbtraders/storefront-api/internal/api/http/routes"
	"github.com/gbtraders/storefront-api/internal/auth"
	plansservice "github.com/gbtraders/storefront-api/internal/plans/service"
	"github.com/gbtraders/storefront-api/internal/storage/blobstore"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Store       docstore.Store
	Blobs       blobstore.Store
	Identity    auth.Provider
	Redis       *redis.Client
	Plans       *plansservice.PlanService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	r := gin.New()
	// nil trusts no proxy, so ClientIP is the socket peer
	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Error().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Store)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterAPI(r, routes.APIDeps{
		Config:   cfg,
		Store:    dep.Store,
		Blobs:    dep.Blobs,
		Identity: dep.Identity,
		Redis:    dep.Redis,
		Plans:    dep.Plans,
	})

	return r
}
