package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gbtraders/storefront-api/config"
	adminhttp "github.com/gbtraders/storefront-api/internal/admin/http"
	"github.com/gbtraders/storefront-api/internal/api/http/middleware"
	articleshttp "github.com/gbtraders/storefront-api/internal/articles/http"
	articlesrepo "github.com/gbtraders/storefront-api/internal/articles/repository"
	"github.com/gbtraders/storefront-api/internal/auth"
	authhttp "github.com/gbtraders/storefront-api/internal/auth/http"
	authmw "github.com/gbtraders/storefront-api/internal/auth/middleware"
	authrepo "github.com/gbtraders/storefront-api/internal/auth/repository"
	authservice "github.com/gbtraders/storefront-api/internal/auth/service"
	"github.com/gbtraders/storefront-api/internal/cache"
	dealershttp "github.com/gbtraders/storefront-api/internal/dealers/http"
	dealersrepo "github.com/gbtraders/storefront-api/internal/dealers/repository"
	favoriteshttp "github.com/gbtraders/storefront-api/internal/favorites/http"
	favoritesrepo "github.com/gbtraders/storefront-api/internal/favorites/repository"
	notificationshttp "github.com/gbtraders/storefront-api/internal/notifications/http"
	notificationsrepo "github.com/gbtraders/storefront-api/internal/notifications/repository"
	notificationsservice "github.com/gbtraders/storefront-api/internal/notifications/service"
	planshttp "github.com/gbtraders/storefront-api/internal/plans/http"
	plansrepo "github.com/gbtraders/storefront-api/internal/plans/repository"
	plansservice "github.com/gbtraders/storefront-api/internal/plans/service"
	"github.com/gbtraders/storefront-api/internal/storage/blobstore"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

type APIDeps struct {
	Config   *config.Config
	Store    docstore.Store
	Blobs    blobstore.Store
	Identity auth.Provider
	// Redis is optional; it backs the article slug cache.
	Redis *redis.Client
	// Plans is shared with the in-process scheduler.
	Plans *plansservice.PlanService
}

// RegisterAPI mounts every /api route.
func RegisterAPI(r *gin.Engine, dep APIDeps) {
	cfg := dep.Config
	api := r.Group("/api")
	requireUser := authmw.FirebaseAuthMiddleware(dep.Identity)

	userRepo := authrepo.NewUserRepository(dep.Store)

	authGroup := api.Group("/auth",
		middleware.RateLimit(middleware.NewIPRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)))
	authhttp.New(
		authservice.NewAuthService(userRepo, dep.Identity),
		authservice.NewStoragePurger(dep.Blobs),
	).Register(authGroup)

	articleRepo := articlesrepo.NewArticleRepository(dep.Store, cache.New(dep.Redis, articlesrepo.CachePrefix))
	articleshttp.New(articleRepo).Register(api.Group("/articles"))

	plans := dep.Plans
	if plans == nil {
		plans = plansservice.NewPlanService(plansrepo.NewTokenRepository(dep.Store))
	}
	plansHandler := planshttp.New(plans)
	plansHandler.RegisterCleanup(api.Group("/cleanup"), cfg.Cleanup.Secret)
	plansHandler.Register(api.Group("/plans", requireUser))

	dealershttp.New(dealersrepo.NewDealerRepository(dep.Store)).
		Register(api.Group("/dealers", requireUser))

	favoriteshttp.New(favoritesrepo.NewFavoritesRepository(dep.Store)).
		Register(api.Group("/favorites", requireUser))

	notificationRepo := notificationsrepo.NewNotificationRepository(dep.Store)
	notificationshttp.New(notificationRepo, notificationsservice.NewNotificationService(notificationRepo)).
		Register(api.Group("/notifications", requireUser))

	adminhttp.New(adminhttp.Deps{
		Identity:    dep.Identity,
		Users:       userRepo,
		Store:       dep.Store,
		Webhook:     cfg.Webhook,
		Environment: cfg.App.Environment,
		Version:     cfg.App.Version,
	}).Register(api.Group("", requireUser))
}
