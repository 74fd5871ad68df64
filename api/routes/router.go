package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/storefront-backend/api/controllers/orders"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/categories"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	products "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/wallet"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

// Cache is the Redis surface the HTTP layer needs: idempotency records, auth
// rate-limit counters and the readiness ping.
type Cache interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

// Services bundles everything the router dispatches to.
type Services struct {
	Auth       auth.Service
	Categories categories.Service
	Products   products.Service
	Cart       cart.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
	Wallet     wallet.Service
}

// NewRouter mounts every storefront route. gatherer backs /metrics; registerer
// receives the HTTP request metrics. Either may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache Cache,
	sessions session.Checker,
	registerer prometheus.Registerer,
	gatherer prometheus.Gatherer,
	svc Services,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registerer)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)

	loginThrottle := middleware.AuthThrottle{
		Name:     "login",
		Window:   cfg.AuthRateLimit.LoginWindow,
		PerIP:    cfg.AuthRateLimit.LoginIPLimit,
		PerEmail: cfg.AuthRateLimit.LoginEmailLimit,
	}
	registerThrottle := middleware.AuthThrottle{
		Name:     "register",
		Window:   cfg.AuthRateLimit.RegisterWindow,
		PerIP:    cfg.AuthRateLimit.RegisterIPLimit,
		PerEmail: cfg.AuthRateLimit.RegisterEmailLimit,
	}
	topupLimiter := middleware.NewCallerRateLimiter(cfg.APIRateLimit.TopupPerMinute, cfg.APIRateLimit.TopupBurst)

	// Checkout keys live longer than wallet keys: a duplicate order is harder to undo.
	checkoutOnce := middleware.Idempotency(cache, middleware.CriticalIdempotencyTTL, logg)
	walletOnce := middleware.Idempotency(cache, middleware.DefaultIdempotencyTTL, logg)
	authenticate := middleware.Auth(cfg.JWT, sessions, logg)
	adminOnly := middleware.RequireRole(enums.UserRoleAdmin, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cache))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerThrottle, cache, logg)).Post("/register", controllers.AuthRegister(svc.Auth, logg))
		r.With(middleware.AuthRateLimit(loginThrottle, cache, logg)).Post("/login", controllers.AuthLogin(svc.Auth, logg))
		r.With(authenticate).Post("/logout", controllers.AuthLogout(svc.Auth, logg))
	})

	r.Get("/api/categories", controllers.CategoryList(svc.Categories, logg))
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svc.Products, logg))
		r.Get("/{id}", controllers.ProductDetail(svc.Products, logg))

		// Catalog writes are also reachable on the resource path older clients use.
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Post("/", controllers.AdminCreateProduct(svc.Products, logg))
			r.Put("/{id}", controllers.AdminUpdateProduct(svc.Products, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(svc.Products, logg))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(svc.Cart, logg))
			r.Post("/", cartcontrollers.CartAddItem(svc.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(svc.Cart, logg))
			r.Put("/items/{itemId}", cartcontrollers.CartSetQuantity(svc.Cart, logg))
			r.Delete("/items/{itemId}", cartcontrollers.CartRemoveItem(svc.Cart, logg))
			r.Put("/{itemId}", cartcontrollers.CartSetQuantity(svc.Cart, logg))
			r.Delete("/{itemId}", cartcontrollers.CartRemoveItem(svc.Cart, logg))
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(svc.Orders, logg))
			r.With(checkoutOnce).Post("/", controllers.Checkout(svc.Checkout, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(svc.Orders, logg))
			r.With(adminOnly).Put("/{orderId}", ordercontrollers.AdminUpdateStatus(svc.Orders, logg))
		})

		r.Route("/api/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletFetch(svc.Wallet, logg))
			r.With(walletOnce).Post("/deposit", controllers.WalletDeposit(svc.Wallet, logg))
			r.With(middleware.RateLimit(topupLimiter, logg), walletOnce).
				Post("/topup-card", controllers.WalletTopupCard(svc.Wallet, cfg.Wallet.CardFeeRate, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(svc.Products, logg))
			r.Put("/{id}", controllers.AdminUpdateProduct(svc.Products, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(svc.Products, logg))
		})
		r.Post("/categories", controllers.AdminCreateCategory(svc.Categories, logg))
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.AdminList(svc.Orders, logg))
			r.Put("/{orderId}/status", ordercontrollers.AdminUpdateStatus(svc.Orders, logg))
		})
	})

	return r
}
