package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartshoplabs/smartshop-backend/api/controllers"
	cartcontrollers "github.com/smartshoplabs/smartshop-backend/api/controllers/cart"
	"github.com/smartshoplabs/smartshop-backend/api/middleware"
	authsvc "github.com/smartshoplabs/smartshop-backend/internal/auth"
	cartsvc "github.com/smartshoplabs/smartshop-backend/internal/cart"
	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	checkoutsvc "github.com/smartshoplabs/smartshop-backend/internal/checkout"
	feedsvc "github.com/smartshoplabs/smartshop-backend/internal/feed"
	messengersvc "github.com/smartshoplabs/smartshop-backend/internal/messenger"
	"github.com/smartshoplabs/smartshop-backend/pkg/config"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	Registry  *prometheus.Registry
	Store     controllers.StorePinger
	Catalog   *catalog.Catalog
	FilterCfg catalog.FilterConfig
	Cart      *cartsvc.Manager
	Auth      *authsvc.Service
	Checkout  *checkoutsvc.Service
	Feed      *feedsvc.Service
	Messenger *messengersvc.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Store))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, d.Logger))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(d.Catalog, d.FilterCfg, d.Logger))
		r.Get("/categories", controllers.CatalogCategories(d.Catalog, d.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Config.JWT, d.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(d.Cart, d.Logger))
			r.Post("/items", cartcontrollers.CartAdd(d.Cart, d.Catalog, d.Logger))
			r.Delete("/items/{productId}", cartcontrollers.CartRemove(d.Cart, d.Logger))
			r.Delete("/items/{productId}/all", cartcontrollers.CartRemoveAll(d.Cart, d.Logger))
			r.Post("/clear", cartcontrollers.CartClear(d.Cart, d.Logger))
		})

		r.Post("/checkout", controllers.Checkout(d.Checkout, d.Logger))

		r.Route("/feed", func(r chi.Router) {
			r.Get("/", controllers.FeedList(d.Feed, d.Logger))
			r.Post("/{postId}/like", controllers.FeedToggleLike(d.Feed, d.Logger))
			r.Get("/{postId}/comments", controllers.FeedComments(d.Feed, d.Logger))
			r.Post("/{postId}/comments", controllers.FeedAddComment(d.Feed, d.Logger))
		})

		r.Route("/messenger", func(r chi.Router) {
			r.Get("/contacts", controllers.MessengerContacts(d.Messenger, d.Logger))
			r.Get("/contacts/{contactId}/messages", controllers.MessengerMessages(d.Messenger, d.Logger))
			r.Post("/contacts/{contactId}/messages", controllers.MessengerSend(d.Messenger, d.Logger))
		})
	})

	return r
}
