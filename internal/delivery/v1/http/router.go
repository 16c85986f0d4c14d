package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/storefront/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jimlawless/whereami"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router  *chi.Mux
	logger  logger.Logger
	limiter *RateLimiter
}

func NewRouter(router *chi.Mux, limiter *RateLimiter, logger logger.Logger) *Router {
	return &Router{router: router, limiter: limiter, logger: logger}
}

func (r *Router) Init(storefrontUC usecase.StorefrontUC) error {
	views, err := NewViews()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	static, err := staticHandler()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(r.accessLog)
	r.router.Use(middleware.Recoverer)

	handler := NewStorefrontHandler(storefrontUC, views, r.logger)

	r.router.Get("/", handler.redirectToGrid)
	r.router.Handle("/static/*", static)
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	registerPageRoutes(r.router, handler, r.limiter)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerAPIRoutes(v1, handler)
	})

	return nil
}

func registerPageRoutes(router chi.Router, handler *StorefrontHandler, limiter *RateLimiter) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", handler.showGrid)
		pr.Get("/{id}", handler.showProduct)
		pr.With(limiter.Middleware).Post("/{id}/cart", handler.addToCart)
	})
}

func registerAPIRoutes(router chi.Router, handler *StorefrontHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", handler.listProducts)
		pr.Get("/{id}", handler.getProduct)
	})
}

// accessLog пишет одну строку на запрос с request id.
func (r *Router) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Infof("%s %s %d %dB %s request_id=%s",
			req.Method, req.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
