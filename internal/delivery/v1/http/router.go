package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "github.com/soil2spoon/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

type UseCases struct {
	Catalog usecase.CatalogUC
	Review  usecase.ReviewUC
	Cart    usecase.CartUC
	Order   usecase.OrderUC
	Address usecase.AddressUC
	Auth    usecase.AuthUC
}

func (r *Router) Init(uc UseCases, auth *AuthMiddleware) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerAuthRoutes(v1, NewAuthHandler(uc.Auth, r.logger), auth)
		registerCatalogRoutes(v1, NewProductHandler(uc.Catalog, r.logger), NewReviewHandler(uc.Review, r.logger), auth)
		registerCartRoutes(v1, NewCartHandler(uc.Cart, r.logger), auth)
		registerOrderRoutes(v1, NewOrderHandler(uc.Order, r.logger), auth)
		registerAddressRoutes(v1, NewAddressHandler(uc.Address, r.logger), auth)
		registerAdminRoutes(v1, NewProductHandler(uc.Catalog, r.logger), NewReviewHandler(uc.Review, r.logger), auth)
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler, auth *AuthMiddleware) {
	router.Route("/auth", func(a chi.Router) {
		a.Post("/signup", h.signup)
		a.Post("/login", h.login)
		a.Post("/forgot-password", h.forgotPassword)
		a.Post("/reset-password", h.resetPassword)
		a.With(auth.Require).Get("/me", h.me)
	})
}

func registerCatalogRoutes(router chi.Router, pr *ProductHandler, rv *ReviewHandler, auth *AuthMiddleware) {
	router.Get("/categories", pr.listCategories)

	router.Route("/products", func(p chi.Router) {
		p.Get("/", pr.listProducts)
		p.Get("/featured", pr.listFeatured)
		p.Get("/trending", pr.listTrending)
		p.Get("/{product}", pr.getProduct)

		// {product} здесь — числовой ID товара
		p.Route("/{product}/reviews", func(rev chi.Router) {
			rev.With(auth.Optional).Get("/", rv.listReviews)
			rev.With(auth.Require).Post("/", rv.createReview)
			rev.With(auth.Require).Put("/{reviewId}", rv.updateReview)
			rev.With(auth.Require).Delete("/{reviewId}", rv.deleteReview)
		})
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler, auth *AuthMiddleware) {
	router.Route("/cart", func(c chi.Router) {
		c.Use(auth.Require)
		c.Get("/", h.getCart)
		c.Put("/", h.setCart)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler, auth *AuthMiddleware) {
	router.Route("/orders", func(o chi.Router) {
		o.Use(auth.Require)
		o.Post("/", h.checkout)
		o.Get("/", h.listOrders)
	})
}

func registerAddressRoutes(router chi.Router, h *AddressHandler, auth *AuthMiddleware) {
	router.Route("/addresses", func(a chi.Router) {
		a.Use(auth.Require)
		a.Get("/", h.listAddresses)
		a.Post("/", h.createAddress)
		a.Put("/{addressId}", h.updateAddress)
		a.Delete("/{addressId}", h.deleteAddress)
	})
}

func registerAdminRoutes(router chi.Router, h *ProductHandler, rv *ReviewHandler, auth *AuthMiddleware) {
	router.Route("/admin", func(a chi.Router) {
		a.Use(auth.Require, auth.RequireAdmin)
		a.Post("/products", h.saveProduct)
		a.Delete("/products/{productId}", h.deleteProduct)
		a.Delete("/products/{product}/reviews/{reviewId}", rv.adminDeleteReview)
	})
}
