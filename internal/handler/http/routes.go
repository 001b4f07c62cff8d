package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withCORS, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.root)
	router.Get("/version", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users", h.createUser)
		r.Get("/products", h.listProducts)
		r.Get("/latest-products", h.listLatestProducts)
		r.Get("/products/{id}", h.getProduct)
	})

	// routes that require authorization only in strict mode
	router.Group(func(r chi.Router) {
		r.Use(h.strictly)
		r.Patch("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)
		r.Post("/bids", h.createBid)
		r.Delete("/bids/{id}", h.deleteBid)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/getToken", h.getToken)
		r.Post("/products", h.createProduct)
		r.Get("/bids", h.listBids)
		r.Get("/products/bids/{productId}", h.listProductBids)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
