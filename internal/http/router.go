package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/denred/online-store-backend/internal/middleware"
)

func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CORS(corsOrigins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/", h.ListOrders)
			r.Get("/{orderId}", h.GetOrder)
			r.Put("/{orderId}", h.UpdateOrder)
			r.Delete("/{orderId}", h.DeleteOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Post("/search", h.SearchProducts)
			r.Get("/{productId}", h.GetProduct)
			r.Put("/{productId}", h.UpdateProduct)
			r.Delete("/{productId}", h.DeleteProduct)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", h.SignUp)
			r.Post("/sign-in", h.SignIn)
		})

		r.Get("/users/{userId}", h.GetUser)

		r.Route("/files", func(r chi.Router) {
			r.Post("/", h.UploadFile)
			r.Get("/{fileId}/url", h.FileURL)
			r.Delete("/{fileId}", h.DeleteFile)
		})

		r.Post("/payments", h.CreatePayment)

		r.Route("/subscribers", func(r chi.Router) {
			r.Post("/subscribe", h.Subscribe)
			r.Post("/unsubscribe", h.Unsubscribe)
			r.Get("/status", h.SubscriptionStatus)
			r.Get("/preferences", h.GetPreferences)
			r.Put("/preferences", h.SetPreferences)
		})
	})

	return r
}
