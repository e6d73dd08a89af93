package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Barty-sim/foodgram-project-react/internal/telemetry"
)

// buildRouter constructs the chi mux with all routes wired.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.metricsMiddleware)
	r.Use(s.logMiddleware)
	if s.cfg.Telemetry.Enabled {
		r.Use(telemetry.Middleware(s.cfg.Telemetry.ServiceName))
	}

	// Operational endpoints, no auth required.
	r.Get("/health", s.handleHealth())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Stored recipe images.
	r.Handle("/media/*", http.StripPrefix("/media/", s.media.Handler()))

	// The recipe API. Every route resolves the token to a user when one is
	// presented; handlers that need auth enforce it via requireAuth.
	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers())
			r.Post("/", s.handleRegister())
			r.Get("/me/", s.handleMe())
			r.Post("/set_password/", s.handleSetPassword())
			r.Get("/subscriptions/", s.handleSubscriptions())
			r.Get("/{id}/", s.handleUserDetail())
			r.Post("/{id}/subscribe/", s.handleSubscribe())
			r.Delete("/{id}/subscribe/", s.handleUnsubscribe())
		})

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login/", s.handleLogin())
			r.Post("/logout/", s.handleLogout())
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags())
			r.Get("/{id}/", s.handleTagDetail())
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", s.handleListIngredients())
			r.Get("/{id}/", s.handleIngredientDetail())
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.handleListRecipes())
			r.Post("/", s.handleCreateRecipe())
			r.Get("/download_shopping_cart/", s.handleDownloadShoppingCart())
			r.Get("/{id}/", s.handleRecipeDetail())
			r.Patch("/{id}/", s.handleUpdateRecipe())
			r.Delete("/{id}/", s.handleDeleteRecipe())
			r.Post("/{id}/favorite/", s.handleAddFavorite())
			r.Delete("/{id}/favorite/", s.handleRemoveFavorite())
			r.Post("/{id}/shopping_cart/", s.handleAddToCart())
			r.Delete("/{id}/shopping_cart/", s.handleRemoveFromCart())
		})
	})

	// Admin endpoints require auth and are not mounted if none is configured.
	if s.cfg.Admin.IsConfigured() {
		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(s.cfg.Admin))
			r.Route("/admin", func(r chi.Router) {
				r.Get("/status", s.handleAdminStatus())
				r.Get("/users", s.handleAdminListUsers())
				r.Delete("/users/{id}", s.handleAdminDeleteUser())
				r.Get("/recipes", s.handleAdminListRecipes())
				r.Delete("/recipes/{id}", s.handleAdminDeleteRecipe())
			})
		})
	}

	return r
}
