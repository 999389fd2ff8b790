package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Public auth endpoints are limited per client IP; everything
// behind authentication shares a per-user budget. Logout is deliberately not
// rate limited so a client can always release its credential.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	registerLimit := apiMiddleware.NewIPRateLimit(app.limiter, "register", app.config.RateLimit.Register)
	loginLimit := apiMiddleware.NewIPRateLimit(app.limiter, "login", app.config.RateLimit.Login)
	userLimit := apiMiddleware.NewUserRateLimit(app.limiter, "api", app.config.RateLimit.Authenticated)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.With(registerLimit.Handler).Post("/register", authHandler.Register)
		r.With(loginLimit.Handler).Post("/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(userLimit.Handler)

				r.Get("/user", authHandler.Me)

				r.Get("/tasks", taskHandler.List)
				r.Post("/tasks", taskHandler.Create)
				r.Get("/tasks/{id}", taskHandler.Show)
				r.Put("/tasks/{id}", taskHandler.Update)
				r.Patch("/tasks/{id}", taskHandler.Update)
				r.Delete("/tasks/{id}", taskHandler.Delete)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
