package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ideiatech/smartleader-api/internal/api"
	apiMiddleware "github.com/ideiatech/smartleader-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.personStore, app.jwtService, app.hasher, app.config.Auth)
	workItemHandler := api.NewWorkItemHandler(app.workItemStore, app.personStore, app.txRunner, app.logger)
	wellbeingHandler := api.NewWellbeingHandler(app.wellbeingStore, app.wellbeingService, app.logger)
	assignmentHandler := api.NewAssignmentHandler(app.assignmentService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Work item endpoints
			r.Post("/work-items", workItemHandler.Create)
			r.Get("/work-items", workItemHandler.ListMine)
			r.Get("/work-items/{id}", workItemHandler.Get)
			r.Delete("/work-items/{id}", workItemHandler.Delete)
			r.Post("/work-items/{id}/start", workItemHandler.Start)
			r.Post("/work-items/{id}/complete", workItemHandler.Complete)
			r.Post("/work-items/{id}/block", workItemHandler.Block)
			r.Post("/work-items/{id}/cancel", workItemHandler.Cancel)

			// Wellbeing check-in endpoints
			r.Post("/wellbeing/checks", wellbeingHandler.SubmitCheck)
			r.Get("/wellbeing/checks", wellbeingHandler.ListMyChecks)

			// AI assignment endpoints
			r.Post("/ai/recommend-assignee", assignmentHandler.RecommendAssignee)
			r.Post("/ai/auto-distribute", assignmentHandler.AutoDistribute)
			r.Post("/ai/rebalance", assignmentHandler.Rebalance)

			// AI wellbeing endpoints
			r.Post("/ai/wellbeing/analyze", wellbeingHandler.Analyze)
			r.Post("/ai/wellbeing/team-summary", wellbeingHandler.TeamSummary)
			r.Post("/ai/wellbeing/burnout-pattern", wellbeingHandler.BurnoutPattern)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
