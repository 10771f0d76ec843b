package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Agent
		r.Get("/agent/report", h.AgentReport)
		r.Post("/agent/goals", h.SetGoal)
		r.Get("/agent/goals", h.ListGoals)
		r.Get("/agent/goals/{goalID}", h.GetGoal)
		r.Post("/agent/goals/{goalID}/plan", h.PlanGoal)
		r.Post("/agent/goals/{goalID}/execute", h.ExecuteGoal)
		r.Post("/agent/goals/{goalID}/evaluate", h.EvaluateGoal)

		// Campaigns
		r.Get("/campaigns", h.ListCampaigns)
		r.Get("/campaigns/summary", h.CampaignSummary)
		r.Get("/campaigns/{campaignID}", h.GetCampaign)
		r.Get("/campaigns/{campaignID}/overview", h.CampaignOverview)
		r.Post("/campaigns/{campaignID}/launch", h.LaunchCampaign)
		r.Post("/campaigns/{campaignID}/pause", h.PauseCampaign)
		r.Post("/campaigns/{campaignID}/complete", h.CompleteCampaign)

		// Customers
		r.Get("/customers/stats", h.CustomerStats)
		r.Get("/customers", h.ListCustomers)

		// Emails
		r.Get("/emails", h.ListEmails)
		r.Get("/emails/recent", h.RecentEmails)
		r.Get("/emails/campaign/{campaignID}", h.CampaignEmails)

		// Social posts
		r.Get("/posts", h.ListPosts)
		r.Get("/posts/recent", h.RecentPosts)
		r.Get("/posts/campaign/{campaignID}", h.CampaignPosts)
		r.Get("/posts/{postID}/comments", h.PostComments)
		r.Get("/posts/sentiment/{campaignID}", h.CampaignSentiment)
		r.Post("/posts/{postID}/image", h.UpdatePostImage)
		r.Post("/posts/{postID}/publish", h.PublishPost)

		// Image generation
		r.Post("/images/generate", h.GenerateImage)
	})

	return r
}
