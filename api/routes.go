package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches all public, authenticated and admin routes.
func (h *ApiHandler) RegisterRoutes(router *gin.Engine) {
	// Public reads.
	public := router.Group("/api")
	{
		public.GET("/events", h.GetEventsHandler)
		public.GET("/event/:id", h.GetEventHandler)
		public.GET("/partners", h.GetPartnersHandler)
		public.GET("/partner/:id", h.GetPartnerHandler)
	}

	admin := router.Group("/api/admin")

	// Auth endpoints stay reachable without a token.
	admin.POST("/signup", h.SignupHandler)
	admin.POST("/login", h.LoginHandler)
	admin.POST("/refresh", h.RefreshHandler)

	// Any authenticated user can read and edit their own profile.
	user := admin.Group("/user", h.App.RequireAuth())
	{
		user.GET("/me", h.GetCurrentUserHandler)
		user.PUT("/me", h.UpdateCurrentUserHandler)
	}

	// Everything below requires the admin flag.
	guarded := admin.Group("", h.App.RequireAdmin(h.Store))
	{
		guarded.POST("/event", h.CreateEventHandler)
		guarded.PATCH("/event/:id", h.UpdateEventHandler)

		guarded.POST("/partner", h.CreatePartnerHandler)
		guarded.PATCH("/partner/:id", h.UpdatePartnerHandler)
		guarded.DELETE("/partner/:id", h.DeletePartnerHandler)

		guarded.GET("/services", h.GetServicesHandler)
		guarded.GET("/service/:id", h.GetServiceHandler)
		guarded.POST("/service", h.CreateServiceHandler)
		guarded.PATCH("/service/:id", h.UpdateServiceHandler)
		guarded.DELETE("/service/:id", h.DeleteServiceHandler)

		guarded.GET("/profiles", h.GetProfilesHandler)
		guarded.GET("/profile/:id", h.GetProfileHandler)
		guarded.PATCH("/profile/:id", h.UpdateProfileHandler)
	}
}
