package handlers

import (
	"github.com/Yashraj221B/chemical-management-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP surface. Paths mirror the public API
// contract: reads are public, writes sit behind the bearer-token gate.
func RegisterRoutes(router *gin.Engine, api *API) {
	router.GET("/", api.HealthCheck)
	router.GET("/api/status", api.MonitorStatus)

	auth := router.Group("/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.GET("/me", middleware.AuthMiddleware(), api.Me)
		auth.PUT("/me", middleware.AuthMiddleware(), api.UpdateMe)
	}

	chemicals := router.Group("/chemicals")
	{
		chemicals.GET("/", api.ListChemicals)
		chemicals.GET("/search/", api.SearchChemicals)
		chemicals.GET("/formula/:formula", api.GetChemicalsByFormula)
		chemicals.GET("/location/:location", api.GetChemicalsByLocation)
		chemicals.GET("/by-bottle/:bottle_number", api.GetChemicalByBottleNumber)
		chemicals.GET("/next-bottle-number", api.NextBottleNumber)
		chemicals.GET("/stats/", api.GetStatistics)
		chemicals.GET("/shelves/", api.ListShelves)
		chemicals.GET("/shelves/:id", api.GetShelf)
		chemicals.GET("/:id", api.GetChemical)

		protected := chemicals.Group("", middleware.AuthMiddleware())
		{
			protected.POST("/", api.CreateChemical)
			protected.PUT("/:id", api.UpdateChemical)
			protected.DELETE("/:id", api.DeleteChemical)
			protected.POST("/validate-bottle", api.ValidateBottleNumber)
			protected.POST("/shelves/", api.CreateShelf)
			protected.PUT("/shelves/:id", api.UpdateShelf)
			protected.DELETE("/shelves/:id", api.DeleteShelf)
		}
	}
}
