package routes

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/controllers"
	"github.com/rplutino-work/barbershop-brothers/services"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

func SetupRouter(aggregator *services.Aggregator, closings *services.ClosingService) *gin.Engine {
	r := gin.Default()

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	statsController := controllers.NewStatsController(aggregator)
	closingController := controllers.NewWeeklyClosingController(closings)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Barber registry
		barbers := api.Group("/barbers")
		{
			barbers.GET("", controllers.GetBarbers)
			barbers.POST("", controllers.CreateBarber)
			barbers.PUT("/:id", controllers.UpdateBarber)
			barbers.DELETE("/:id", controllers.DeleteBarber)
		}

		// Service catalog
		catalog := api.Group("/services")
		{
			catalog.POST("", controllers.CreateService)
			catalog.GET("", controllers.GetServices)
			catalog.GET("/:id", controllers.GetService)
			catalog.PUT("/:id", controllers.UpdateService)
			catalog.DELETE("/:id", controllers.DeleteService)
		}

		// Clients
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.GET("/:id/history", controllers.GetClientHistory)
		}

		// Service timer
		active := api.Group("/active-service")
		{
			active.GET("", controllers.GetActiveServices)
			active.POST("", controllers.StartActiveService)
			active.DELETE("", controllers.StopActiveService)
		}

		// Payments
		api.POST("/payment", controllers.CreatePayment)
		api.PUT("/payment/:id", controllers.UpdatePayment)
		api.GET("/payments", controllers.GetPayments)
		api.GET("/payments/barber/:id", controllers.GetBarberPayments)

		// Stats
		api.GET("/stats", statsController.GetShopStats)
		api.GET("/stats/barber/:id", statsController.GetBarberStats)

		// Weekly closings
		closingsGroup := api.Group("/weekly-closing")
		{
			closingsGroup.GET("", closingController.ListClosings)
			closingsGroup.POST("/auto", closingController.RunAutoClosing)
			closingsGroup.PUT("/:id/pay", closingController.MarkClosingPaid)
		}
	}

	return r
}
