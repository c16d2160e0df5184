package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/routes"
	"github.com/rplutino-work/barbershop-brothers/services"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.ActiveService{},
		&models.Payment{},
		&models.WeeklyClosing{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	loc := config.LoadTimezone()
	aggregator := services.NewAggregator(config.DB, loc, utils.SystemClock)
	closings := services.NewClosingService(config.DB, aggregator, loc, utils.SystemClock)
	closings.StartScheduler()

	r := routes.SetupRouter(aggregator, closings)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
