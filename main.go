package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/middleware"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/routes"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if os.Getenv("GIN_MODE") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	config.ConnectDatabase()

	smsClient := utils.NewSMSClient()
	bus := services.NewEventBus()

	location, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}
	s := gocron.NewScheduler(location)
	s.Every(1).Day().At("09:00").Do(func() {
		utils.CheckOverdueDebtors(smsClient)
	})
	s.StartAsync()

	routes.InitializeRoutes(r, bus, smsClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
