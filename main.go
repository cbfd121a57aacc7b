package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"citylens-be/classifier"
	"citylens-be/config"
	"citylens-be/controllers"
	"citylens-be/events"
	"citylens-be/lifecycle"
	"citylens-be/routes"
	"citylens-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	config.ConnectRedis()
	storage.InitMinio()

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		vision, err := classifier.New(classifier.Config{
			APIKey:  apiKey,
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
			Model:   os.Getenv("GEMINI_MODEL"),
		})
		if err != nil {
			log.Fatalf("Failed to create classifier client: %v", err)
		}
		controllers.SetClassifier(vision)
	} else {
		log.Println("GEMINI_API_KEY not set, /api/analyze disabled")
	}

	eventStream := events.NewRedisPublisher(config.RedisClient)
	controllers.SetEventStream(eventStream)
	controllers.SetLifecycleManager(lifecycle.NewManager(lifecycle.NewMongoStore(db), eventStream))

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.WorkflowRoutes(r)
	routes.MediaRoutes(r)
	routes.UserRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
