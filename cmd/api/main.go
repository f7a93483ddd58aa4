package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Yashraj221B/chemical-management-backend/internal/database"
	"github.com/Yashraj221B/chemical-management-backend/internal/handlers"
	"github.com/Yashraj221B/chemical-management-backend/internal/middleware"
	"github.com/Yashraj221B/chemical-management-backend/internal/monitoring"
	"github.com/Yashraj221B/chemical-management-backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error: ", err)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		log.Fatal("Failed to create tables: ", err)
	}

	api := handlers.NewAPI(db, monitoring.NewService(db, time.Now()))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	handlers.RegisterRoutes(router, api)

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Println("Chemical inventory API starting on :" + port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
