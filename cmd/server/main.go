package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/codeverse-ai/codeverse-backend/internal/config"
	"github.com/codeverse-ai/codeverse-backend/internal/database"
	"github.com/codeverse-ai/codeverse-backend/internal/handlers"
	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/repository"
	"github.com/codeverse-ai/codeverse-backend/internal/routes"
	"github.com/codeverse-ai/codeverse-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("⚠️  WARNING: SMTP credentials not set. Welcome and OTP emails will fail.")
	}
	if cfg.GroqAPIKey == "" {
		log.Println("⚠️  WARNING: GROQ_API_KEY not set. The AI assistant will not work.")
	}

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (mask password in log)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo()

	// Repositories
	userRepo := repository.NewUserRepository(database.PostgresDB)
	resetRepo := repository.NewResetRepository(database.PostgresDB)
	loginRepo := repository.NewLoginRepository(database.PostgresDB)
	projectRepo := repository.NewProjectRepository(database.PostgresDB)
	flowStore := repository.NewResetFlowStore(database.RedisClient)
	cooldownStore := repository.NewCooldownStore(database.RedisClient)

	// Services
	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		smtpPort = 587
	}
	mailer := services.NewSMTPMailer(cfg.SMTPHost, smtpPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	sessions := services.NewSessionService(database.RedisClient)
	auth := services.NewAuthService(userRepo, loginRepo, mailer)
	reset := services.NewResetService(userRepo, resetRepo, flowStore, cooldownStore, mailer, sessions)
	streaks := services.NewStreakService(loginRepo)

	conversations := services.NewMongoConversationStore(database.DB)
	if err := conversations.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB assistant indexes: %v", err)
	} else {
		log.Println("✅ MongoDB assistant indexes ensured")
	}
	chat := services.NewChatService(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL, conversations)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(auth, sessions, userRepo),
		Reset:     handlers.NewResetHandler(reset),
		Dashboard: handlers.NewDashboardHandler(projectRepo, streaks),
		Projects:  handlers.NewProjectHandler(projectRepo),
		Chat:      handlers.NewChatHandler(chat, sessions),
		Sessions:  sessions,
	})

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  POST /api/auth/forgot-password")
	log.Println("  POST /api/auth/verify-otp")
	log.Println("  POST /api/auth/resend-otp")
	log.Println("  POST /api/auth/reset-password")
	log.Println("  GET  /api/auth/me")
	log.Println("  GET  /api/dashboard/stats")
	log.Println("  GET  /api/dashboard/streak")
	log.Println("  GET  /api/dashboard/tips")
	log.Println("  GET  /api/projects")
	log.Println("  POST /api/projects")
	log.Println("  POST /api/assistant/message")
	log.Println("  GET  /ws/assistant")

	log.Printf("🚀 CodeVerse backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
