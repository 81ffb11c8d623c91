package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/smartcram/smartcram-api/ai"
	"github.com/smartcram/smartcram-api/config"
	"github.com/smartcram/smartcram-api/generation"
	"github.com/smartcram/smartcram-api/handlers"
	"github.com/smartcram/smartcram-api/logger"
	"github.com/smartcram/smartcram-api/middleware"
)

func init() {
	// Load .env file outside of production environments
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	db, err := config.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("connect database", "error", err)
	}

	completer, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		sugar.Fatalw("init completion client", "error", err)
	}

	h := &handlers.DBHandler{
		DB:  db,
		Gen: generation.NewGenerator(completer),
		Cfg: cfg,
		Log: sugar,
	}
	authMW := &middleware.Auth{DB: db, Secret: cfg.JWTSecretKey}

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", h.Health)

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/me", authMW.RequireUser(h.Me))
	mux.HandleFunc("POST /api/auth/change-password", authMW.RequireUser(h.ChangePassword))

	// Flashcards
	mux.HandleFunc("POST /api/flashcards/generate", authMW.RequireUser(h.GenerateFlashcards))
	mux.HandleFunc("GET /api/flashcards", authMW.RequireUser(h.ListFlashcardSets))
	mux.HandleFunc("GET /api/flashcards/{setID}", authMW.RequireUser(h.GetFlashcardSet))
	mux.HandleFunc("PUT /api/flashcards/{setID}", authMW.RequireUser(h.UpdateFlashcardSet))
	mux.HandleFunc("DELETE /api/flashcards/{setID}", authMW.RequireUser(h.DeleteFlashcardSet))
	mux.HandleFunc("GET /api/flashcards/{setID}/export", authMW.RequireUser(h.ExportFlashcardSet))
	mux.HandleFunc("POST /api/flashcards/import", authMW.RequireUser(h.ImportFlashcardSet))

	// Quiz
	mux.HandleFunc("POST /api/quiz/generate", authMW.RequireUser(h.GenerateQuiz))
	mux.HandleFunc("GET /api/quiz", authMW.RequireUser(h.ListQuizzes))
	mux.HandleFunc("GET /api/quiz/{quizID}", authMW.RequireUser(h.GetQuiz))
	mux.HandleFunc("PUT /api/quiz/{quizID}", authMW.RequireUser(h.UpdateQuiz))
	mux.HandleFunc("DELETE /api/quiz/{quizID}", authMW.RequireUser(h.DeleteQuiz))
	mux.HandleFunc("POST /api/quiz/{quizID}/submit", authMW.RequireUser(h.SubmitQuiz))
	mux.HandleFunc("GET /api/quiz/{quizID}/export", authMW.RequireUser(h.ExportQuiz))
	mux.HandleFunc("POST /api/quiz/import", authMW.RequireUser(h.ImportQuiz))

	// Generic import that detects the document shape.
	mux.HandleFunc("POST /api/import", authMW.RequireUser(h.ImportDocument))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(zl)(mux))

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
		// Generation requests wait on the completion service, so the write
		// timeout must exceed the generation timeout.
		WriteTimeout: cfg.GenTimeout + 15*time.Second,
	}

	sugar.Infow("server starting", "addr", server.Addr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
