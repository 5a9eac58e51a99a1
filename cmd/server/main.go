package main

import (
	"net/http"

	"supernova/internal/api/handlers"
	"supernova/internal/app"
	"supernova/internal/auth"
	"supernova/internal/config"
	"supernova/internal/logger"
	"supernova/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func main() {
	// Local runs keep settings in a .env file; missing is fine
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file found, using environment")
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	database, err := postgres.NewPostgresDB(appConfig.Database)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	cfg := app.NewConfig(database, appConfig)
	tokens := auth.NewManager(appConfig.Auth)
	h := handlers.NewHandlers(cfg, tokens)

	mux := http.NewServeMux()

	// CORS preflight handler for OPTIONS requests
	corsHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusOK)
	}

	// Public routes
	mux.HandleFunc("POST /api/auth/register", enableCORS(h.RegisterHandler))
	mux.HandleFunc("OPTIONS /api/auth/register", corsHandler)
	mux.HandleFunc("POST /api/auth/login", enableCORS(h.LoginHandler))
	mux.HandleFunc("OPTIONS /api/auth/login", corsHandler)
	mux.HandleFunc("GET /api/health", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	mux.HandleFunc("OPTIONS /api/health", corsHandler)

	// Signed-in only routes
	mux.HandleFunc("POST /api/auth/logout", enableCORS(tokens.Require(h.LogoutHandler)))
	mux.HandleFunc("OPTIONS /api/auth/logout", corsHandler)
	mux.HandleFunc("GET /api/auth/me", enableCORS(tokens.Require(h.MeHandler)))
	mux.HandleFunc("OPTIONS /api/auth/me", corsHandler)

	// Routes that work anonymously but pick up identity when a token is sent
	mux.HandleFunc("POST /api/search", enableCORS(tokens.Optional(h.SearchHandler)))
	mux.HandleFunc("OPTIONS /api/search", corsHandler)
	mux.HandleFunc("GET /api/search/last", enableCORS(tokens.Optional(h.LastSearchHandler)))
	mux.HandleFunc("OPTIONS /api/search/last", corsHandler)

	mux.HandleFunc("GET /api/chat/messages", enableCORS(tokens.Optional(h.GetMessagesHandler)))
	mux.HandleFunc("OPTIONS /api/chat/messages", corsHandler)
	mux.HandleFunc("GET /api/chat/stats", enableCORS(tokens.Optional(h.GetStatsHandler)))
	mux.HandleFunc("OPTIONS /api/chat/stats", corsHandler)
	mux.HandleFunc("GET /api/chat/export", enableCORS(tokens.Optional(h.ExportChatHandler)))
	mux.HandleFunc("OPTIONS /api/chat/export", corsHandler)
	mux.HandleFunc("DELETE /api/chat", enableCORS(tokens.Optional(h.ClearChatHandler)))
	mux.HandleFunc("OPTIONS /api/chat", corsHandler)

	mux.HandleFunc("GET /api/history", enableCORS(tokens.Optional(h.GetHistoryHandler)))
	mux.HandleFunc("DELETE /api/history", enableCORS(tokens.Optional(h.ClearHistoryHandler)))
	mux.HandleFunc("OPTIONS /api/history", corsHandler)
	mux.HandleFunc("DELETE /api/history/{id}", enableCORS(tokens.Optional(h.DeleteHistoryEntryHandler)))
	mux.HandleFunc("OPTIONS /api/history/{id}", corsHandler)

	mux.HandleFunc("POST /api/papers/summarize", enableCORS(tokens.Optional(h.SummarizePaperHandler)))
	mux.HandleFunc("OPTIONS /api/papers/summarize", corsHandler)

	mux.HandleFunc("POST /api/quiz/generate", enableCORS(tokens.Optional(h.GenerateQuizHandler)))
	mux.HandleFunc("OPTIONS /api/quiz/generate", corsHandler)
	mux.HandleFunc("POST /api/quiz/answer", enableCORS(tokens.Optional(h.AnswerQuizHandler)))
	mux.HandleFunc("OPTIONS /api/quiz/answer", corsHandler)
	mux.HandleFunc("GET /api/quiz/results", enableCORS(tokens.Optional(h.QuizResultsHandler)))
	mux.HandleFunc("OPTIONS /api/quiz/results", corsHandler)
	mux.HandleFunc("DELETE /api/quiz", enableCORS(tokens.Optional(h.ClearQuizHandler)))
	mux.HandleFunc("OPTIONS /api/quiz", corsHandler)

	mux.HandleFunc("GET /api/sources/export", enableCORS(tokens.Optional(h.ExportSourcesHandler)))
	mux.HandleFunc("OPTIONS /api/sources/export", corsHandler)

	port := appConfig.Server.Port
	logger.Log.WithField("port", port).Info("Server starting")

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}
