package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	database "github.com/adrianvt/finledger/internal/db"
	"github.com/adrianvt/finledger/internal/ledger/application"
	"github.com/adrianvt/finledger/internal/ledger/infrastructure"
	"github.com/adrianvt/finledger/internal/ledger/interfaces"
	"github.com/adrianvt/finledger/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

func loggingMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

type Server struct {
	router             *http.ServeMux
	categoryHandler    *interfaces.CategoryHandler
	ruleHandler        *interfaces.RuleHandler
	transactionHandler *interfaces.TransactionHandler
	transferHandler    *interfaces.TransferHandler
	dbService          *database.DBService
}

func NewServer(
	categoryHandler *interfaces.CategoryHandler,
	ruleHandler *interfaces.RuleHandler,
	transactionHandler *interfaces.TransactionHandler,
	transferHandler *interfaces.TransferHandler,
	dbService *database.DBService,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		categoryHandler:    categoryHandler,
		ruleHandler:        ruleHandler,
		transactionHandler: transactionHandler,
		transferHandler:    transferHandler,
		dbService:          dbService,
	}
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondError(w, http.StatusServiceUnavailable, health["error"])
		return
	}
	respondJSON(w, http.StatusOK, health)
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /api/ready", s.handleReady)

	s.router.HandleFunc("POST /api/categories", s.categoryHandler.CreateCategory)
	s.router.HandleFunc("GET /api/categories", s.categoryHandler.GetCategories)
	s.router.HandleFunc("GET /api/categories/{categoryID}/display", s.categoryHandler.GetDisplay)

	s.router.HandleFunc("POST /api/rules", s.ruleHandler.CreateRule)
	s.router.HandleFunc("GET /api/rules", s.ruleHandler.GetRules)
	s.router.HandleFunc("GET /api/rules/check", s.ruleHandler.CheckPattern)
	s.router.HandleFunc("POST /api/rules/{ruleID}/apply", s.ruleHandler.ApplyRetroactively)

	s.router.HandleFunc("POST /api/transactions/{transactionID}/category", s.transactionHandler.UpdateCategory)
	s.router.HandleFunc("POST /api/transactions/{transactionID}/splits", s.transactionHandler.Split)
	s.router.HandleFunc("DELETE /api/transactions/{transactionID}/splits", s.transactionHandler.RemoveSplits)

	s.router.HandleFunc("GET /api/transfers/candidates", s.transferHandler.FindCandidates)
	s.router.HandleFunc("POST /api/transfers/reconcile", s.transferHandler.Reconcile)
	s.router.HandleFunc("POST /api/transfers/mirror", s.transferHandler.CreateMirror)
}

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using system environment variables")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to the database")
	}
	defer dbService.Close()

	if err := database.Migrate(dbService.DB); err != nil {
		log.Fatal().Err(err).Msg("could not apply migrations")
	}

	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	ruleRepo := infrastructure.NewRuleRepository(dbService.DB)
	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)

	categoryService := application.NewCategoryService(categoryRepo)
	ruleService := application.NewRuleService(ruleRepo, transactionRepo, categoryService, log)
	splitService := application.NewSplitService(transactionRepo, accountRepo, categoryService, log)
	transferService := application.NewTransferService(transactionRepo, accountRepo, log)
	classifier := application.NewClassifierService(transactionRepo, categoryService, ruleService, splitService, transferService, log)

	server := NewServer(
		interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		interfaces.NewRuleHandler(classifier, respondJSON, respondError),
		interfaces.NewTransactionHandler(classifier, respondJSON, respondError),
		interfaces.NewTransferHandler(classifier, respondJSON, respondError),
		dbService,
	)
	server.registerRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info().Str("addr", addr).Msg("finledger listening")
	if err := http.ListenAndServe(addr, loggingMiddleware(log, server.router)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
