package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"moneymap/pkg/ledger"
)

// NewRouter builds the HTTP API router. Every route under /api except the
// health check requires a caller identity; authentication itself happens
// upstream, this layer only trusts the X-User-ID header it is handed.
func NewRouter(core *ledger.Core, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(requestLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}))

	h := &handler{core: core}

	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		// Accounts
		r.Get("/api/accounts", h.getAccounts)
		r.Post("/api/accounts", h.addAccount)
		r.Get("/api/accounts/{id}", h.getAccount)
		r.Get("/api/account-types", h.getAccountTypes)

		// Transactions
		r.Get("/api/transactions", h.getTransactions)
		r.Post("/api/transactions", h.addTransaction)
		r.Get("/api/transactions/{id}", h.getTransaction)
		r.Put("/api/transactions/{id}", h.updateTransaction)
		r.Delete("/api/transactions/{id}", h.deleteTransaction)
		r.Post("/api/transactions/import", h.importTransactions)
		r.Get("/api/transaction-types", h.getTransactionTypes)
		r.Post("/api/transaction-types", h.addTransactionType)

		// Categories
		r.Get("/api/categories", h.getCategories)
		r.Post("/api/categories", h.addCategory)
		r.Get("/api/categories/{id}/subcategories", h.getSubCategories)
		r.Post("/api/categories/{id}/subcategories", h.addSubCategory)
		r.Delete("/api/subcategories/{id}", h.deleteSubCategory)

		// Portfolio
		r.Get("/api/holdings", h.getHoldings)
		r.Get("/api/portfolio", h.getPortfolio)
		r.Get("/api/portfolio/history", h.getNetWorthHistory)

		// Assets and prices
		r.Get("/api/assets", h.getAssets)
		r.Post("/api/assets", h.addAsset)
		r.Post("/api/prices", h.recordPrice)
		r.Post("/api/prices/refresh", h.refreshPrices)

		// Analytics
		r.Get("/api/analytics/spending", h.getSpendingByCategory)
	})

	return r
}

type handler struct {
	core *ledger.Core
}

type contextKey string

const userIDKey contextKey = "user_id"

// requireUser rejects requests without a parseable X-User-ID header.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
