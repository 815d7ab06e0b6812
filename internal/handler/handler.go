package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/cart-pricing-engine/internal/pricing"
)

// Handler serves the pricing API over HTTP. All endpoints are thin JSON
// adapters around the pricing service.
type Handler struct {
	pricing *pricing.Service
}

// NewHandler creates a Handler over the pricing service.
func NewHandler(svc *pricing.Service) *Handler {
	return &Handler{pricing: svc}
}

// NewRouter builds the HTTP router for the pricing API.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", h.PriceQuote)
		r.Post("/quotes/advanced", h.PriceAdvanced)
		r.Post("/vouchers/validate", h.ValidateVoucher)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if code >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("request failed", zap.Int("status", code), zap.String("error", msg))
	}
	writeJSON(w, code, errorResponse{Error: msg})
}
