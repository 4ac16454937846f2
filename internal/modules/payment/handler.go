package payment

import (
	"encoding/json"
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the payment HTTP endpoints.
type Handler struct {
	service     Service
	requireAuth func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Get("/token", h.token)
		r.With(h.requireAuth).Post("/", h.process)
	})
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Token(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	buyer, ok := auth.BuyerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]interface{}{"error": "unauthorized"})
		return
	}
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := h.service.Process(r.Context(), buyer, req); err != nil {
		respond(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
