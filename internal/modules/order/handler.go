package order

import (
	"encoding/json"
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the buyer order-history endpoint.
type Handler struct {
	service     Service
	requireAuth func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.listMine)
	})
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	buyer, ok := auth.BuyerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]interface{}{"error": "unauthorized"})
		return
	}
	orders, err := h.service.ListByBuyer(r.Context(), buyer)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error WHile Geting Orders",
			"error":   err.Error(),
		})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
