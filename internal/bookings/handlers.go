package bookings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stayfinder/stayfinder/internal/auth/session"
	"github.com/stayfinder/stayfinder/internal/utils"
)

// Handler exposes booking history and checkout over HTTP. All routes are
// registered behind the session-requiring middleware.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the booking routes, each wrapped with the given
// middleware (session enforcement).
func (h *Handler) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/bookings", wrap(http.HandlerFunc(h.HandleList)))
	mux.Handle("POST /api/bookings", wrap(http.HandlerFunc(h.HandleCheckout)))
	mux.Handle("GET /api/bookings/{id}", wrap(http.HandlerFunc(h.HandleGet)))
	mux.Handle("DELETE /api/bookings/{id}", wrap(http.HandlerFunc(h.HandleCancel)))
}

// HandleList handles GET /api/bookings with an optional status filter
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", "Authentication required", http.StatusUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), sess.Sub, Status(r.URL.Query().Get("status")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, map[string]interface{}{"bookings": list})
}

// HandleGet handles GET /api/bookings/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", "Authentication required", http.StatusUnauthorized)
		return
	}

	booking, err := h.service.Get(r.Context(), sess.Sub, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, booking)
}

// HandleCheckout handles POST /api/bookings
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid_request", "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.service.Checkout(r.Context(), sess.Sub, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, booking)
}

// HandleCancel handles DELETE /api/bookings/{id}. The booking is kept with
// status Cancelled, not removed.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", "Authentication required", http.StatusUnauthorized)
		return
	}

	booking, err := h.service.Cancel(r.Context(), sess.Sub, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, booking)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.WriteError(w, "not_found", "Booking not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		utils.WriteError(w, "invalid_request", err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotCancellable):
		utils.WriteError(w, "conflict", err.Error(), http.StatusConflict)
	default:
		utils.WriteError(w, "internal_error", "Something went wrong", http.StatusInternalServerError)
	}
}
