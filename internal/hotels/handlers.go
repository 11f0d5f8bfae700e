package hotels

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stayfinder/stayfinder/internal/utils"
)

// Handler exposes the catalog over HTTP
type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes registers the catalog routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/hotels", h.HandleList)
	mux.HandleFunc("GET /api/hotels/{id}", h.HandleGet)
	mux.HandleFunc("GET /api/hotels/{id}/rooms", h.HandleRooms)
}

// HandleList handles GET /api/hotels with optional location, guests and
// min_rating filters
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter Filter
	filter.Location = q.Get("location")
	if raw := q.Get("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil || guests < 1 {
			utils.WriteError(w, "invalid_request", "guests must be a positive integer", http.StatusBadRequest)
			return
		}
		filter.Guests = guests
	}
	if raw := q.Get("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.WriteError(w, "invalid_request", "min_rating must be a number", http.StatusBadRequest)
			return
		}
		filter.MinRating = rating
	}

	utils.WriteJSON(w, map[string]interface{}{"hotels": h.catalog.List(filter)})
}

// HandleGet handles GET /api/hotels/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hotel, err := h.catalog.Get(id)
	if err != nil {
		utils.WriteError(w, "not_found", "Hotel not found", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, hotel)
}

// HandleRooms handles GET /api/hotels/{id}/rooms
func (h *Handler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rooms, err := h.catalog.Rooms(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, "not_found", "Hotel not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "internal_error", "Failed to load rooms", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, map[string]interface{}{"rooms": rooms})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid_request", "Hotel id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
