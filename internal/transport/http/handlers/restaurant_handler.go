package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/SyncBAND/besteats/internal/services/auth"
	restaurantssvc "github.com/SyncBAND/besteats/internal/services/restaurants"
	"github.com/SyncBAND/besteats/internal/transport/http/dto"
	httperrors "github.com/SyncBAND/besteats/internal/transport/http/errors"
)

type RestaurantHandler struct {
	service *restaurantssvc.Service
}

func NewRestaurantHandler(service *restaurantssvc.Service) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "RESTAURANT_SERVICE_UNAVAILABLE", "restaurant service is unavailable")
		return
	}

	var req dto.CreateRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	restaurant, err := h.service.Create(r.Context(), identity, req.Name)
	if err != nil {
		handleRestaurantError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "RESTAURANT_SERVICE_UNAVAILABLE", "restaurant service is unavailable")
		return
	}

	restaurants, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list restaurants")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewRestaurantListResponse(restaurants))
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "RESTAURANT_SERVICE_UNAVAILABLE", "restaurant service is unavailable")
		return
	}

	id, ok := restaurantIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "restaurant id must be a positive integer")
		return
	}

	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleRestaurantError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "RESTAURANT_SERVICE_UNAVAILABLE", "restaurant service is unavailable")
		return
	}

	id, ok := restaurantIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "restaurant id must be a positive integer")
		return
	}

	var req dto.UpdateRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	restaurant, err := h.service.Rename(r.Context(), identity, id, req.Name)
	if err != nil {
		handleRestaurantError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "RESTAURANT_SERVICE_UNAVAILABLE", "restaurant service is unavailable")
		return
	}

	id, ok := restaurantIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "restaurant id must be a positive integer")
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		handleRestaurantError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleRestaurantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, restaurantssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "restaurant validation failed")
	case errors.Is(err, restaurantssvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "only the creator or an admin may modify this restaurant")
	case errors.Is(err, restaurantssvc.ErrDuplicateName):
		writeConflict(w, "DUPLICATE_RESTAURANT", "a restaurant with this name already exists")
	case errors.Is(err, restaurantssvc.ErrNotFound):
		writeNotFound(w, "RESTAURANT_NOT_FOUND", "restaurant not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "restaurant operation failed")
	}
}

func restaurantIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "restaurantID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
