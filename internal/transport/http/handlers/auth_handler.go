package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	userssvc "github.com/SyncBAND/besteats/internal/services/users"
	"github.com/SyncBAND/besteats/internal/transport/http/dto"
	httperrors "github.com/SyncBAND/besteats/internal/transport/http/errors"
)

type AuthHandler struct {
	service *userssvc.Service
}

func NewAuthHandler(service *userssvc.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Register(r.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, userssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "username must be 3 to 64 characters")
		case errors.Is(err, userssvc.ErrUsernameTaken):
			writeConflict(w, "USERNAME_TAKEN", "username is already taken")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to register user")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.RegisterResponse{
		UserID:      res.User.ID,
		Username:    res.User.Username,
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt.UTC(),
	})
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
