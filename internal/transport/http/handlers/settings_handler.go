package handlers

import (
	"errors"
	"net/http"

	settingssvc "github.com/SyncBAND/besteats/internal/services/settings"
	"github.com/SyncBAND/besteats/internal/transport/http/dto"
	httperrors "github.com/SyncBAND/besteats/internal/transport/http/errors"
)

type SettingsHandler struct {
	service *settingssvc.Service
}

func NewSettingsHandler(service *settingssvc.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	capacity, err := h.service.DailyVoteCapacity(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load voting settings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.VotingSettingsResponse{DailyVoteCapacity: capacity})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	var req dto.UpdateVotingSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SetDailyVoteCapacity(r.Context(), req.DailyVoteCapacity); err != nil {
		if errors.Is(err, settingssvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "daily vote capacity must be a positive integer")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to update voting settings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.VotingSettingsResponse{DailyVoteCapacity: req.DailyVoteCapacity})
}
