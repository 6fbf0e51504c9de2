package handlers

import (
	"errors"
	"net/http"

	rankingsvc "github.com/SyncBAND/besteats/internal/services/ranking"
	"github.com/SyncBAND/besteats/internal/transport/http/dto"
	httperrors "github.com/SyncBAND/besteats/internal/transport/http/errors"
)

type MostVotedHandler struct {
	service *rankingsvc.Service
}

func NewMostVotedHandler(service *rankingsvc.Service) *MostVotedHandler {
	return &MostVotedHandler{service: service}
}

func (h *MostVotedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "RANKING_SERVICE_UNAVAILABLE", "ranking service is unavailable")
		return
	}

	winners, dayKey, err := h.service.MostVoted(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, rankingsvc.ErrInvalidDate) {
			writeBadRequest(w, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load daily standings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMostVotedResponse(dayKey, winners))
}
