package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/SyncBAND/besteats/internal/services/auth"
	votingsvc "github.com/SyncBAND/besteats/internal/services/voting"
	"github.com/SyncBAND/besteats/internal/transport/http/dto"
	httperrors "github.com/SyncBAND/besteats/internal/transport/http/errors"
)

type VoteHandler struct {
	service *votingsvc.Service
}

func NewVoteHandler(service *votingsvc.Service) *VoteHandler {
	return &VoteHandler{service: service}
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	identity, restaurantID, ok := h.votingRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.Vote(r.Context(), identity.UserID, restaurantID)
	if err != nil {
		handleVotingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewVoteResponse(result))
}

func (h *VoteHandler) Unvote(w http.ResponseWriter, r *http.Request) {
	identity, restaurantID, ok := h.votingRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.Unvote(r.Context(), identity.UserID, restaurantID)
	if err != nil {
		handleVotingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewVoteResponse(result))
}

func (h *VoteHandler) Quota(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "VOTING_SERVICE_UNAVAILABLE", "voting service is unavailable")
		return
	}

	remaining, capacity, err := h.service.Quota(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load vote quota")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.QuotaResponse{Remaining: remaining, Capacity: capacity})
}

func (h *VoteHandler) votingRequest(w http.ResponseWriter, r *http.Request) (authsvc.Identity, int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, 0, false
	}
	if h.service == nil {
		writeInternal(w, "VOTING_SERVICE_UNAVAILABLE", "voting service is unavailable")
		return authsvc.Identity{}, 0, false
	}

	restaurantID, ok := restaurantIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "restaurant id must be a positive integer")
		return authsvc.Identity{}, 0, false
	}

	return identity, restaurantID, true
}

func handleVotingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "vote validation failed")
	case errors.Is(err, votingsvc.ErrVotesExhausted):
		writeBadRequest(w, "VOTES_EXHAUSTED", "no votes left for today")
	case errors.Is(err, votingsvc.ErrNothingToUnvote):
		writeBadRequest(w, "NOTHING_TO_UNVOTE", "no vote to withdraw for this restaurant today")
	case errors.Is(err, votingsvc.ErrRestaurantNotFound):
		writeNotFound(w, "RESTAURANT_NOT_FOUND", "restaurant not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "vote operation failed")
	}
}
