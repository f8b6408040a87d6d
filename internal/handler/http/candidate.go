package http

import (
	"encoding/json"
	"net/http"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/utils"
	"github.com/voteworks/ballotbox/models"
)

func (h *Handler) createCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var candidate models.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", ErrInvalidJSON)
		return
	}

	createdCandidate, err := h.services.CandidateService.CreateCandidate(ctx, callerID, candidate)
	if err != nil {
		log.Err(err).Msg("error creating candidate")
		writeError(w, "Error creating candidate", err)
		return
	}

	utils.WriteJSON(w, models.CandidateResponse{
		Message:   "Candidate created successfully",
		Candidate: createdCandidate,
	}, http.StatusCreated)
}

func (h *Handler) updateCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	candidateID, err := candidateIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid candidate ID")
		writeError(w, "Invalid candidate ID", err)
		return
	}

	var update models.CandidateUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", ErrInvalidJSON)
		return
	}

	updatedCandidate, err := h.services.CandidateService.UpdateCandidate(ctx, callerID, candidateID, update)
	if err != nil {
		log.Err(err).Int64("candidate_id", candidateID).Msg("error updating candidate")
		writeError(w, "Error updating candidate", err)
		return
	}

	utils.WriteJSON(w, models.CandidateResponse{
		Message:   "Candidate updated successfully",
		Candidate: updatedCandidate,
	}, http.StatusOK)
}

func (h *Handler) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	candidateID, err := candidateIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid candidate ID")
		writeError(w, "Invalid candidate ID", err)
		return
	}

	if _, err = h.services.CandidateService.DeleteCandidate(ctx, callerID, candidateID); err != nil {
		log.Err(err).Int64("candidate_id", candidateID).Msg("error deleting candidate")
		writeError(w, "Error deleting candidate", err)
		return
	}

	utils.WriteJSON(w, models.Response{
		Message: "Candidate deleted successfully",
	}, http.StatusOK)
}

func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	candidates, err := h.services.CandidateService.ListCandidates(ctx)
	if err != nil {
		log.Err(err).Msg("error listing candidates")
		writeError(w, "Error listing candidates", err)
		return
	}

	utils.WriteJSON(w, models.CandidateListResponse{
		Message:    "Candidates fetched successfully",
		Candidates: candidates,
	}, http.StatusOK)
}

func (h *Handler) castVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	candidateID, err := candidateIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid candidate ID")
		writeError(w, "Invalid candidate ID", err)
		return
	}

	votedCandidate, err := h.services.CandidateService.CastVote(ctx, callerID, candidateID)
	if err != nil {
		log.Err(err).Int64("candidate_id", candidateID).Msg("error casting vote")
		writeError(w, "Error casting vote", err)
		return
	}

	log.Debug().
		Int64("candidate_id", votedCandidate.CandidateID).
		Int64("voter_id", callerID).
		Msg("vote recorded")

	utils.WriteJSON(w, models.CandidateResponse{
		Message:   "Vote cast successfully",
		Candidate: votedCandidate,
	}, http.StatusOK)
}

func (h *Handler) voteCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	voteCounts, err := h.services.CandidateService.Tally(ctx)
	if err != nil {
		log.Err(err).Msg("error fetching vote counts")
		writeError(w, "Error fetching vote counts", err)
		return
	}

	utils.WriteJSON(w, models.TallyResponse{
		Message:    "Vote counts fetched successfully",
		VoteCounts: voteCounts,
	}, http.StatusOK)
}
