package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/voteworks/ballotbox/internal/utils"
	"github.com/voteworks/ballotbox/models"
)

// writeError maps err to an HTTP status via the sentinel table and writes
// the standard JSON error envelope {message, error}.
func writeError(w http.ResponseWriter, message string, err error) {
	utils.WriteJSON(w, models.ErrorResponse{
		Message: message,
		Error:   err.Error(),
	}, statusFromError(err))
}

// userIDFromRequest pulls the authenticated user ID that the auth middleware
// stored in the request context. A missing value means the handler was
// reached without passing the middleware — a wiring bug, reported as 500.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{
			Message: "authenticated user missing from request context",
			Error:   http.StatusText(http.StatusInternalServerError),
		}, http.StatusInternalServerError)
		return 0, false
	}

	return userID, true
}

// candidateIDFromRequest parses the {candidateID} URL parameter.
func candidateIDFromRequest(r *http.Request) (int64, error) {
	candidateID, err := strconv.ParseInt(chi.URLParam(r, "candidateID"), 10, 64)
	if err != nil {
		return 0, ErrInvalidPathParameter
	}

	return candidateID, nil
}
