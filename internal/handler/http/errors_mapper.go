package http

import (
	"errors"
	"net/http"

	"github.com/voteworks/ballotbox/internal/service"
	"github.com/voteworks/ballotbox/internal/store"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
	ErrInvalidPathParameter:       http.StatusBadRequest,
	ErrInvalidJSON:                http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrWrongOldPassword:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrAdminOnly:               http.StatusForbidden,
	service.ErrVotersOnly:              http.StatusForbidden,

	store.ErrNationalIDAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:          http.StatusNotFound,
	store.ErrNoCandidateWasFound:     http.StatusNotFound,
	store.ErrAlreadyVoted:            http.StatusConflict,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommitingTransaction:  http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
