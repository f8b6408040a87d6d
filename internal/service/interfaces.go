package service

import (
	"context"

	"github.com/voteworks/ballotbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account creation, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	// Signup registers a new user with role voter and an unset vote flag,
	// hashing the password before persistence.
	Signup(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates by national ID and password. Unknown user and
	// wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, nationalID, password string) (models.User, error)

	// CreateToken issues a signed, time-limited JWT bound to the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService serves the authenticated user's own record.
type UserService interface {
	// Profile returns the user record for the authenticated identity.
	Profile(ctx context.Context, userID int64) (models.User, error)

	// ChangePassword verifies the old password and persists a hash of the
	// new one.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) (models.User, error)
}

// CandidateService manages the candidate roster and the voting flow.
// Roster mutations are admin-only; the caller's role is re-resolved from the
// store on every call rather than trusted from token claims, so a demoted
// admin loses access immediately.
type CandidateService interface {
	CreateCandidate(ctx context.Context, callerID int64, candidate models.Candidate) (models.Candidate, error)
	UpdateCandidate(ctx context.Context, callerID, candidateID int64, update models.CandidateUpdate) (models.Candidate, error)
	DeleteCandidate(ctx context.Context, callerID, candidateID int64) (models.Candidate, error)

	// ListCandidates returns the whole roster; open to any authenticated
	// caller.
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	// CastVote records the caller's single vote for the candidate.
	CastVote(ctx context.Context, callerID, candidateID int64) (models.Candidate, error)

	// Tally returns per-candidate vote counts sorted descending.
	Tally(ctx context.Context) ([]models.TallyEntry, error)
}
