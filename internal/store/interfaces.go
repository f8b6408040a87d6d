package store

import (
	"context"

	"github.com/voteworks/ballotbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns the record with
	// server-assigned fields. Returns ErrNationalIDAlreadyExists when the
	// national ID is already taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByNationalID looks up a user by the national ID credential.
	// Returns ErrNoUserWasFound when no such user exists.
	FindUserByNationalID(ctx context.Context, nationalID string) (models.User, error)

	// FindUserByID looks up a user by the server-assigned identifier.
	// Returns ErrNoUserWasFound when no such user exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdatePassword replaces the stored password hash of the user and
	// returns the updated record. Returns ErrNoUserWasFound when no such
	// user exists.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (models.User, error)
}

// CandidateRepository is the data-access contract for the candidate roster
// and the vote ledger.
type CandidateRepository interface {
	// CreateCandidate persists a new candidate and returns the record with
	// server-assigned fields.
	CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error)

	// UpdateCandidate applies a partial update and returns the updated
	// record with its vote list. Returns ErrNoCandidateWasFound when the
	// candidate does not exist.
	UpdateCandidate(ctx context.Context, candidateID int64, update models.CandidateUpdate) (models.Candidate, error)

	// DeleteCandidate removes the candidate (and, by cascade, its votes)
	// and returns the deleted record. Returns ErrNoCandidateWasFound when
	// the candidate does not exist.
	DeleteCandidate(ctx context.Context, candidateID int64) (models.Candidate, error)

	// FindCandidateByID returns the candidate with its vote list.
	// Returns ErrNoCandidateWasFound when the candidate does not exist.
	FindCandidateByID(ctx context.Context, candidateID int64) (models.Candidate, error)

	// ListCandidates returns all candidates with their vote lists.
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	// CastVote records a vote from voterID for candidateID in a single
	// transaction: the voter's has_voted flag, the vote row, and the
	// candidate's vote_count move together or not at all. Returns
	// ErrAlreadyVoted when the voter has a recorded vote (including the
	// case of two racing casts) and ErrNoCandidateWasFound when the
	// candidate does not exist.
	CastVote(ctx context.Context, voterID, candidateID int64) (models.Candidate, error)

	// Tally returns one entry per candidate sorted by vote count in
	// descending order.
	Tally(ctx context.Context) ([]models.TallyEntry, error)
}
