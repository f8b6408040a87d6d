package service

import (
	"context"
	"fmt"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/store"
	"github.com/voteworks/ballotbox/models"
)

// candidateService is the concrete implementation of CandidateService.
// Roster mutations re-resolve the caller's role from the user repository on
// every call: the stored role is authoritative, never the token claims, so
// a demoted admin is locked out as soon as the store says so.
type candidateService struct {
	candidateRepository store.CandidateRepository
	userRepository      store.UserRepository
	logger              *logger.Logger
}

// NewCandidateService constructs a CandidateService backed by the candidate
// and user repositories.
func NewCandidateService(candidateRepository store.CandidateRepository, userRepository store.UserRepository, logger *logger.Logger) CandidateService {
	return &candidateService{
		candidateRepository: candidateRepository,
		userRepository:      userRepository,
		logger:              logger,
	}
}

// CreateCandidate registers a new candidate. Admin-only.
func (c *candidateService) CreateCandidate(ctx context.Context, callerID int64, candidate models.Candidate) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	if err := c.requireAdmin(ctx, callerID); err != nil {
		return models.Candidate{}, err
	}

	if candidate.Name == "" || candidate.Party == "" || candidate.Age <= 0 {
		log.Error().Msg("invalid candidate data provided")
		return models.Candidate{}, ErrInvalidDataProvided
	}

	created, err := c.candidateRepository.CreateCandidate(ctx, candidate)
	if err != nil {
		log.Err(err).Msg("candidate creation ended with error")
		return models.Candidate{}, fmt.Errorf("candidate creation ended with error: %w", err)
	}

	return created, nil
}

// UpdateCandidate applies a partial update to an existing candidate. Admin-only.
func (c *candidateService) UpdateCandidate(ctx context.Context, callerID, candidateID int64, update models.CandidateUpdate) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	if err := c.requireAdmin(ctx, callerID); err != nil {
		return models.Candidate{}, err
	}

	updated, err := c.candidateRepository.UpdateCandidate(ctx, candidateID, update)
	if err != nil {
		log.Err(err).Int64("candidate_id", candidateID).Msg("candidate update ended with error")
		return models.Candidate{}, fmt.Errorf("candidate update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteCandidate removes a candidate from the roster. Admin-only.
func (c *candidateService) DeleteCandidate(ctx context.Context, callerID, candidateID int64) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	if err := c.requireAdmin(ctx, callerID); err != nil {
		return models.Candidate{}, err
	}

	deleted, err := c.candidateRepository.DeleteCandidate(ctx, candidateID)
	if err != nil {
		log.Err(err).Int64("candidate_id", candidateID).Msg("candidate deletion ended with error")
		return models.Candidate{}, fmt.Errorf("candidate deletion ended with error: %w", err)
	}

	return deleted, nil
}

// ListCandidates returns the whole roster. Open to any authenticated caller.
func (c *candidateService) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	log := logger.FromContext(ctx)

	candidates, err := c.candidateRepository.ListCandidates(ctx)
	if err != nil {
		log.Err(err).Msg("candidate listing ended with error")
		return nil, fmt.Errorf("candidate listing ended with error: %w", err)
	}

	return candidates, nil
}

// CastVote records the caller's single vote for the candidate.
//
// The checks run in order:
//  1. the caller must resolve to a user record (store.ErrNoUserWasFound);
//  2. the caller must not have voted yet (store.ErrAlreadyVoted);
//  3. the caller must hold the voter role (ErrVotersOnly — admins cannot vote).
//
// The repository then performs the atomic cast; under two racing requests
// from the same user the pre-checks may both pass, and the store's
// conditional update plus the votes UNIQUE constraint make exactly one of
// them commit.
func (c *candidateService) CastVote(ctx context.Context, callerID, candidateID int64) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	caller, err := c.userRepository.FindUserByID(ctx, callerID)
	if err != nil {
		log.Err(err).Int64("id", callerID).Msg("voter lookup failed")
		return models.Candidate{}, fmt.Errorf("voter lookup failed: %w", err)
	}

	if caller.HasVoted {
		log.Error().Int64("id", callerID).Msg("user has already voted")
		return models.Candidate{}, store.ErrAlreadyVoted
	}

	if caller.Role != models.RoleVoter {
		log.Error().Int64("id", callerID).Str("role", caller.Role).Msg("non-voter tried to cast a vote")
		return models.Candidate{}, ErrVotersOnly
	}

	candidate, err := c.candidateRepository.CastVote(ctx, callerID, candidateID)
	if err != nil {
		log.Err(err).Int64("id", callerID).Int64("candidate_id", candidateID).Msg("vote cast ended with error")
		return models.Candidate{}, fmt.Errorf("vote cast ended with error: %w", err)
	}

	log.Info().Int64("id", callerID).Int64("candidate_id", candidateID).Msg("vote cast successfully")

	return candidate, nil
}

// Tally returns per-candidate vote counts sorted by vote count descending.
func (c *candidateService) Tally(ctx context.Context) ([]models.TallyEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := c.candidateRepository.Tally(ctx)
	if err != nil {
		log.Err(err).Msg("tally ended with error")
		return nil, fmt.Errorf("tally ended with error: %w", err)
	}

	return entries, nil
}

// requireAdmin re-reads the caller's record and rejects non-admins.
func (c *candidateService) requireAdmin(ctx context.Context, callerID int64) error {
	log := logger.FromContext(ctx)

	caller, err := c.userRepository.FindUserByID(ctx, callerID)
	if err != nil {
		log.Err(err).Int64("id", callerID).Msg("caller lookup failed")
		return fmt.Errorf("caller lookup failed: %w", err)
	}

	if caller.Role != models.RoleAdmin {
		log.Error().Int64("id", callerID).Str("role", caller.Role).Msg("non-admin tried to manage candidates")
		return ErrAdminOnly
	}

	return nil
}
