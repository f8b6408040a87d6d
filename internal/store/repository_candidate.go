package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/models"
)

// candidateRepository is the PostgreSQL-backed implementation of
// [CandidateRepository]. It manages the "candidates" roster, the "votes"
// ledger, and the transactional vote-cast operation.
type candidateRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCandidateRepository constructs a [CandidateRepository] backed by the
// provided database connection and logger.
func NewCandidateRepository(db *DB, logger *logger.Logger) CandidateRepository {
	logger.Debug().Msg("creating candidate repository")
	return &candidateRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCandidate persists a new candidate and returns the record with
// server-assigned fields (CandidateID, VoteCount=0, CreatedAt).
func (r *candidateRepository) CreateCandidate(ctx context.Context, candidate models.Candidate) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCandidate, candidate.Name, candidate.Party, candidate.Age)

	created, err := scanCandidate(row)
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.CreateCandidate").Msg("error creating candidate")
		return models.Candidate{}, err
	}

	created.Votes = []models.Vote{}

	return created, nil
}

// UpdateCandidate applies the non-nil fields of update to the candidate and
// returns the updated record with its vote list. The UPDATE statement is
// built dynamically with squirrel so only the provided fields are touched;
// when no fields are set the method degrades to a plain fetch.
func (r *candidateRepository) UpdateCandidate(ctx context.Context, candidateID int64, update models.CandidateUpdate) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("candidates").PlaceholderFormat(sq.Dollar)
	touched := false

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		touched = true
	}
	if update.Party != nil {
		builder = builder.Set("party", *update.Party)
		touched = true
	}
	if update.Age != nil {
		builder = builder.Set("age", *update.Age)
		touched = true
	}

	if !touched {
		return r.FindCandidateByID(ctx, candidateID)
	}

	query, args, err := builder.
		Where(sq.Eq{"candidate_id": candidateID}).
		Suffix("RETURNING candidate_id, name, party, age, vote_count, created_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.UpdateCandidate").Msg("error building update query")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	updated, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Candidate{}, ErrNoCandidateWasFound
		}

		log.Err(err).Str("func", "*candidateRepository.UpdateCandidate").Msg("error scanning candidate row")
		return models.Candidate{}, err
	}

	updated.Votes, err = r.listVotes(ctx, updated.CandidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	return updated, nil
}

// DeleteCandidate removes the candidate and returns the deleted record.
// Vote rows are removed by the ON DELETE CASCADE constraint.
func (r *candidateRepository) DeleteCandidate(ctx context.Context, candidateID int64) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, deleteCandidate, candidateID)

	deleted, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Candidate{}, ErrNoCandidateWasFound
		}

		log.Err(err).Str("func", "*candidateRepository.DeleteCandidate").Msg("error scanning candidate row")
		return models.Candidate{}, err
	}

	deleted.Votes = []models.Vote{}

	return deleted, nil
}

// FindCandidateByID returns the candidate with its vote list loaded.
func (r *candidateRepository) FindCandidateByID(ctx context.Context, candidateID int64) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findCandidateByID, candidateID)

	found, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Candidate{}, ErrNoCandidateWasFound
		}

		log.Err(err).Str("func", "*candidateRepository.FindCandidateByID").Msg("error scanning candidate row")
		return models.Candidate{}, err
	}

	found.Votes, err = r.listVotes(ctx, found.CandidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	return found, nil
}

// ListCandidates returns all candidates with their vote lists. Votes are
// fetched once and grouped in memory to avoid a query per candidate.
func (r *candidateRepository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCandidates)
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.ListCandidates").Msg("error listing candidates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	candidates := make([]models.Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			log.Err(err).Str("func", "*candidateRepository.ListCandidates").Msg("error scanning candidate rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		candidate.Votes = []models.Vote{}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	votes, err := r.listAllVotes(ctx)
	if err != nil {
		return nil, err
	}

	byCandidate := make(map[int64][]models.Vote, len(candidates))
	for _, vote := range votes {
		byCandidate[vote.CandidateID] = append(byCandidate[vote.CandidateID], vote)
	}
	for i := range candidates {
		if v, ok := byCandidate[candidates[i].CandidateID]; ok {
			candidates[i].Votes = v
		}
	}

	return candidates, nil
}

// CastVote records one vote inside a single transaction:
//
//  1. Conditionally flip users.has_voted false→true. Zero affected rows
//     means a concurrent cast from the same user already won → ErrAlreadyVoted.
//  2. Insert the vote row. The UNIQUE(voter_id) constraint is the
//     authoritative one-vote-per-user guarantee; a unique violation here is
//     also reported as ErrAlreadyVoted.
//  3. Increment the candidate's vote_count, returning the updated record.
//
// Any failure rolls the whole transaction back, so a vote can never be
// recorded against a user whose has_voted flag is still false.
func (r *candidateRepository) CastVote(ctx context.Context, voterID, candidateID int64) (models.Candidate, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.CastVote").Msg("error beginning transaction")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, markVoterVoted, voterID)
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.CastVote").Msg("error marking voter as voted")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Candidate{}, ErrAlreadyVoted
	}

	row := tx.QueryRowContext(ctx, insertVote, candidateID, voterID)

	var vote models.Vote
	if err := row.Scan(&vote.VoteID, &vote.CandidateID, &vote.VoterID, &vote.VotedAt); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Candidate{}, ErrAlreadyVoted
		case pgerrcode.ForeignKeyViolation:
			return models.Candidate{}, ErrNoCandidateWasFound
		default:
			log.Err(err).Str("func", "*candidateRepository.CastVote").Msg("error inserting vote")
			return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	row = tx.QueryRowContext(ctx, incrementVoteCount, candidateID)

	updated, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Candidate{}, ErrNoCandidateWasFound
		}

		log.Err(err).Str("func", "*candidateRepository.CastVote").Msg("error incrementing vote count")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*candidateRepository.CastVote").Msg("error committing vote transaction")
		return models.Candidate{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	updated.Votes = append(updated.Votes, vote)

	return updated, nil
}

// Tally returns the per-candidate vote counts sorted by vote count in
// descending order. The ordering comes from the SQL query itself.
func (r *candidateRepository) Tally(ctx context.Context) ([]models.TallyEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, tallyVotes)
	if err != nil {
		log.Err(err).Str("func", "*candidateRepository.Tally").Msg("error querying tally")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.TallyEntry, 0)
	for rows.Next() {
		var entry models.TallyEntry
		if err := rows.Scan(&entry.CandidateID, &entry.Name, &entry.Party, &entry.VoteCount); err != nil {
			log.Err(err).Str("func", "*candidateRepository.Tally").Msg("error scanning tally rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// listVotes loads the vote list of a single candidate.
func (r *candidateRepository) listVotes(ctx context.Context, candidateID int64) ([]models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, listVotesByCandidate, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

// listAllVotes loads the whole vote ledger ordered by candidate.
func (r *candidateRepository) listAllVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, listAllVotes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func scanVotes(rows *sql.Rows) ([]models.Vote, error) {
	votes := make([]models.Vote, 0)
	for rows.Next() {
		var vote models.Vote
		if err := rows.Scan(&vote.VoteID, &vote.CandidateID, &vote.VoterID, &vote.VotedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return votes, nil
}

// scanCandidate reads one candidates-table row in canonical column order.
func scanCandidate(row rowScanner) (models.Candidate, error) {
	var candidate models.Candidate

	err := row.Scan(
		&candidate.CandidateID, &candidate.Name, &candidate.Party,
		&candidate.Age, &candidate.VoteCount, &candidate.CreatedAt,
	)
	if err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}
