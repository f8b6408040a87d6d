package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/models"
)

var (
	candidateColumns = []string{"candidate_id", "name", "party", "age", "vote_count", "created_at"}
	voteColumns      = []string{"vote_id", "candidate_id", "voter_id", "voted_at"}
)

func newTestCandidateRepo(t *testing.T) (*candidateRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &candidateRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func candidateRow(c models.Candidate, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(candidateColumns).
		AddRow(c.CandidateID, c.Name, c.Party, c.Age, c.VoteCount, now)
}

func TestCreateCandidate_Success(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	candidate := models.Candidate{Name: "Ada Lovelace", Party: "Progress", Age: 36}
	created := candidate
	created.CandidateID = 1

	mock.ExpectQuery("INSERT INTO candidates").
		WithArgs(candidate.Name, candidate.Party, candidate.Age).
		WillReturnRows(candidateRow(created, time.Now()))

	got, err := repo.CreateCandidate(context.Background(), candidate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CandidateID != 1 {
		t.Errorf("expected CandidateID=1, got %d", got.CandidateID)
	}
	if got.VoteCount != 0 {
		t.Errorf("expected VoteCount=0 for a fresh candidate, got %d", got.VoteCount)
	}
	if got.Votes == nil || len(got.Votes) != 0 {
		t.Errorf("expected empty vote list, got %v", got.Votes)
	}
}

func TestUpdateCandidate_PartialUpdate(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	newParty := "Unity"
	updated := models.Candidate{CandidateID: 2, Name: "Ada Lovelace", Party: newParty, Age: 36, VoteCount: 5}

	mock.ExpectQuery("UPDATE candidates").
		WithArgs(newParty, int64(2)).
		WillReturnRows(candidateRow(updated, time.Now()))

	mock.ExpectQuery("SELECT (.+) FROM votes").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(int64(10), int64(2), int64(100), time.Now()))

	got, err := repo.UpdateCandidate(context.Background(), 2, models.CandidateUpdate{Party: &newParty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Party != newParty {
		t.Errorf("expected party %q, got %q", newParty, got.Party)
	}
	if len(got.Votes) != 1 {
		t.Fatalf("expected 1 vote loaded, got %d", len(got.Votes))
	}
	if got.Votes[0].VoterID != 100 {
		t.Errorf("expected voter 100, got %d", got.Votes[0].VoterID)
	}
}

func TestUpdateCandidate_NoFieldsDegradesToFetch(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	found := models.Candidate{CandidateID: 2, Name: "Ada Lovelace", Party: "Progress", Age: 36}

	mock.ExpectQuery("SELECT (.+) FROM candidates").
		WithArgs(int64(2)).
		WillReturnRows(candidateRow(found, time.Now()))

	mock.ExpectQuery("SELECT (.+) FROM votes").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(voteColumns))

	got, err := repo.UpdateCandidate(context.Background(), 2, models.CandidateUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != found.Name {
		t.Errorf("expected unchanged record, got %+v", got)
	}
}

func TestUpdateCandidate_NotFound(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	newAge := 40

	mock.ExpectQuery("UPDATE candidates").
		WithArgs(newAge, int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateCandidate(context.Background(), 404, models.CandidateUpdate{Age: &newAge})
	if !errors.Is(err, ErrNoCandidateWasFound) {
		t.Fatalf("expected ErrNoCandidateWasFound, got %v", err)
	}
}

func TestDeleteCandidate_Success(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	deleted := models.Candidate{CandidateID: 3, Name: "Ada Lovelace", Party: "Progress", Age: 36}

	mock.ExpectQuery("DELETE FROM candidates").
		WithArgs(int64(3)).
		WillReturnRows(candidateRow(deleted, time.Now()))

	got, err := repo.DeleteCandidate(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CandidateID != 3 {
		t.Errorf("expected CandidateID=3, got %d", got.CandidateID)
	}
}

func TestDeleteCandidate_NotFound(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM candidates").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteCandidate(context.Background(), 404)
	if !errors.Is(err, ErrNoCandidateWasFound) {
		t.Fatalf("expected ErrNoCandidateWasFound, got %v", err)
	}
}

func TestListCandidates_GroupsVotesByCandidate(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM candidates").
		WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(int64(1), "Ada Lovelace", "Progress", 36, int64(2), now).
			AddRow(int64(2), "Alan Turing", "Unity", 41, int64(0), now))

	mock.ExpectQuery("SELECT (.+) FROM votes").
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(int64(10), int64(1), int64(100), now).
			AddRow(int64(11), int64(1), int64(101), now))

	got, err := repo.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if len(got[0].Votes) != 2 {
		t.Errorf("expected 2 votes for candidate 1, got %d", len(got[0].Votes))
	}
	if len(got[1].Votes) != 0 {
		t.Errorf("expected no votes for candidate 2, got %d", len(got[1].Votes))
	}
}

func TestCastVote_Success(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO votes").
		WithArgs(int64(1), int64(100)).
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(int64(10), int64(1), int64(100), now))
	mock.ExpectQuery("UPDATE candidates").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(int64(1), "Ada Lovelace", "Progress", 36, int64(6), now))
	mock.ExpectCommit()

	got, err := repo.CastVote(context.Background(), 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.VoteCount != 6 {
		t.Errorf("expected VoteCount=6 after increment, got %d", got.VoteCount)
	}
	if len(got.Votes) != 1 || got.Votes[0].VoterID != 100 {
		t.Errorf("expected the fresh vote in the record, got %v", got.Votes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCastVote_AlreadyVotedFlag(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CastVote(context.Background(), 100, 1)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestCastVote_UniqueViolationOnVoteRow(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO votes").
		WithArgs(int64(1), int64(100)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CastVote(context.Background(), 100, 1)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted on unique violation, got %v", err)
	}
}

func TestCastVote_UnknownCandidate(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO votes").
		WithArgs(int64(404), int64(100)).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	mock.ExpectRollback()

	_, err := repo.CastVote(context.Background(), 100, 404)
	if !errors.Is(err, ErrNoCandidateWasFound) {
		t.Fatalf("expected ErrNoCandidateWasFound on FK violation, got %v", err)
	}
}

func TestCastVote_CommitError(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO votes").
		WithArgs(int64(1), int64(100)).
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(int64(10), int64(1), int64(100), now))
	mock.ExpectQuery("UPDATE candidates").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(int64(1), "Ada Lovelace", "Progress", 36, int64(6), now))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := repo.CastVote(context.Background(), 100, 1)
	if !errors.Is(err, ErrCommitingTransaction) {
		t.Fatalf("expected ErrCommitingTransaction, got %v", err)
	}
}

func TestTally_PreservesQueryOrder(t *testing.T) {
	repo, mock, db := newTestCandidateRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM candidates").
		WillReturnRows(sqlmock.NewRows([]string{"candidate_id", "name", "party", "vote_count"}).
			AddRow(int64(2), "Alan Turing", "Unity", int64(9)).
			AddRow(int64(1), "Ada Lovelace", "Progress", int64(4)).
			AddRow(int64(3), "Grace Hopper", "Progress", int64(0)))

	got, err := repo.Tally(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].VoteCount > got[i-1].VoteCount {
			t.Errorf("tally out of order at %d: %d after %d", i, got[i].VoteCount, got[i-1].VoteCount)
		}
	}
}
