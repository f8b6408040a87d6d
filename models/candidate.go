package models

import "time"

// Candidate represents a person standing in the election.
// VoteCount is maintained by the store in the same transaction as the vote
// list, so VoteCount == len(Votes) always holds for a fully loaded record.
type Candidate struct {
	// CandidateID is the server-assigned unique identifier of the candidate.
	CandidateID int64 `json:"candidate_id"`

	// Name is the full name of the candidate. Required.
	Name string `json:"name"`

	// Party is the party the candidate stands for. Required.
	Party string `json:"party"`

	// Age of the candidate in years. Required.
	Age int `json:"age"`

	// Votes is the append-only list of votes cast for this candidate.
	Votes []Vote `json:"votes"`

	// VoteCount is the number of votes cast for this candidate.
	// Monotonically non-decreasing.
	VoteCount int64 `json:"vote_count"`

	// CreatedAt is the timestamp when the candidate was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Candidate model.
func (c Candidate) TableName() string {
	return "candidates"
}

// CandidateUpdate describes a partial update of a candidate record.
// Nil fields are left untouched.
type CandidateUpdate struct {
	Name  *string `json:"name,omitempty"`
	Party *string `json:"party,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

// Vote is a single recorded ballot: which voter voted for which candidate.
// A voter appears at most once across all candidates.
type Vote struct {
	VoteID      int64     `json:"-"`
	CandidateID int64     `json:"-"`
	VoterID     int64     `json:"voter_id"`
	VotedAt     time.Time `json:"voted_at"`
}

// TallyEntry is one row of the aggregated election result:
// the candidate, the party, and the number of votes received.
type TallyEntry struct {
	CandidateID int64  `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	VoteCount   int64  `json:"vote_count"`
}
