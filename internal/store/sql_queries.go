package store

const (
	createUser = `INSERT INTO users (name, age, email, mobile, address, gender, national_id, password_hash)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING user_id, name, age, email, mobile, address, gender, national_id, password_hash, role, has_voted, created_at;`

	findUserByNationalID = `SELECT user_id, name, age, email, mobile, address, gender, national_id, password_hash, role, has_voted, created_at
    FROM users
    WHERE national_id = $1;`

	findUserByID = `SELECT user_id, name, age, email, mobile, address, gender, national_id, password_hash, role, has_voted, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2
    WHERE user_id = $1
    RETURNING user_id, name, age, email, mobile, address, gender, national_id, password_hash, role, has_voted, created_at;`

	createCandidate = `INSERT INTO candidates (name, party, age)
    VALUES ($1, $2, $3)
    RETURNING candidate_id, name, party, age, vote_count, created_at;`

	findCandidateByID = `SELECT candidate_id, name, party, age, vote_count, created_at
    FROM candidates
    WHERE candidate_id = $1;`

	listCandidates = `SELECT candidate_id, name, party, age, vote_count, created_at
    FROM candidates
    ORDER BY candidate_id;`

	deleteCandidate = `DELETE FROM candidates
    WHERE candidate_id = $1
    RETURNING candidate_id, name, party, age, vote_count, created_at;`

	listVotesByCandidate = `SELECT vote_id, candidate_id, voter_id, voted_at
    FROM votes
    WHERE candidate_id = $1
    ORDER BY vote_id;`

	listAllVotes = `SELECT vote_id, candidate_id, voter_id, voted_at
    FROM votes
    ORDER BY candidate_id, vote_id;`

	tallyVotes = `SELECT candidate_id, name, party, vote_count
    FROM candidates
    ORDER BY vote_count DESC;`

	// markVoterVoted flips has_voted only when it is still false; zero
	// affected rows means another cast from the same user already won.
	markVoterVoted = `UPDATE users
    SET has_voted = TRUE
    WHERE user_id = $1 AND has_voted = FALSE AND role = 'voter';`

	insertVote = `INSERT INTO votes (candidate_id, voter_id)
    VALUES ($1, $2)
    RETURNING vote_id, candidate_id, voter_id, voted_at;`

	incrementVoteCount = `UPDATE candidates
    SET vote_count = vote_count + 1
    WHERE candidate_id = $1
    RETURNING candidate_id, name, party, age, vote_count, created_at;`
)
