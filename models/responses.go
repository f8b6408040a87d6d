package models

// Response is the generic JSON envelope for endpoints that return only a
// human-readable message (e.g. DELETE /candidate/{id}).
type Response struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for every non-2xx response.
// Message is human-readable; Error carries the sentinel error text so that
// API clients can match on it programmatically.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// AuthResponse is returned by signup and login: the persisted user record
// plus a freshly issued bearer token bound to it.
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// UserResponse wraps a single user record (profile reads, password change).
type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// CandidateResponse wraps a single candidate record.
type CandidateResponse struct {
	Message   string    `json:"message"`
	Candidate Candidate `json:"candidate"`
}

// CandidateListResponse wraps the full candidate roster.
type CandidateListResponse struct {
	Message    string      `json:"message"`
	Candidates []Candidate `json:"candidates"`
}

// TallyResponse wraps the aggregated vote counts, sorted by vote count
// in descending order.
type TallyResponse struct {
	Message    string       `json:"message"`
	VoteCounts []TallyEntry `json:"vote_counts"`
}

// ChangePasswordRequest is the body of PUT /user/profile/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
