package models

import "time"

// User roles. RoleVoter is the default for every new signup; only an
// administrator may manage the candidate roster, and only a voter may cast
// a vote.
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// User represents a registered participant of the election.
// The NationalID field doubles as the login credential and is unique across
// all users. PasswordHash must always hold a bcrypt hash, never plaintext.
type User struct {
	// UserID is the server-assigned unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Name is the full name of the user. Required.
	Name string `json:"name"`

	// Age of the user in years. Required.
	Age int `json:"age"`

	// Email is an optional contact address.
	Email string `json:"email,omitempty"`

	// Mobile is an optional contact phone number.
	Mobile string `json:"mobile,omitempty"`

	// Address is the postal address of the user. Required.
	Address string `json:"address"`

	// Gender of the user. Required.
	Gender string `json:"gender"`

	// NationalID is the government-issued identifier used as the login
	// credential. Unique across all users.
	NationalID string `json:"national_id"`

	// Password carries the plaintext secret on inbound signup/login/change
	// requests only. It is never persisted and never serialized back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in place of the secret.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role is either RoleVoter or RoleAdmin.
	Role string `json:"role"`

	// HasVoted transitions false→true exactly once, as a side effect of a
	// successful vote cast, and never reverts.
	HasVoted bool `json:"has_voted"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user with the plaintext password cleared.
// Handlers call it before writing a user record into a response body.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
