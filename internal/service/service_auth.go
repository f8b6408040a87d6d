package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voteworks/ballotbox/internal/config"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/store"
	"github.com/voteworks/ballotbox/internal/utils"
	"github.com/voteworks/ballotbox/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Always non-zero; config validation rejects a missing duration.
	tokenDuration time.Duration

	// bcryptCost is the work factor for password hashing.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, bcryptCost int, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Signup creates a new user account.
//
// It validates that all required profile fields are present, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
// Role and vote flag are assigned by the store defaults (voter, not voted).
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a required field is missing.
//   - A wrapped storage error if the repository call fails (e.g. national ID
//     already taken — see store.ErrNationalIDAlreadyExists).
func (a *authService) Signup(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateSignup(user); err != nil {
		log.Error().Str("national_id", user.NationalID).Msg("invalid user data provided")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(user.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user.Password = ""
	user.PasswordHash = hash

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("national_id", user.NationalID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by national ID and compares the supplied password
// against the stored bcrypt hash. Both an unknown national ID and a wrong
// password collapse into the same ErrInvalidCredentials so that the response
// does not disclose which check failed. Token issuance is the caller's next
// step and happens strictly after this method returns successfully.
func (a *authService) Login(ctx context.Context, nationalID, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if nationalID == "" || password == "" {
		log.Error().Msg("empty national id or password provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("national_id", nationalID).Msg("login attempt for unknown national id")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("national_id", nationalID).Msg("user search by national id failed")
		return models.User{}, fmt.Errorf("user search by national id failed: %w", err)
	}

	if !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// validateSignup checks that every required profile field is present.
// Email and mobile are the only optional fields.
func validateSignup(user models.User) error {
	if user.Name == "" || user.Age <= 0 || user.Address == "" ||
		user.Gender == "" || user.NationalID == "" || user.Password == "" {
		return ErrInvalidDataProvided
	}

	return nil
}
