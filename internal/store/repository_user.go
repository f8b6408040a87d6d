package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and password updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, Role, HasVoted,
// CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrNationalIDAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Name, user.Age, user.Email, user.Mobile, user.Address, user.Gender, user.NationalID, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch {
		case postgresError(err) == pgerrcode.UniqueViolation:
			return models.User{}, ErrNationalIDAlreadyExists
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		default:
			return models.User{}, err
		}
	}

	return created, nil
}

// FindUserByNationalID retrieves the user record whose national ID matches
// the given credential.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level or scan error → returned directly.
func (r *userRepository) FindUserByNationalID(ctx context.Context, nationalID string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByNationalID, nationalID)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByNationalID").Msg("error scanning user row")
		return models.User{}, err
	}

	return foundUser, nil
}

// FindUserByID retrieves the user record with the given server-assigned ID.
//
// Error handling mirrors [FindUserByNationalID]: no matching row →
// [ErrNoUserWasFound], anything else is returned directly.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error scanning user row")
		return models.User{}, err
	}

	return foundUser, nil
}

// UpdatePassword replaces the stored password hash of the user and returns
// the updated record. The UPDATE carries a RETURNING clause, so a missing
// user surfaces as sql.ErrNoRows → [ErrNoUserWasFound].
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateUserPassword, userID, passwordHash)

	updatedUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error scanning user row")
		return models.User{}, err
	}

	return updatedUser, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows so that scanUser serves both
// single-row and iterated reads.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users-table row in canonical column order. Optional
// email/mobile columns are scanned through sql.NullString so that NULLs map
// to empty strings.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var email, mobile sql.NullString

	err := row.Scan(
		&user.UserID, &user.Name, &user.Age, &email, &mobile,
		&user.Address, &user.Gender, &user.NationalID, &user.PasswordHash,
		&user.Role, &user.HasVoted, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Email = email.String
	user.Mobile = mobile.String

	return user, nil
}
