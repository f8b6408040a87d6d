package service

import (
	"context"
	"fmt"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/store"
	"github.com/voteworks/ballotbox/internal/utils"
	"github.com/voteworks/ballotbox/models"
)

// userService is the concrete implementation of UserService.
// It serves profile reads and password changes for the authenticated user.
type userService struct {
	userRepository store.UserRepository
	bcryptCost     int
	logger         *logger.Logger
}

// NewUserService constructs a UserService backed by the given UserRepository.
func NewUserService(userRepository store.UserRepository, bcryptCost int, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Profile returns the user record for the authenticated identity.
// Propagates store.ErrNoUserWasFound when the identity no longer resolves
// to a user.
func (u *userService) Profile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return foundUser, nil
}

// ChangePassword verifies the old password against the stored hash and, on
// match, persists a bcrypt hash of the new password.
//
// Returns:
//   - ErrInvalidDataProvided if either password is empty.
//   - A wrapped store.ErrNoUserWasFound if the user record is absent.
//   - ErrWrongOldPassword if the old password does not match.
func (u *userService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) (models.User, error) {
	log := logger.FromContext(ctx)

	if oldPassword == "" || newPassword == "" {
		log.Error().Int64("id", userID).Msg("empty password provided for password change")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password change lookup failed")
		return models.User{}, fmt.Errorf("password change lookup failed: %w", err)
	}

	if !utils.CheckPassword(oldPassword, foundUser.PasswordHash) {
		log.Error().Int64("id", userID).Msg("old password does not match")
		return models.User{}, ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(newPassword, u.bcryptCost)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	updatedUser, err := u.userRepository.UpdatePassword(ctx, userID, hash)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password update failed")
		return models.User{}, fmt.Errorf("password update failed: %w", err)
	}

	return updatedUser, nil
}
