package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/utils"
	"github.com/voteworks/ballotbox/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", ErrInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.Signup(ctx, user)
	if err != nil {
		log.Err(err).Msg("error registering user")
		writeError(w, "Error registering user", err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, "Error registering user", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Message: "User registered successfully",
		User:    registeredUser.Sanitized(),
		Token:   token.SignedString,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials struct {
		NationalID string `json:"national_id"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", ErrInvalidJSON)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials.NationalID, credentials.Password)
	if err != nil {
		log.Err(err).Msg("error logging in user")
		writeError(w, "Error logging in user", err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	// token issuance strictly follows a successful credential match
	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, "Error logging in user", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Message: "Login successful",
		User:    foundUser.Sanitized(),
		Token:   token.SignedString,
	}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	foundUser, err := h.services.UserService.Profile(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error fetching user profile")
		writeError(w, "Error fetching user profile", err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Message: "User profile fetched successfully",
		User:    foundUser.Sanitized(),
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", ErrInvalidJSON)
		return
	}

	updatedUser, err := h.services.UserService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error updating password")
		writeError(w, "Error updating password", err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{
		Message: "Password updated successfully",
		User:    updatedUser.Sanitized(),
	}, http.StatusOK)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("storage ping failed")
		writeError(w, "storage unavailable", err)
		return
	}

	utils.WriteJSON(w, models.Response{Message: "pong"}, http.StatusOK)
}
