package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/voteworks/ballotbox/internal/config"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/store"
)

// Services aggregates every business-logic service of the application.
type Services struct {
	AuthService      AuthService
	UserService      UserService
	CandidateService CandidateService
}

// NewServices wires all services to the given repositories and configuration.
// A zero bcrypt cost in the config falls back to bcrypt.DefaultCost.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	bcryptCost := cfg.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg, bcryptCost, logger),
		UserService:      NewUserService(storages.UserRepository, bcryptCost, logger),
		CandidateService: NewCandidateService(storages.CandidateRepository, storages.UserRepository, logger),
	}
}
