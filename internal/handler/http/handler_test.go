package http

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/mock"
	"github.com/voteworks/ballotbox/internal/service"
	"go.uber.org/mock/gomock"
)

// testMocks bundles the mocked services behind a handler under test.
type testMocks struct {
	auth      *mock.MockAuthService
	user      *mock.MockUserService
	candidate *mock.MockCandidateService
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newTestHandler(t *testing.T) (*chi.Mux, testMocks) {
	ctrl := gomock.NewController(t)

	mocks := testMocks{
		auth:      mock.NewMockAuthService(ctrl),
		user:      mock.NewMockUserService(ctrl),
		candidate: mock.NewMockCandidateService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:      mocks.auth,
		UserService:      mocks.user,
		CandidateService: mocks.candidate,
	}, stubPinger{}, 0, logger.Nop())

	return h.Init(), mocks
}
