package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/internal/service"
	"github.com/voteworks/ballotbox/internal/store"
	"github.com/voteworks/ballotbox/models"
	"go.uber.org/mock/gomock"
)

func TestSignupHandler_Success(t *testing.T) {
	router, mocks := newTestHandler(t)

	registered := models.User{
		UserID:     1,
		Name:       "Jane Smith",
		NationalID: "AB1234567",
		Role:       models.RoleVoter,
	}

	mocks.auth.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(registered, nil)
	mocks.auth.EXPECT().CreateToken(gomock.Any(), registered).
		Return(models.Token{SignedString: "signed.jwt.token", UserID: 1}, nil)

	body := `{"name":"Jane Smith","age":34,"address":"12 Main St","gender":"female","national_id":"AB1234567","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Authorization"); got != "Bearer signed.jwt.token" {
		t.Errorf("expected bearer token header, got %q", got)
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("expected token in body, got %q", resp.Token)
	}
	if resp.User.UserID != 1 {
		t.Errorf("expected registered user in body, got %+v", resp.User)
	}
}

func TestSignupHandler_DuplicateNationalID(t *testing.T) {
	router, mocks := newTestHandler(t)

	mocks.auth.EXPECT().Signup(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNationalIDAlreadyExists)

	body := `{"name":"Jane Smith","age":34,"national_id":"AB1234567","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestSignupHandler_InvalidJSON(t *testing.T) {
	router, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	router, mocks := newTestHandler(t)

	foundUser := models.User{UserID: 7, NationalID: "AB1234567", Role: models.RoleVoter}

	mocks.auth.EXPECT().Login(gomock.Any(), "AB1234567", "password123").
		Return(foundUser, nil)
	mocks.auth.EXPECT().CreateToken(gomock.Any(), foundUser).
		Return(models.Token{SignedString: "signed.jwt.token", UserID: 7}, nil)

	body := `{"national_id":"AB1234567","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the login response")
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router, mocks := newTestHandler(t)

	// no CreateToken expectation: a failed login must never mint a token
	mocks.auth.EXPECT().Login(gomock.Any(), "AB1234567", "wrong").
		Return(models.User{}, service.ErrInvalidCredentials)

	body := `{"national_id":"AB1234567","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization header on failed login, got %q", got)
	}
}

func TestChangePasswordHandler(t *testing.T) {
	router, mocks := newTestHandler(t)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "good-token").
		Return(models.Token{UserID: 7}, nil)
	mocks.user.EXPECT().ChangePassword(gomock.Any(), int64(7), "old-password", "new-password").
		Return(models.User{UserID: 7}, nil)

	body := `{"old_password":"old-password","new_password":"new-password"}`
	req := httptest.NewRequest(http.MethodPut, "/user/profile/password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestChangePasswordHandler_WrongOldPassword(t *testing.T) {
	router, mocks := newTestHandler(t)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "good-token").
		Return(models.Token{UserID: 7}, nil)
	mocks.user.EXPECT().ChangePassword(gomock.Any(), int64(7), "bad", "new-password").
		Return(models.User{}, service.ErrWrongOldPassword)

	body := `{"old_password":"bad","new_password":"new-password"}`
	req := httptest.NewRequest(http.MethodPut, "/user/profile/password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestPingHandler_StorageDown(t *testing.T) {
	h := NewHandler(&service.Services{}, stubPinger{err: errStorageDown}, 0, logger.Nop())
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 when storage is unreachable, got %d", rec.Code)
	}
}

var errStorageDown = errors.New("storage down")
