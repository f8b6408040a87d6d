package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/models"
)

var userColumns = []string{
	"user_id", "name", "age", "email", "mobile",
	"address", "gender", "national_id", "password_hash",
	"role", "has_voted", "created_at",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(user models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(user.UserID, user.Name, user.Age, user.Email, user.Mobile,
			user.Address, user.Gender, user.NationalID, user.PasswordHash,
			user.Role, user.HasVoted, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:         "Jane Smith",
		Age:          34,
		Address:      "12 Main St",
		Gender:       "female",
		NationalID:   "AB1234567",
		PasswordHash: "$2a$10$hash",
	}

	created := user
	created.UserID = 1
	created.Role = models.RoleVoter

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Age, user.Email, user.Mobile, user.Address, user.Gender, user.NationalID, user.PasswordHash).
		WillReturnRows(userRow(created, time.Now()))

	got, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", got.UserID)
	}
	if got.Role != models.RoleVoter {
		t.Errorf("expected role %q, got %q", models.RoleVoter, got.Role)
	}
	if got.HasVoted {
		t.Error("expected HasVoted=false for a fresh account")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{NationalID: "AB1234567"})
	if !errors.Is(err, ErrNationalIDAlreadyExists) {
		t.Fatalf("expected ErrNationalIDAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{NationalID: "AB1234567"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrNationalIDAlreadyExists) {
		t.Fatalf("generic DB error must not map to ErrNationalIDAlreadyExists, got %v", err)
	}
}

func TestFindUserByNationalID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		UserID:       7,
		Name:         "Jane Smith",
		Age:          34,
		Email:        "jane@example.com",
		Address:      "12 Main St",
		Gender:       "female",
		NationalID:   "AB1234567",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleVoter,
	}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.NationalID).
		WillReturnRows(userRow(user, time.Now()))

	got, err := repo.FindUserByNationalID(context.Background(), user.NationalID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != user.UserID {
		t.Errorf("expected UserID=%d, got %d", user.UserID, got.UserID)
	}
	if got.Email != user.Email {
		t.Errorf("expected email %q, got %q", user.Email, got.Email)
	}
}

func TestFindUserByNationalID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ZZ0000000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByNationalID(context.Background(), "ZZ0000000")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), 404)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NullOptionalFields(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(3), "John Doe", 41, nil, nil,
			"5 Side St", "male", "CD7654321", "$2a$10$hash",
			models.RoleAdmin, false, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.FindUserByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "" || got.Mobile != "" {
		t.Errorf("expected NULL email/mobile to scan as empty strings, got %q/%q", got.Email, got.Mobile)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, got.Role)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	updated := models.User{
		UserID:       7,
		Name:         "Jane Smith",
		Age:          34,
		Address:      "12 Main St",
		Gender:       "female",
		NationalID:   "AB1234567",
		PasswordHash: "$2a$10$newhash",
		Role:         models.RoleVoter,
	}

	mock.ExpectQuery("UPDATE users").
		WithArgs(updated.UserID, updated.PasswordHash).
		WillReturnRows(userRow(updated, time.Now()))

	got, err := repo.UpdatePassword(context.Background(), updated.UserID, updated.PasswordHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PasswordHash != updated.PasswordHash {
		t.Errorf("expected new password hash, got %q", got.PasswordHash)
	}
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(404), "$2a$10$newhash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePassword(context.Background(), 404, "$2a$10$newhash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
