package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nbarsukov/authd/internal/auth/domain"
	"github.com/nbarsukov/authd/internal/auth/repository"
	"github.com/nbarsukov/authd/internal/common/clock"
	"github.com/nbarsukov/authd/internal/common/logger"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "alice123",
		Email:    "a@example.com",
		Password: "secret1",
		Name:     "Alice",
	}
}

func setupAuthService(t *testing.T) (*AuthService, *mockRepo, *mockHasher, *mockIDGenerator, *mockIssuer, *clock.MockClock) {
	t.Helper()

	repo := &mockRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}
	issuer := &mockIssuer{}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	svc := NewAuthService(AuthServiceDeps{
		Repo:        repo,
		Hasher:      hasher,
		IDGenerator: idGen,
		Issuer:      issuer,
		Clock:       clk,
		Log:         log,
	})

	return svc, repo, hasher, idGen, issuer, clk
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _, idGen, _, clk := setupAuthService(t)

	idGen.newIDFunc = func() (string, error) {
		return "user-123", nil
	}

	var created domain.User
	repo.createFunc = func(ctx context.Context, user domain.User) error {
		created = user
		return nil
	}

	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.ID != "user-123" {
		t.Errorf("expected id user-123, got %s", user.ID)
	}
	if created.Username != "alice123" || created.Email != "a@example.com" || created.Name != "Alice" {
		t.Errorf("unexpected persisted user: %+v", created)
	}
	if created.PasswordHash == "" || created.PasswordHash == "secret1" {
		t.Errorf("expected hashed password, got %q", created.PasswordHash)
	}
	if !created.CreatedAt.Equal(clk.Now()) {
		t.Errorf("expected created_at %v, got %v", clk.Now(), created.CreatedAt)
	}
}

func TestAuthService_Register_ValidationError(t *testing.T) {
	svc, repo, _, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name   string
		mutate func(in *RegisterInput)
		path   string
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "username"},
		{"missing username", func(in *RegisterInput) { in.Username = "" }, "username"},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "abc12" }, "password"},
		{"short name", func(in *RegisterInput) { in.Name = "Al" }, "name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)

			vErr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}

			found := false
			for _, fe := range vErr.Fields {
				if fe.Path == tc.path {
					found = true
					if fe.Message == "" {
						t.Error("expected a non-empty message")
					}
				}
			}
			if !found {
				t.Errorf("expected an error entry for %q, got %+v", tc.path, vErr.Fields)
			}
		})
	}

	if repo.findCalls != 0 || repo.createCalls != 0 {
		t.Errorf("expected no store access on validation failure, got %d finds and %d creates", repo.findCalls, repo.createCalls)
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	svc, repo, _, _, _, _ := setupAuthService(t)

	repo.findByEmailOrUsernameFunc = func(ctx context.Context, email, username string) (domain.User, error) {
		return domain.User{ID: "existing", Username: username}, nil
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if repo.createCalls != 0 {
		t.Errorf("expected no insert after conflict, got %d", repo.createCalls)
	}
}

func TestAuthService_Register_ConflictOnInsertRace(t *testing.T) {
	svc, repo, _, _, _, _ := setupAuthService(t)

	// Pre-check misses, then the store's unique constraint rejects the
	// insert: still a conflict, never an internal error.
	repo.createFunc = func(ctx context.Context, user domain.User) error {
		return repository.ErrUserAlreadyExists
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_StoreError(t *testing.T) {
	svc, repo, _, _, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user domain.User) error {
		return errors.New("connection reset")
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrUserExists) || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}

func TestAuthService_Register_HashError(t *testing.T) {
	svc, repo, hasher, _, _, _ := setupAuthService(t)

	hasher.hashFunc = func(password string) (string, error) {
		return "", errors.New("hash failure")
	}

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil {
		t.Fatal("expected an error")
	}
	if repo.createCalls != 0 {
		t.Errorf("expected no insert after hash failure, got %d", repo.createCalls)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, hasher, _, issuer, _ := setupAuthService(t)

	stored := domain.User{
		ID:           "user-123",
		Username:     "alice123",
		Email:        "a@example.com",
		PasswordHash: "stored-hash",
	}

	repo.findByEmailOrUsernameFunc = func(ctx context.Context, email, username string) (domain.User, error) {
		if email != "alice123" || username != "alice123" {
			t.Errorf("expected identifier on both lookup columns, got email=%q username=%q", email, username)
		}
		return stored, nil
	}

	hasher.compareFunc = func(hash, password string) error {
		if hash != "stored-hash" || password != "secret1" {
			t.Errorf("unexpected compare args: hash=%q password=%q", hash, password)
		}
		return nil
	}

	issuer.issueFunc = func(userID string) (string, error) {
		if userID != "user-123" {
			t.Errorf("expected token bound to user-123, got %s", userID)
		}
		return "signed-token", nil
	}

	result, err := svc.Login(context.Background(), LoginInput{Identifier: "alice123", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token != "signed-token" {
		t.Errorf("expected signed-token, got %s", result.Token)
	}
	if result.User.ID != stored.ID {
		t.Errorf("expected user %s, got %s", stored.ID, result.User.ID)
	}
}

func TestAuthService_Login_ValidationError(t *testing.T) {
	svc, repo, _, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name  string
		input LoginInput
		path  string
	}{
		{"short identifier", LoginInput{Identifier: "ab", Password: "secret1"}, "identifier"},
		{"short password", LoginInput{Identifier: "alice123", Password: "abc"}, "password"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.input)

			vErr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(vErr.Fields) == 0 || vErr.Fields[0].Path != tc.path {
				t.Errorf("expected an error entry for %q, got %+v", tc.path, vErr.Fields)
			}
		})
	}

	if repo.findCalls != 0 {
		t.Errorf("expected no store access on validation failure, got %d", repo.findCalls)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _, _, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{Identifier: "nobody1", Password: "secret1"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, repo, hasher, _, issuer, _ := setupAuthService(t)

	repo.findByEmailOrUsernameFunc = func(ctx context.Context, email, username string) (domain.User, error) {
		return domain.User{ID: "user-123", PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		return errors.New("mismatch")
	}

	issued := false
	issuer.issueFunc = func(userID string) (string, error) {
		issued = true
		return "", nil
	}

	_, err := svc.Login(context.Background(), LoginInput{Identifier: "alice123", Password: "wrong1"})
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if issued {
		t.Error("expected no token issued for an invalid password")
	}
}

func TestAuthService_Login_TokenIssueError(t *testing.T) {
	svc, repo, _, _, issuer, _ := setupAuthService(t)

	repo.findByEmailOrUsernameFunc = func(ctx context.Context, email, username string) (domain.User, error) {
		return domain.User{ID: "user-123", PasswordHash: "stored-hash"}, nil
	}
	issuer.issueFunc = func(userID string) (string, error) {
		return "", errors.New("signing failure")
	}

	_, err := svc.Login(context.Background(), LoginInput{Identifier: "alice123", Password: "secret1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrInvalidPassword) || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}
