package service

import (
	"context"
	"errors"

	"github.com/nbarsukov/authd/internal/auth/domain"
	"github.com/nbarsukov/authd/internal/auth/repository"
	"github.com/nbarsukov/authd/internal/common/clock"
	"github.com/nbarsukov/authd/internal/common/crypto"
	"github.com/nbarsukov/authd/internal/common/logger"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=3"`
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

type LoginResult struct {
	User  domain.User
	Token string
}

type AuthService struct {
	repo        repository.Repository
	hasher      crypto.PasswordHasher
	idGenerator crypto.IDGenerator
	issuer      TokenIssuer
	clock       clock.Clock
	validator   *Validator
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        repository.Repository
	Hasher      crypto.PasswordHasher
	IDGenerator crypto.IDGenerator
	Issuer      TokenIssuer
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}

	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		issuer:      deps.Issuer,
		clock:       clk,
		validator:   NewValidator(),
		log:         deps.Log,
	}
}

// Register validates the input, rejects duplicate usernames or emails,
// hashes the password and persists the user. The uniqueness pre-check and
// the insert are not atomic; a concurrent duplicate that slips past the
// check is caught by the store's unique constraints and reported as the
// same conflict.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := s.validator.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return domain.User{}, err
	}

	_, err := s.repo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_conflict",
		}).Warn("register failed: username or email already exists")
		incrementRegistrationConflicts()
		return domain.User{}, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return domain.User{}, newInternalError("DB_ERROR", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return domain.User{}, newInternalError("HASH_ERROR", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return domain.User{}, newInternalError("ID_ERROR", err)
	}

	user := domain.User{
		ID:           domain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			// Lost the race between check and insert.
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_conflict",
			}).Warn("register failed: username or email already exists")
			incrementRegistrationConflicts()
			return domain.User{}, ErrUserExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return domain.User{}, newInternalError("DB_ERROR", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	incrementRegistrations()

	return user, nil
}

// Login looks the user up by email or username, verifies the password and
// issues a signed token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"identifier": input.Identifier,
		"action":     "login_attempt",
	}).Info("login attempt")

	if err := s.validator.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return LoginResult{}, err
	}

	user, err := s.repo.FindByEmailOrUsername(ctx, input.Identifier, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"identifier": input.Identifier,
				"action":     "login_user_not_found",
			}).Warn("login failed: user not found")
			incrementLoginFailures("not_found")
			return LoginResult{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, newInternalError("DB_ERROR", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginFailures("invalid_password")
		return LoginResult{}, ErrInvalidPassword
	}

	token, err := s.issuer.Issue(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"user_id":    string(user.ID),
			"action":     "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, newInternalError("TOKEN_ERROR", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	incrementLogins()
	incrementTokensIssued()

	return LoginResult{User: user, Token: token}, nil
}
