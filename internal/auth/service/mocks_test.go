package service

import (
	"context"

	"github.com/nbarsukov/authd/internal/auth/domain"
	"github.com/nbarsukov/authd/internal/auth/repository"
)

type mockRepo struct {
	createFunc                func(ctx context.Context, user domain.User) error
	findByEmailOrUsernameFunc func(ctx context.Context, email, username string) (domain.User, error)

	createCalls int
	findCalls   int
}

func (m *mockRepo) Create(ctx context.Context, user domain.User) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (domain.User, error) {
	m.findCalls++
	if m.findByEmailOrUsernameFunc != nil {
		return m.findByEmailOrUsernameFunc(ctx, email, username)
	}
	return domain.User{}, repository.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "id-1", nil
}

type mockIssuer struct {
	issueFunc func(userID string) (string, error)
}

func (m *mockIssuer) Issue(userID string) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(userID)
	}
	return "token-for-" + userID, nil
}
