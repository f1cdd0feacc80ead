package mocks

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/clinic-server/internal/model"
)

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(email string, role model.Role, userID int64, isAdmin bool) (string, error) {
	args := m.Called(email, role, userID, isAdmin)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Parse(token string) (model.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(model.Claims), args.Error(1)
}

type ResetCodeStore struct {
	mock.Mock
}

func (m *ResetCodeStore) Store(email, code string, ttl time.Duration) {
	m.Called(email, code, ttl)
}

func (m *ResetCodeStore) Validate(email, code string) (bool, bool) {
	args := m.Called(email, code)
	return args.Bool(0), args.Bool(1)
}

func (m *ResetCodeStore) Consume(email, code string) (bool, bool) {
	args := m.Called(email, code)
	return args.Bool(0), args.Bool(1)
}

func (m *ResetCodeStore) Remove(email string) {
	m.Called(email)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, mail model.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type SecurityLayer struct {
	mock.Mock
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(net.Listener), args.Error(1)
}
