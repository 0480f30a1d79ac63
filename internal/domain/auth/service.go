package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)

type Account struct {
	Username string
	Password string
	RoleName string
}

type Token struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type credential struct {
	hash string
	role string
}

type Service struct {
	secret string
	ttl    time.Duration
	users  map[string]credential
}

// NewService hashes the configured accounts once. Accounts with an empty
// username or password are ignored.
func NewService(secret string, ttl time.Duration, accounts ...Account) (*Service, error) {
	s := &Service{secret: secret, ttl: ttl, users: make(map[string]credential)}
	for _, a := range accounts {
		name := strings.TrimSpace(a.Username)
		if name == "" || a.Password == "" {
			continue
		}
		hash, err := HashPassword(a.Password)
		if err != nil {
			return nil, err
		}
		s.users[name] = credential{hash: hash, role: a.RoleName}
	}
	return s, nil
}

func (s *Service) Enabled() bool {
	return s != nil && s.secret != ""
}

func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	if !s.Enabled() {
		return Token{}, ErrAuthDisabled
	}
	username = strings.TrimSpace(username)
	cred, ok := s.users[username]
	if !ok || CheckPassword(cred.hash, password) != nil {
		return Token{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.secret, Claims{Username: username, RoleName: cred.role}, s.ttl)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Token:     token,
		Role:      cred.role,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}, nil
}

func (s *Service) Verify(token string) (UserContext, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return UserContext{}, err
	}
	return UserContext{Username: claims.Username, RoleName: claims.RoleName}, nil
}
