package auth

import (
	"context"
	"errors"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
)

// ErrBadCredentials covers unknown logins and wrong passwords alike so
// responses never reveal which one it was.
var ErrBadCredentials = errors.New("bad credentials")

type Service struct {
	secret      string
	tokenTTL    time.Duration
	rememberTTL time.Duration
	users       UserRepository
}

func NewService(cfg config.Auth, users UserRepository) *Service {
	return &Service{
		secret:      cfg.Secret,
		tokenTTL:    time.Duration(cfg.TokenValiditySeconds) * time.Second,
		rememberTTL: time.Duration(cfg.RememberValiditySeconds) * time.Second,
		users:       users,
	}
}

// Authenticate checks the credentials and returns a signed access token.
// The remember-me variant only stretches the expiry.
func (s *Service) Authenticate(ctx context.Context, login, password string, rememberMe bool) (string, error) {
	u, err := s.users.FindByLogin(ctx, login)
	if err != nil || !VerifyPassword(u.PasswordHash, password) {
		return "", ErrBadCredentials
	}

	ttl := s.tokenTTL
	if rememberMe {
		ttl = s.rememberTTL
	}
	return GenerateToken(s.secret, u.Login, u.Role, ttl)
}

// Principal validates a bearer token. It satisfies httpx.TokenParser.
func (s *Service) Principal(token string) (login, role string, err error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Role, nil
}

// Account loads the stored user behind a login.
func (s *Service) Account(ctx context.Context, login string) (User, error) {
	return s.users.FindByLogin(ctx, login)
}
