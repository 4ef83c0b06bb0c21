package service

import (
	"context"
	"fmt"
	"time"

	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/rs/zerolog"
)

// Back-office operators are a single shared identity; the JWT subject and role
// are fixed.
const (
	adminSubject = "admin"
	adminRole    = "admin"
)

// AuthServiceImpl implements ports.AuthService for the back-office operator.
// There is no user table: the operator password is held as an Argon2id hash in
// configuration.
type AuthServiceImpl struct {
	passwordHash string
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(passwordHash string, hashSvc ports.HashService, tokenSvc ports.TokenService, log zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		passwordHash: passwordHash,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}
}

// Login validates the operator password and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, password string) (string, time.Time, error) {
	if password == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.log.Warn().Msg("admin login rejected")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(adminSubject, adminRole)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Time("expires_at", expiry).Msg("admin login succeeded")
	return token, expiry, nil
}
