package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// Service resolves sign-in attempts against the in-store user list.
//
// Passwords are optional and may be stored in plaintext. This mirrors the
// storefront mock and is not suitable for real accounts.
type Service struct {
	logger     *slog.Logger
	bcryptCost int
}

func NewService(logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Authenticate returns the matching user or internal.ErrInvalidCredentials.
func (s *Service) Authenticate(users []user.User, dto LoginDTO) (user.User, error) {
	if err := dto.Validate(); err != nil {
		return user.User{}, internal.ErrInvalidCredentials.WithCause(err)
	}

	found, ok := Candidate(users, dto.Credential)
	if !ok {
		s.logger.Info("login rejected: no unique user for credential")
		return user.User{}, internal.ErrInvalidCredentials
	}

	if dto.Password != "" && !s.VerifyPassword(found.Password, dto.Password) {
		s.logger.Info("login rejected: password mismatch", "user_id", found.ID)
		return user.User{}, internal.ErrInvalidCredentials
	}

	return found, nil
}

// VerifyPassword compares a supplied password with the stored one, which may be a bcrypt hash.
func (s *Service) VerifyPassword(stored, supplied string) bool {
	if IsHashed(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied))
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("stored password hash is unreadable", "error", err)
		}
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
