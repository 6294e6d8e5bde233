package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service authenticates against the fixed credential list.
type Service struct {
	users map[string]User
}

// NewService hashes the supplied credentials and builds the lookup table.
func NewService(creds []Credential) (*Service, error) {
	users := make(map[string]User, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		email := strings.ToLower(strings.TrimSpace(c.Email))
		users[email] = User{ID: c.ID, Email: email, Name: c.Name, PasswordHash: string(hash), Role: c.Role}
	}
	return &Service{users: users}, nil
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(email, password string) (User, error) {
	user, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Lookup returns the user with the given id.
func (s *Service) Lookup(id string) (User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
