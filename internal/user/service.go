package user

import (
	"errors"

	"github.com/pbordage/restaurant-web/internal/password"
)

// Service implements the registration and authentication flows on top of a
// Repository. Field validation happens before Register is called; the
// service only hashes and persists.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register hashes the plaintext and inserts the user. Duplicate usernames
// surface as ErrUsernameExists from the insert itself; there is no prior
// existence check.
func (s *Service) Register(user User, plain string) (User, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return User{}, err
	}

	user.Hash = hash
	return s.repo.Create(user)
}

// Authenticate looks the user up by username and verifies the password.
// The two failure modes stay distinct so the login form can report
// "Incorrect username." and "Incorrect password." separately.
func (s *Service) Authenticate(username, plain string) (User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrUnknownUsername
		}
		return User{}, err
	}

	if !password.Verify(plain, user.Hash) {
		return User{}, ErrWrongPassword
	}

	return user, nil
}

// GetByID loads a user for the logged-in-user loader.
func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}
