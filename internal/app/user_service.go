package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"kbc-quiz-service/internal/domain"
)

// UserService handles player registration.
type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates the player or returns the existing record unchanged.
func (s *UserService) Register(ctx context.Context, username string) (domain.User, error) {
	name := strings.TrimSpace(username)
	if utf8.RuneCountInString(name) < domain.MinUsernameLength {
		return domain.User{}, domain.Invalid("username required (min 2 chars)")
	}
	return s.users.Register(ctx, name)
}

// Get looks a player up by username.
func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	return s.users.GetByUsername(ctx, strings.TrimSpace(username))
}
