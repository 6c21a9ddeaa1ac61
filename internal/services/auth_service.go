package services

import (
	"strings"

	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/auth"
	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

type AuthService interface {
	Register(username, password, email string) (*models.User, error)
	Login(username, password string) (string, *models.User, error)
	IsSetupRequired() (bool, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a user. The first user ever registered becomes admin,
// every later one starts as guest.
func (s *authService) Register(username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, trace.BadParameter("username is required")
	}
	if len(password) < 8 {
		return nil, trace.BadParameter("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if existing != nil {
		return nil, trace.AlreadyExists("username %q already exists", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         models.RoleGuest,
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if count == 0 {
		user.Role = models.RoleAdmin
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, trace.Wrap(err)
	}
	return user, nil
}

func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, trace.Wrap(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, trace.AccessDenied("invalid username or password")
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", nil, trace.Wrap(err)
	}
	return token, user, nil
}

func (s *authService) IsSetupRequired() (bool, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return false, trace.Wrap(err)
	}
	return count == 0, nil
}
