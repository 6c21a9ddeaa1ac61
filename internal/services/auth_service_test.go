package services_test

import (
	"testing"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/upstat-dev/upstat/internal/auth"
	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

func init() {
	if err := auth.Init("test-secret", 1); err != nil {
		panic(err)
	}
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)

	userRepo.On("GetByUsername", "alice").Return(nil, nil)
	userRepo.On("Count").Return(int64(0), nil)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("alice", "correct-horse", "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegister_LaterUsersAreGuests(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)

	userRepo.On("GetByUsername", "bob").Return(nil, nil)
	userRepo.On("Count").Return(int64(3), nil)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("bob", "correct-horse", "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleGuest, user.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)

	userRepo.On("GetByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register("alice", "correct-horse", "")
	assert.True(t, trace.IsAlreadyExists(err))
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := services.NewAuthService(new(MockUserRepo))

	_, err := svc.Register("alice", "short", "")
	assert.True(t, trace.IsBadParameter(err))
}

func TestLogin(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)

	hash, err := auth.HashPassword("correct-horse")
	assert.NoError(t, err)
	userRepo.On("GetByUsername", "alice").Return(&models.User{
		ID: 1, Username: "alice", PasswordHash: hash, Role: models.RoleAdmin,
	}, nil)

	token, user, err := svc.Login("alice", "correct-horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	claims, err := auth.VerifyJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, string(models.RoleAdmin), claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)

	hash, _ := auth.HashPassword("correct-horse")
	userRepo.On("GetByUsername", "alice").Return(&models.User{
		ID: 1, Username: "alice", PasswordHash: hash,
	}, nil)

	_, _, err := svc.Login("alice", "wrong")
	assert.True(t, trace.IsAccessDenied(err))
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)
	userRepo.On("GetByUsername", "ghost").Return(nil, nil)

	// Same error as a wrong password; usernames are not probeable.
	_, _, err := svc.Login("ghost", "whatever")
	assert.True(t, trace.IsAccessDenied(err))
}

func TestIsSetupRequired(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := services.NewAuthService(userRepo)
	userRepo.On("Count").Return(int64(0), nil).Once()

	required, err := svc.IsSetupRequired()
	assert.NoError(t, err)
	assert.True(t, required)

	userRepo.On("Count").Return(int64(1), nil).Once()
	required, err = svc.IsSetupRequired()
	assert.NoError(t, err)
	assert.False(t, required)
}
