package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/repositories/repository_mocks"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	passwordService *service_mocks.MockPasswordServiceInterface
	tokenService    *service_mocks.MockTokenServiceInterface
	authService     AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.authService = NewAuthService(s.userRepo, s.passwordService, s.tokenService, NewNoopMetrics(), slog.Default())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_SuccessfulRegistration() {
	req := &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "new@example.com",
		Password: "SecurePass123!",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed_password", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req)

	s.NoError(err)
	s.NotNil(user)
	s.Equal(req.Email, user.Email)
	s.Equal(req.Name, user.Name)
	s.Equal("hashed_password", user.PasswordHash)
	s.NotEqual(req.Password, user.PasswordHash) // Ensure password is hashed
}

func (s *AuthServiceTestSuite) TestRegister_EmailAlreadyTaken() {
	req := &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "taken@example.com",
		Password: "SecurePass123!",
	}

	existing := &models.User{ID: uuid.New(), Email: req.Email}
	s.userRepo.EXPECT().GetByEmail(req.Email).Return(existing, nil).Times(1)

	user, err := s.authService.Register(req)

	s.Equal(ErrUserAlreadyExists, err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_ConflictOnInsert() {
	// A concurrent registration can pass the lookup and still lose the insert
	req := &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "racy@example.com",
		Password: "SecurePass123!",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed_password", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrEmailAlreadyExists).Times(1)

	user, err := s.authService.Register(req)

	s.Equal(ErrUserAlreadyExists, err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_HashFailure() {
	req := &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "new@example.com",
		Password: "SecurePass123!",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("", errors.New("bcrypt failure")).Times(1)

	user, err := s.authService.Register(req)

	s.Error(err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestLogin_Successful() {
	req := &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "SecurePass123!",
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        req.Email,
		PasswordHash: "hashed_password",
	}
	expiresAt := time.Now().Add(30 * time.Minute)

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(true).Times(1)
	s.tokenService.EXPECT().GenerateToken(user).Return("signed-token", expiresAt, nil).Times(1)

	tokens, err := s.authService.Login(req)

	s.NoError(err)
	s.Equal("signed-token", tokens.Token)
	s.Equal("Bearer", tokens.TokenType)
	s.Equal(expiresAt, tokens.ExpiresAt)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	req := &dto.LoginRequest{
		Email:    "unknown@example.com",
		Password: "SecurePass123!",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)

	tokens, err := s.authService.Login(req)

	s.Equal(ErrInvalidCredentials, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	req := &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "WrongPassword",
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: "hashed_password",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(false).Times(1)

	tokens, err := s.authService.Login(req)

	// Same error as an unknown email so failure modes are indistinguishable
	s.Equal(ErrInvalidCredentials, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_TokenGenerationFailure() {
	req := &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "SecurePass123!",
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: "hashed_password",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(req.Password, user.PasswordHash).Return(true).Times(1)
	s.tokenService.EXPECT().GenerateToken(user).Return("", time.Time{}, errors.New("signing failure")).Times(1)

	tokens, err := s.authService.Login(req)

	s.Error(err)
	s.NotEqual(ErrInvalidCredentials, err)
	s.Nil(tokens)
}
