package service

import (
	"github.com/lshigami/canvassing/internal/auth"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

type AuthService interface {
	SignIn(username, password string) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwt      *auth.JWTService
}

func NewAuthService(userRepo repository.UserRepository, jwt *auth.JWTService) AuthService {
	return &authService{userRepo: userRepo, jwt: jwt}
}

// SignIn checks the credentials and issues a bearer token. A wrong password
// and an unknown username fail the same way.
func (s *authService) SignIn(username, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, notFoundf("User not found")
	}
	if !user.ValidatePassword(password) {
		return nil, notFoundf("Incorrect password")
	}

	token, err := s.jwt.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("SignIn: failed to sign token")
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token}, nil
}
