package auth

import (
	"strconv"

	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/services/users"
	"github.com/smartservices-app/backend_api/internal/utils"
)

type Service struct {
	Users      *users.Service
	JWTSecret  string
	ExpiresMin int
}

func NewService(userSvc *users.Service, secret string, expiresMin int) *Service {
	return &Service{Users: userSvc, JWTSecret: secret, ExpiresMin: expiresMin}
}

// Login verifies the credentials and issues a signed token. Failure is
// always users.ErrInvalidCredentials, whatever actually went wrong with
// the email or the password.
func (s *Service) Login(email, password string) (string, *models.User, error) {
	u, err := s.Users.Verify(email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.SignJWT(s.JWTSecret, strconv.FormatUint(uint64(u.ID), 10), string(u.Role), s.ExpiresMin)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}
