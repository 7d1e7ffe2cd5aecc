package service

import (
	"errors"

	"go-almacen-pos/internal/model"
	"go-almacen-pos/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type TokenValidationResponse struct {
	User model.UserResponse `json:"user"`
}

type authService struct {
	pos *PosService
}

// NewAuthService authenticates against the operator accounts held in the
// state aggregate. Username match is case-insensitive; passwords are bcrypt
// hashes checked in constant time.
func NewAuthService(pos *PosService) AuthService {
	return &authService{pos: pos}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, ok := s.pos.UserByUsername(username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	user, ok := s.pos.UserByUsername(username)
	if !ok {
		return ErrInvalidCredentials
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	return s.pos.UpdateUser(user.Username, user.ID, user.Name, newPassword, user.Role)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, ok := s.pos.UserByID(claims.UserID)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &TokenValidationResponse{User: user.ToResponse()}, nil
}
