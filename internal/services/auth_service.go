package services

import (
	"errors"

	"ecocart/internal/domain"
	"ecocart/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

// registerPoints is the eco-point balance granted to every new account.
const registerPoints = 100

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates a customer account and signs the session in.
func (s *AuthService) Register(sid, name, email, password string) (*domain.User, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		Name:      name,
		Email:     email,
		Hash:      string(hash),
		Role:      domain.RoleUser,
		EcoPoints: registerPoints,
	}
	id, err := s.Users.Register(u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	if err := s.Users.BindSession(sid, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
