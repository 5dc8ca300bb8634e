package service

import (
	"errors"

	"crvparking/internal/db"
	"crvparking/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	repo *repository.DatasetRepository
}

func NewAuthService(repo *repository.DatasetRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Login checks the password against the stored bcrypt hash. The same error
// is returned for an unknown user and a wrong password.
func (s *AuthService) Login(username, password string) (*db.User, error) {
	user := s.repo.FindUserByUsername(username)
	if user == nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return user, nil
}

// CreateUser registers an operator account with a hashed password.
func (s *AuthService) CreateUser(username, password string) (*db.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password cannot be empty")
	}
	if s.repo.FindUserByUsername(username) != nil {
		return nil, errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	data := s.repo.Dataset()
	data.Counters.Users++
	data.Users = append(data.Users, db.User{
		ID:           data.Counters.Users,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err := s.repo.Flush(); err != nil {
		return nil, err
	}
	return &data.Users[len(data.Users)-1], nil
}
