package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Dan9191/blog-service/internal/apperrors"
	"github.com/Dan9191/blog-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("User with this email already exists")
	} else if apperrors.StatusOf(err) != http.StatusNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
				s.log.Warnf("Failed to send welcome email to %s: %v", user.Email, err)
			}
		}()
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, nil
}

// GetUserByID retrieves a user's profile
func (s *Service) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.FindUserByID(ctx, id)
}
