package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cashtrackr/cashtrackr-api/internal/auth"
	"github.com/cashtrackr/cashtrackr-api/internal/mail"
	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"gorm.io/gorm"
)

// TokenObserver is told about every one-time token issued to an account.
type TokenObserver func(email, token string)

type AuthOption func(*AuthService)

// WithTokenObserver registers fn to receive issued one-time tokens. Test
// harnesses use it in place of reading the mailbox.
func WithTokenObserver(fn TokenObserver) AuthOption {
	return func(s *AuthService) {
		s.observer = fn
	}
}

type AuthService struct {
	userRepo *repository.UserRepository
	sessions *auth.SessionTokens
	emails   *mail.AuthEmails
	mailer   mail.Mailer
	observer TokenObserver
}

func NewAuthService(
	userRepo *repository.UserRepository,
	sessions *auth.SessionTokens,
	emails *mail.AuthEmails,
	mailer mail.Mailer,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		emails:   emails,
		mailer:   mailer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount stores an unconfirmed user and mails the confirmation code.
func (s *AuthService) CreateAccount(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	user, err := s.newUser(name, email, password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, err
	}
	user.SetToken(token)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	s.notify(user.Email, token)

	msg, err := s.emails.Confirmation(mail.Recipient{Name: user.Name, Email: user.Email, Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to render confirmation email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return user, nil
}

// CreateConfirmedAccount skips the email round trip. Used by operators.
func (s *AuthService) CreateConfirmedAccount(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	user, err := s.newUser(name, email, password)
	if err != nil {
		return nil, err
	}
	user.Confirmed = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) newUser(name, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{Name: name, Email: email, Password: hash}, nil
}

func (s *AuthService) ConfirmAccount(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	user.Confirmed = true
	user.ClearToken()
	return s.userRepo.Update(ctx, user)
}

// Login checks existence, then confirmation, then the password, and returns
// a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !user.Confirmed {
		return "", ErrAccountNotConfirmed
	}
	if !auth.CheckPassword(password, user.Password) {
		return "", ErrIncorrectPassword
	}

	return s.sessions.Issue(user.ID)
}

// ForgotPassword replaces any pending token with a fresh reset code.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}
	user.SetToken(token)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.notify(user.Email, token)

	msg, err := s.emails.PasswordReset(mail.Recipient{Name: user.Name, Email: user.Email, Token: token})
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	user.ClearToken()
	return s.userRepo.Update(ctx, user)
}

// UserByID resolves the principal behind a session token.
func (s *AuthService) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// UpdateProfile lets a user keep their own email; only another account
// holding it is a conflict.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, name, email string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return ErrEmailInUse
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, name, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailInUse
		}
		return err
	}
	user.Name = name
	user.Email = email
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, current, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !auth.CheckPassword(current, user.Password) {
		return ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) CheckPassword(ctx context.Context, userID uint, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !auth.CheckPassword(password, user.Password) {
		return ErrIncorrectPassword
	}
	return nil
}

func (s *AuthService) notify(email, token string) {
	if s.observer != nil {
		s.observer(email, token)
	}
}
