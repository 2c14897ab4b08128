package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hugh/otp-auth/internal/database/models"
	"github.com/hugh/otp-auth/internal/mail"
	"github.com/hugh/otp-auth/internal/store"
)

var (
	ErrValidation         = errors.New("missing required fields")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDispatch           = errors.New("email dispatch failed")
	ErrStore              = errors.New("store failure")
)

type Service struct {
	users  store.Users
	jwt    *JWTService
	mailer mail.Dispatcher
	logger *slog.Logger

	now     func() time.Time
	newCode func() (string, error)
}

func NewService(users store.Users, jwt *JWTService, mailer mail.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		jwt:     jwt,
		mailer:  mailer,
		logger:  logger,
		now:     time.Now,
		newCode: GenerateOTP,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type ResetPasswordInput struct {
	Email       string
	OTP         string
	NewPassword string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an unverified account and sends the welcome e-mail.
// When only the e-mail fails, the account and token are still returned
// alongside an ErrDispatch error.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrValidation
	}

	// Check if user exists
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, storeError(err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, storeError(err)
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	resp := &AuthResponse{Token: token, User: user}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		s.logger.ErrorContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
		return resp, dispatchError(err)
	}

	return resp, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrValidation
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return user, nil
}

// SendVerifyOTP issues a verification code to the user's address.
// The code is persisted before the e-mail is sent and is not rolled back
// if sending fails.
func (s *Service) SendVerifyOTP(ctx context.Context, userID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := s.issue(ctx, user, PurposeVerify)
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerifyOTP(ctx, user.Email, code); err != nil {
		s.logger.ErrorContext(ctx, "verification otp email failed", "user_id", user.ID, "error", err)
		return dispatchError(err)
	}
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, userID, otp string) error {
	if userID == "" || otp == "" {
		return ErrValidation
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := ConsumeOTP(user, PurposeVerify, otp, s.now()); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return storeError(err)
	}

	s.logger.InfoContext(ctx, "email verified", "user_id", user.ID)
	return nil
}

// SendResetOTP issues a password reset code. Like SendVerifyOTP it commits
// the code before sending.
func (s *Service) SendResetOTP(ctx context.Context, email string) error {
	if email == "" {
		return ErrValidation
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.issue(ctx, user, PurposeReset)
	if err != nil {
		return err
	}

	if err := s.mailer.SendResetOTP(ctx, user.Email, code); err != nil {
		s.logger.ErrorContext(ctx, "reset otp email failed", "user_id", user.ID, "error", err)
		return dispatchError(err)
	}
	return nil
}

// ResetPassword consumes the reset code and stores the new password hash
// in the same write.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Email == "" || input.OTP == "" || input.NewPassword == "" {
		return ErrValidation
	}

	user, err := s.findByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	if err := ConsumeOTP(user, PurposeReset, input.OTP, s.now()); err != nil {
		return err
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Save(ctx, user); err != nil {
		return storeError(err)
	}

	s.logger.InfoContext(ctx, "password reset", "user_id", user.ID)
	return nil
}

func (s *Service) issue(ctx context.Context, user *models.User, p Purpose) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	if err := IssueOTP(user, p, code, s.now()); err != nil {
		return "", err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", storeError(err)
	}
	s.logger.DebugContext(ctx, "otp issued", "user_id", user.ID, "purpose", p)
	return code, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return user, nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}

func dispatchError(err error) error {
	return fmt.Errorf("%w: %w", ErrDispatch, err)
}
