package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventdeck/internal/domain"
)

const defaultUserRole = "user"

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	emailService domain.EmailService
	logger       *slog.Logger
	baseURL      string
}

// NewAuthService creates an AuthService. emailService may be nil, in which
// case no welcome email is sent.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, emailService domain.EmailService, logger *slog.Logger, baseURL string) domain.AuthService {
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		emailService: emailService,
		logger:       logger,
		baseURL:      baseURL,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(name, email, hash, defaultUserRole, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint backstops the lookup above for concurrent
		// registrations with the same email.
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{
			Email:        user.Email,
			Name:         user.Name,
			DashboardURL: s.baseURL + "/dashboard",
		}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			// Best effort: registration succeeded regardless.
			s.logger.WarnContext(ctx, "welcome email failed", "email", user.Email, "err", err)
		}
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	// Verify via the one-way hash comparison; the submitted plaintext is
	// never compared against the stored hash directly.
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}
