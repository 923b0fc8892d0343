package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/mailer"
	"yamdb/internal/metrics"
	"yamdb/internal/middleware/auth"
)

const (
	confirmationSubject = "Confirmation code for your YaMDb token"
	msgEmailAsUsername  = "This email cannot be used as a username. Provide a username."
)

// RegistrationInput is the body of /auth/email/.
type RegistrationInput struct {
	Email    string
	Username string
}

type AuthService interface {
	// SendConfirmationCode creates the account for the email unless one
	// exists, then mails a code bound to its current state.
	SendConfirmationCode(ctx context.Context, in RegistrationInput) (*models.User, error)
	// ExchangeCode returns a bearer token, or apperr.ErrInvalidConfirmationCode
	// when the code does not match the account.
	ExchangeCode(ctx context.Context, email, code string) (string, error)
	// Authenticate resolves a bearer token to its account.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	users    repository.UserRepository
	codes    *auth.ConfirmationCodes
	tokens   *auth.TokenIssuer
	mail     mailer.Mailer
	mailFrom string
	logger   zerolog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	codes *auth.ConfirmationCodes,
	tokens *auth.TokenIssuer,
	mail mailer.Mailer,
	mailFrom string,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:    users,
		codes:    codes,
		tokens:   tokens,
		mail:     mail,
		mailFrom: mailFrom,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

func (s *authService) SendConfirmationCode(ctx context.Context, in RegistrationInput) (*models.User, error) {
	username := in.Username
	if username == "" {
		username = in.Email
	}

	user, err := s.register(ctx, username, in.Email)
	if err != nil {
		if in.Username == "" {
			err = usernameFromEmail(err)
		}
		return nil, err
	}

	code := s.codes.Make(user)
	err = s.mail.Send(ctx, mailer.Message{
		Subject: confirmationSubject,
		Body:    code,
		From:    s.mailFrom,
		To:      []string{in.Email},
	})
	if err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	metrics.ConfirmationCodesIssued.Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("confirmation code issued")
	return user, nil
}

// register is idempotent per email: a collision falls back to the stored
// account. The result is always read back from storage so the code is
// computed over persisted values.
func (s *authService) register(ctx context.Context, username, email string) (*models.User, error) {
	user := &models.User{Username: username, Email: email, Role: models.RoleUser}
	err := s.users.Create(ctx, user)
	if err == nil {
		stored, err := s.users.FindByID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("reload registered user: %w", err)
		}
		s.logger.Info().Str("user_id", stored.ID).Msg("user registered")
		return stored, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}

	existing, ferr := s.users.FindByEmail(ctx, email)
	if errors.Is(ferr, gorm.ErrRecordNotFound) {
		// the username belongs to another email
		return nil, apperr.FieldError("username", msgUsernameTaken)
	}
	if ferr != nil {
		return nil, ferr
	}
	return existing, nil
}

// usernameFromEmail moves username messages onto email when the client
// never sent a username and the email stood in for it.
func usernameFromEmail(err error) error {
	v, ok := apperr.IsValidation(err)
	if !ok {
		return err
	}
	if _, ok := v.Fields["username"]; !ok {
		return err
	}
	out := apperr.NewValidationError()
	for field, msgs := range v.Fields {
		if field == "username" {
			out.Add("email", msgEmailAsUsername)
			continue
		}
		for _, msg := range msgs {
			out.Add(field, msg)
		}
	}
	return out
}

func (s *authService) ExchangeCode(ctx context.Context, email, code string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.TokenExchanges.WithLabelValues("unknown_email").Inc()
		}
		return "", notFound(err, "user")
	}

	if !s.codes.Check(user, code) {
		metrics.TokenExchanges.WithLabelValues("mismatch").Inc()
		s.logger.Warn().Str("user_id", user.ID).Msg("confirmation code mismatch")
		return "", apperr.ErrInvalidConfirmationCode
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.TokenExchanges.WithLabelValues("issued").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("token issued")
	return token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrNotAuthenticated, err)
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrNotAuthenticated)
		}
		return nil, err
	}
	return user, nil
}
