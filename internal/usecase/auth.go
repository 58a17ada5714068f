// Package usecase contains the business logic behind the API surface.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/api/oauth2/v2"

	"github.com/apiwat-s/screenscout-api/internal/auth"
	"github.com/apiwat-s/screenscout-api/internal/mailer"
	"github.com/apiwat-s/screenscout-api/internal/model"
	"github.com/apiwat-s/screenscout-api/internal/repository"
	"github.com/apiwat-s/screenscout-api/internal/security"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidGoogleToken = errors.New("invalid google token")
)

// AuthUsecase defines the authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult bundles a freshly issued session token with the public view of
// the authenticated user.
type AuthResult struct {
	Token string
	User  model.PublicUser
}

// GoogleTokenVerifier validates a Google ID token and returns its token info.
type GoogleTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	issuer   auth.TokenIssuer
	google   GoogleTokenVerifier
	mailer   *mailer.Mailer
	logger   *zerolog.Logger
}

// NewAuthUsecase constructs the AuthUsecase. The google verifier and mailer
// may be nil when the corresponding feature is not configured.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	issuer auth.TokenIssuer,
	google GoogleTokenVerifier,
	m *mailer.Mailer,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		issuer:   issuer,
		google:   google,
		mailer:   m,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	u.sendWelcomeEmail(user)

	return u.createAuthResult(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	// Accounts created through Google sign-in carry no local password.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.createAuthResult(user)
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if u.google == nil {
		return nil, ErrInvalidGoogleToken
	}

	info, err := u.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	user, err := u.userRepo.GetUserByEmail(ctx, info.Email)
	if err == nil {
		return u.createAuthResult(user)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err = u.createGoogleUser(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	u.sendWelcomeEmail(user)

	return u.createAuthResult(user)
}

// createGoogleUser provisions an account for a first-time Google sign-in.
// The username is derived from the email local part, retried once with a
// random suffix if it is taken.
func (u *authUsecase) createGoogleUser(ctx context.Context, email string) (*model.User, error) {
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Username: username,
		Email:    email,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		user, err = u.userRepo.CreateUser(ctx, &model.User{
			Username: fmt.Sprintf("%s-%s", username, uuid.NewString()[:8]),
			Email:    email,
		})
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) createAuthResult(user *model.User) (*AuthResult, error) {
	token, err := u.issuer.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User:  user.Public(),
	}, nil
}

// sendWelcomeEmail is best-effort: a mail failure never fails the request.
func (u *authUsecase) sendWelcomeEmail(user *model.User) {
	if u.mailer == nil {
		return
	}

	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to ScreenScout. Your account is ready.</p>
		<p>Start searching and save your favorite movies and shows.</p>
	`, user.Username)

	if err := u.mailer.SendHTML([]string{user.Email}, "Welcome to ScreenScout", htmlBody); err != nil {
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}
}
