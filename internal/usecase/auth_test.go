package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/oauth2/v2"

	"github.com/apiwat-s/screenscout-api/internal/auth"
	"github.com/apiwat-s/screenscout-api/internal/repository"
)

func newAuthUsecase(t *testing.T) (AuthUsecase, repository.UserRepository, auth.TokenIssuer) {
	t.Helper()

	logger := zerolog.Nop()
	repo := repository.NewMemoryUserRepository()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	return NewAuthUsecase(repo, issuer, nil, nil, &logger), repo, issuer
}

func TestRegister(t *testing.T) {
	t.Parallel()

	uc, _, issuer := newAuthUsecase(t)

	result, err := uc.Register(context.Background(), RegisterParams{
		Username: "ana",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "ana", result.User.Username)
	require.Equal(t, "a@x.com", result.User.Email)
	require.NotEmpty(t, result.User.ID)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc, repo, _ := newAuthUsecase(t)

	_, err := uc.Register(context.Background(), RegisterParams{
		Username: "ana",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), RegisterParams{
		Username: "other",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	// The failed attempt must not have created a second record.
	user, err := repo.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "ana", user.Username)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	uc, _, issuer := newAuthUsecase(t)

	registered, err := uc.Register(context.Background(), RegisterParams{
		Username: "ana",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)

	result, err := uc.Login(context.Background(), LoginParams{
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User, result.User)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.UserID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthUsecase(t)

	_, err := uc.Register(context.Background(), RegisterParams{
		Username: "ana",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)

	_, wrongPassword := uc.Login(context.Background(), LoginParams{
		Email:    "a@x.com",
		Password: "wrong",
	})
	_, unknownEmail := uc.Login(context.Background(), LoginParams{
		Email:    "nobody@x.com",
		Password: "secret",
	})

	// Both failure modes must be indistinguishable to the caller.
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

type fakeGoogleVerifier struct {
	info *oauth2.Tokeninfo
	err  error
}

func (f *fakeGoogleVerifier) VerifyIDToken(context.Context, string) (*oauth2.Tokeninfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func TestLoginWithGoogle_CreatesUserOnFirstSignIn(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	repo := repository.NewMemoryUserRepository()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	google := &fakeGoogleVerifier{info: &oauth2.Tokeninfo{Email: "ana@gmail.com", VerifiedEmail: true}}

	uc := NewAuthUsecase(repo, issuer, google, nil, &logger)

	result, err := uc.LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)
	require.Equal(t, "ana@gmail.com", result.User.Email)
	require.Equal(t, "ana", result.User.Username)

	// Second sign-in resolves the same account.
	again, err := uc.LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)
	require.Equal(t, result.User.ID, again.User.ID)

	// A Google-provisioned account has no local password to log in with.
	_, err = uc.Login(context.Background(), LoginParams{Email: "ana@gmail.com", Password: ""})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogle_InvalidToken(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	repo := repository.NewMemoryUserRepository()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	google := &fakeGoogleVerifier{err: errors.New("tokeninfo rejected")}

	uc := NewAuthUsecase(repo, issuer, google, nil, &logger)

	_, err := uc.LoginWithGoogle(context.Background(), "bad")
	require.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestLoginWithGoogle_Disabled(t *testing.T) {
	t.Parallel()

	uc, _, _ := newAuthUsecase(t)

	_, err := uc.LoginWithGoogle(context.Background(), "id-token")
	require.ErrorIs(t, err, ErrInvalidGoogleToken)
}
