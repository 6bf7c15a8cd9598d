package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
	"github.com/dmitrijs2005/savingsadmin/internal/client/identity"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/client/session"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/dmitrijs2005/savingsadmin/internal/logging"
)

// AuthFailedMessage is shown when the backend rejects a sign-in without
// saying why.
const AuthFailedMessage = "authentication failed"

// AuthService defines the authentication operations.
//
// Contract:
//   - SignIn / SignUp / FederatedSignIn: on success the token and profile
//     are stored together; on failure nothing is stored and the backend's
//     message is returned unchanged as *client.APIError.
//   - SignOut: clears both entities and navigates to sign-in; idempotent.
//   - Verify / Me: authenticated lookups of the current user.
type AuthService interface {
	SignIn(ctx context.Context, email string, password []byte) (*models.Session, error)
	SignUp(ctx context.Context, name, email string, password []byte) (*models.Session, error)
	FederatedSignIn(ctx context.Context, assertion string) (*models.Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
	Verify(ctx context.Context) (*models.VerifyResult, error)
	Me(ctx context.Context) (*models.Profile, error)
}

type authService struct {
	api       API
	store     session.Store
	navigator client.Navigator
	log       logging.Logger
}

// NewAuthService constructs an AuthService. store and navigator must be the
// same instances the API client was built with.
func NewAuthService(api API, store session.Store, navigator client.Navigator, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: api, store: store, navigator: navigator, log: log}
}

// SignIn and SignUp wipe password before returning.
func (a *authService) SignIn(ctx context.Context, email string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)
	req := models.LoginRequest{Email: email, Password: string(password)}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return a.authenticate(ctx, common.RouteLogin, req)
}

func (a *authService) SignUp(ctx context.Context, name, email string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)
	req := models.RegisterRequest{Name: name, Email: email, Password: string(password)}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return a.authenticate(ctx, common.RouteRegister, req)
}

// FederatedSignIn forwards the provider's assertion unmodified. The display
// fields sent alongside are read from it unverified.
func (a *authService) FederatedSignIn(ctx context.Context, assertion string) (*models.Session, error) {
	claims, err := identity.ParseAssertion(assertion)
	if err != nil {
		return nil, err
	}

	req := models.FederatedLoginRequest{
		Token:   assertion,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}
	return a.authenticate(ctx, common.RouteGoogleLogin, req)
}

// authenticate posts payload to an auth endpoint and stores the session on
// success. Every failure path leaves the store untouched.
func (a *authService) authenticate(ctx context.Context, route string, payload any) (*models.Session, error) {
	resp, err := a.api.Public(ctx, route, client.RequestOptions{Method: http.MethodPost, Body: payload}).Result()
	if err != nil {
		a.log.Warn(ctx, "sign-in request failed", "route", route, "error", err)
		return nil, err
	}

	if err := resp.Err(AuthFailedMessage); err != nil {
		a.log.Info(ctx, "sign-in rejected", "route", route, "status", resp.StatusCode)
		return nil, err
	}

	var ar models.AuthResponse
	if err := resp.DecodeJSON(&ar); err != nil {
		return nil, err
	}
	if ar.AccessToken == "" || ar.User == nil {
		return nil, fmt.Errorf("%w: auth response without token or user", client.ErrTransport)
	}

	sess := models.Session{Token: ar.AccessToken, Profile: *ar.User}
	if err := a.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "signed in", "route", route, "user_id", sess.Profile.ID, "role", sess.Profile.Role)
	return &sess, nil
}

// SignOut clears the session even if nothing is stored, then navigates to
// the sign-in page regardless of the clear result.
func (a *authService) SignOut(ctx context.Context) error {
	err := a.store.Clear(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to clear session on sign-out", "error", err)
	}
	a.navigator.Navigate(client.SignInPage)
	return err
}

func (a *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return a.store.Load(ctx)
}

func (a *authService) Verify(ctx context.Context) (*models.VerifyResult, error) {
	var res models.VerifyResult
	if err := call(ctx, a.api, common.RouteVerify, client.RequestOptions{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *authService) Me(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := call(ctx, a.api, common.RouteMe, client.RequestOptions{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
