package httpapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/session"
)

type authenticator struct {
	client *Client // must be a public client
}

var _ session.Authenticator = (*authenticator)(nil) // interface compliance check

// NewAuthenticator wraps a public client into the session's Authenticator.
func NewAuthenticator(public *Client) session.Authenticator {
	return &authenticator{client: public}
}

type (
	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	loginResponse struct {
		AccessToken string `json:"accessToken"`
	}
	signupRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

func (a *authenticator) Login(ctx context.Context, role session.Role, creds session.Credentials) (string, error) {
	var resp loginResponse
	err := a.client.post(ctx, pathf("/api/auth/login/%s", role), loginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}, &resp)
	if err != nil {
		return "", mapLoginError(err)
	}
	return resp.AccessToken, nil
}

func (a *authenticator) Signup(ctx context.Context, role session.Role, na session.NewAccount) error {
	return a.client.post(ctx, pathf("/api/auth/signup/%s", role), signupRequest{
		Name:     na.Name,
		Email:    na.Email,
		Password: na.Password,
	}, nil)
}

// mapLoginError folds every 400/401/403 into one "invalid credentials"
// answer; the backend does not reliably distinguish them and the user must
// not learn which field was wrong. Anything else stays a server error
// carrying its status.
func mapLoginError(err error) error {
	switch cause := errors.Cause(err); cause {
	case core.ErrAuthRequired, core.ErrPermissionDenied:
		return core.ErrAuthenticationFailed
	case core.ErrUnavailable:
		return err
	default:
		if srvErr, ok := cause.(*core.ServerError); ok && srvErr.Status == http.StatusBadRequest {
			return core.ErrAuthenticationFailed
		}
	}
	return err
}
