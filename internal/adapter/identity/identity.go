package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.IdentityProvider = (*HTTPProvider)(nil)

type (
	credentials struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Data     map[string]string `json:"data,omitempty"`
	}

	sessionResponse struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}

	errorResponse struct {
		Message string `json:"msg"`
	}
)

// An HTTPProvider is a thin client for the hosted auth API. Provider
// internals are out of scope here: this adapter only exchanges
// credentials for a session and revokes it on sign-out.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	cl      *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) HTTPProvider {
	return HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		cl:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (p HTTPProvider) SignIn(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	const op = "HTTPProvider.SignIn"

	url := p.baseURL + "/token?grant_type=password"
	return p.postForSession(ctx, op, url, credentials{
		Email:    email,
		Password: password,
	}, "")
}

func (p HTTPProvider) SignUp(
	ctx context.Context, email, password string, extra map[string]string,
) (domain.Session, error) {
	const op = "HTTPProvider.SignUp"

	return p.postForSession(ctx, op, p.baseURL+"/signup", credentials{
		Email:    email,
		Password: password,
		Data:     extra,
	}, "")
}

func (p HTTPProvider) SignOut(ctx context.Context, accessToken string) error {
	const op = "HTTPProvider.SignOut"

	res, err := p.post(ctx, p.baseURL+"/logout", nil, accessToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %s", op, readErrMessage(res))
	}
	return nil
}

func (p HTTPProvider) postForSession(
	ctx context.Context, op, url string, body any, token string,
) (domain.Session, error) {
	res, err := p.post(ctx, url, body, token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return domain.Session{}, fmt.Errorf("%s: %s", op, readErrMessage(res))
	}

	var sr sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if sr.User.ID == "" {
		return domain.Session{}, fmt.Errorf("%s: no user in response", op)
	}

	return domain.Session{
		UserID:      sr.User.ID,
		Email:       sr.User.Email,
		AccessToken: sr.AccessToken,
	}, nil
}

func (p HTTPProvider) post(
	ctx context.Context, url string, body any, token string,
) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return p.cl.Do(req)
}

func readErrMessage(res *http.Response) string {
	var er errorResponse
	if err := json.NewDecoder(res.Body).Decode(&er); err != nil || er.Message == "" {
		return res.Status
	}
	return er.Message
}
