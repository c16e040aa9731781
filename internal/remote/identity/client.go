// Package identity is a thin REST client for the hosted identity
// provider (a Google Identity Toolkit style API). It handles JSON
// marshaling and translates provider rejection codes into user-facing
// messages.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"habitchain/internal/model"
	"habitchain/internal/remote"
)

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	User         model.User `json:"user"`
	IDToken      string     `json:"id_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
}

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an identity client. The apiKey is the provider's web
// API key, passed on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// credentialsRequest is the body of sign-up and sign-in calls.
type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// sessionResponse is the provider's account payload.
type sessionResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

// errorResponse is the provider's rejection payload.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignUp creates a new account and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var resp sessionResponse
	err := c.post(ctx, "accounts:signUp", credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sessionFrom(resp), nil
}

// SignIn authenticates an existing account and returns its session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp sessionResponse
	err := c.post(ctx, "accounts:signInWithPassword", credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sessionFrom(resp), nil
}

// SendPasswordReset asks the provider to email a password reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "accounts:sendOobCode", body, nil)
}

func sessionFrom(resp sessionResponse) *Session {
	return &Session{
		User: model.User{
			ID:          resp.LocalID,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
}

// post sends a JSON request to the given provider endpoint and decodes
// the JSON response. Provider rejections become AuthError; transport
// failures become NetworkError.
func (c *Client) post(ctx context.Context, endpoint string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &remote.NetworkError{Service: "identity", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &remote.NetworkError{Service: "identity", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error.Message == "" {
			return &remote.NetworkError{
				Service: "identity",
				Err:     fmt.Errorf("unexpected status %d on %s", resp.StatusCode, endpoint),
			}
		}
		code := errResp.Error.Message
		return &remote.AuthError{Code: code, Message: authMessage(code)}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// authMessage translates provider rejection codes into user-facing text.
func authMessage(code string) string {
	switch {
	case code == "EMAIL_EXISTS":
		return "An account with this email already exists."
	case code == "EMAIL_NOT_FOUND",
		code == "INVALID_PASSWORD",
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return "Incorrect email or password."
	case code == "USER_DISABLED":
		return "This account has been disabled."
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS"):
		return "Too many attempts. Please try again later."
	default:
		return "Authentication failed. Please try again."
	}
}
