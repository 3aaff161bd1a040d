package appwrite

import (
	"bytes"
	"context"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds the static provider configuration. These values are fixed at
// deploy time, not runtime-negotiated.
type Config struct {
	Endpoint         string
	ProjectID        string
	APIKey           string
	DatabaseID       string
	UserCollectionID string
	Timeout          time.Duration
}

// Client talks to the Appwrite REST API. It holds no session state; calls
// that act on behalf of a user take the session secret explicitly.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// ============================================================================
// Wire shapes
// ============================================================================

type accountResponse struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
	Expire string `json:"expire"`
}

type documentResponse struct {
	ID        string `json:"$id"`
	CreatedAt string `json:"$createdAt"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
}

type documentListResponse struct {
	Total     int                `json:"total"`
	Documents []documentResponse `json:"documents"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// ============================================================================
// Account / Session
// ============================================================================

func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) (*domain.Account, error) {
	body := map[string]interface{}{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}

	var resp accountResponse
	if err := c.do(ctx, http.MethodPost, "/account", "", body, &resp); err != nil {
		return nil, err
	}
	return &domain.Account{ID: resp.ID, Email: resp.Email, Name: resp.Name}, nil
}

func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", "", body, &resp); err != nil {
		return nil, err
	}
	return toSession(&resp, resp.Secret), nil
}

func (c *Client) GetSession(ctx context.Context, sessionSecret string) (*domain.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/account/sessions/current", sessionSecret, nil, &resp); err != nil {
		return nil, err
	}
	// The secret is only returned on creation; carry the caller's through
	return toSession(&resp, sessionSecret), nil
}

func (c *Client) GetAccount(ctx context.Context, sessionSecret string) (*domain.Account, error) {
	var resp accountResponse
	if err := c.do(ctx, http.MethodGet, "/account", sessionSecret, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Account{ID: resp.ID, Email: resp.Email, Name: resp.Name}, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionSecret string) error {
	return c.do(ctx, http.MethodDelete, "/account/sessions/current", sessionSecret, nil, nil)
}

// ============================================================================
// Profile documents
// ============================================================================

func (c *Client) CreateProfileDocument(ctx context.Context, documentID string, profile *domain.Profile) (*domain.Profile, error) {
	body := map[string]interface{}{
		"documentId": documentID,
		"data": map[string]interface{}{
			"accountId": profile.AccountID,
			"email":     profile.Email,
			"username":  profile.Username,
			"avatar":    profile.Avatar,
		},
	}

	var resp documentResponse
	if err := c.do(ctx, http.MethodPost, c.documentsPath(), "", body, &resp); err != nil {
		return nil, err
	}
	return toProfile(&resp), nil
}

func (c *Client) ListProfilesByAccountID(ctx context.Context, accountID string) ([]domain.Profile, error) {
	query, err := json.Marshal(map[string]interface{}{
		"method":    "equal",
		"attribute": "accountId",
		"values":    []string{accountID},
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	params := url.Values{}
	params.Add("queries[]", string(query))

	var resp documentListResponse
	if err := c.do(ctx, http.MethodGet, c.documentsPath()+"?"+params.Encode(), "", nil, &resp); err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(resp.Documents))
	for i := range resp.Documents {
		profiles = append(profiles, *toProfile(&resp.Documents[i]))
	}
	return profiles, nil
}

// ============================================================================
// Password recovery
// ============================================================================

func (c *Client) CreateRecovery(ctx context.Context, email, redirectURL string) error {
	body := map[string]interface{}{
		"email": email,
		"url":   redirectURL,
	}
	return c.do(ctx, http.MethodPost, "/account/recovery", "", body, nil)
}

func (c *Client) UpdateRecovery(ctx context.Context, userID, secret, newPassword string) error {
	body := map[string]interface{}{
		"userId":   userID,
		"secret":   secret,
		"password": newPassword,
	}
	return c.do(ctx, http.MethodPut, "/account/recovery", "", body, nil)
}

// InitialsAvatarURL derives the provider-hosted initials avatar for a display
// name. Pure string building, no network.
func (c *Client) InitialsAvatarURL(name string) string {
	params := url.Values{}
	params.Set("name", name)
	params.Set("project", c.cfg.ProjectID)
	return c.cfg.Endpoint + "/avatars/initials?" + params.Encode()
}

// ============================================================================
// Transport
// ============================================================================

func (c *Client) documentsPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.cfg.DatabaseID, c.cfg.UserCollectionID)
}

func (c *Client) do(ctx context.Context, method, path, sessionSecret string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return apperror.Internal(err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return apperror.Internal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.cfg.ProjectID)
	req.Header.Set("X-Appwrite-Response-Format", "1.6.0")
	if sessionSecret != "" {
		req.Header.Set("X-Appwrite-Session", sessionSecret)
	} else if c.cfg.APIKey != "" {
		req.Header.Set("X-Appwrite-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return apperror.GatewayTimeout("Identity provider timed out")
		}
		return apperror.New(http.StatusInternalServerError, "Identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.classifyError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.New(http.StatusInternalServerError, "Failed to parse provider response", err)
		}
	}
	return nil
}

// classifyError maps provider error responses onto the error taxonomy:
// 401 unauthorized, 404 not found, 409 conflict, everything else generic
// with the provider's message attached where available.
func (c *Client) classifyError(resp *http.Response) error {
	var errResp errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&errResp)

	msg := errResp.Message
	if msg == "" {
		msg = fmt.Sprintf("Provider request failed with status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperror.Unauthorized(msg)
	case http.StatusNotFound:
		return apperror.NotFound(msg)
	case http.StatusConflict:
		return apperror.Conflict(msg)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return apperror.GatewayTimeout(msg)
	default:
		return apperror.New(http.StatusInternalServerError, msg, nil)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

func toSession(resp *sessionResponse, secret string) *domain.Session {
	session := &domain.Session{
		ID:        resp.ID,
		AccountID: resp.UserID,
		Secret:    secret,
	}
	if resp.Expire != "" {
		if expiresAt, err := time.Parse(time.RFC3339, resp.Expire); err == nil {
			session.ExpiresAt = expiresAt
		}
	}
	return session
}

func toProfile(resp *documentResponse) *domain.Profile {
	profile := &domain.Profile{
		DocumentID: resp.ID,
		AccountID:  resp.AccountID,
		Email:      resp.Email,
		Username:   resp.Username,
		Avatar:     resp.Avatar,
	}
	if resp.CreatedAt != "" {
		if createdAt, err := time.Parse(time.RFC3339, resp.CreatedAt); err == nil {
			profile.CreatedAt = createdAt
		}
	}
	return profile
}
