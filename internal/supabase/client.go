package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RemoteUser is the provider's view of an identity. Metadata is mirrored
// into the local row best-effort and is never authoritative.
type RemoteUser struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        *time.Time     `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at"`
}

func (u RemoteUser) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    int64      `json:"expires_at"`
	TokenType    string     `json:"token_type"`
	User         RemoteUser `json:"user"`
}

type signUpResponse struct {
	RemoteUser
	// Present when the project does not require e-mail confirmation.
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	TokenType    string      `json:"token_type"`
	User         *RemoteUser `json:"user"`
}

// Error carries the provider's message opaquely; callers classify it by
// flow, never by provider error code.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.Status)
}

type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (b errorBody) text() string {
	switch {
	case b.Msg != "":
		return b.Msg
	case b.Message != "":
		return b.Message
	case b.ErrorDescription != "":
		return b.ErrorDescription
	case b.ErrorField != "":
		return b.ErrorField
	}
	return "unexpected provider error"
}

// Client wraps the Supabase auth (GoTrue) REST API. Anon-key calls cover the
// user flows; admin calls are signed with the service-role key.
type Client struct {
	http       *resty.Client
	anonKey    string
	serviceKey string
	logger     *logrus.Logger
}

func NewClient(baseURL, anonKey, serviceKey string, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:       httpClient,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		logger:     logger,
	}
}

type SignUpInput struct {
	Email    string
	Password string
	Metadata map[string]any
	// RedirectTo is appended to the confirmation link sent by the provider.
	RedirectTo string
}

// SignUp creates the remote identity. The returned session is nil when the
// project requires e-mail confirmation before a first login.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*RemoteUser, *Session, error) {
	body := map[string]any{
		"email":    input.Email,
		"password": input.Password,
	}
	if input.Metadata != nil {
		body["data"] = input.Metadata
	}

	request := c.anonRequest(ctx).SetBody(body)
	if input.RedirectTo != "" {
		request.SetQueryParam("redirect_to", input.RedirectTo)
	}

	response, err := request.Post("/auth/v1/signup")
	if err != nil {
		return nil, nil, err
	}
	if response.IsError() {
		return nil, nil, c.asError(response, "sign-up rejected")
	}

	var parsed signUpResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		return nil, nil, err
	}

	if parsed.AccessToken != "" && parsed.User != nil {
		session := &Session{
			AccessToken:  parsed.AccessToken,
			RefreshToken: parsed.RefreshToken,
			ExpiresIn:    parsed.ExpiresIn,
			ExpiresAt:    parsed.ExpiresAt,
			TokenType:    parsed.TokenType,
			User:         *parsed.User,
		}
		return parsed.User, session, nil
	}

	user := parsed.RemoteUser
	return &user, nil, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	response, err := c.anonRequest(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/v1/token")
	if err != nil {
		return nil, err
	}
	if response.IsError() {
		return nil, c.asError(response, "invalid credentials")
	}

	var session Session
	if err := json.Unmarshal(response.Body(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	response, err := c.anonRequest(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		Post("/auth/v1/token")
	if err != nil {
		return nil, err
	}
	if response.IsError() {
		return nil, c.asError(response, "invalid refresh token")
	}

	var session Session
	if err := json.Unmarshal(response.Body(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	request := c.anonRequest(ctx).SetBody(map[string]string{"email": email})
	if redirectTo != "" {
		request.SetQueryParam("redirect_to", redirectTo)
	}
	response, err := request.Post("/auth/v1/recover")
	if err != nil {
		return err
	}
	if response.IsError() {
		return c.asError(response, "recover rejected")
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*RemoteUser, error) {
	response, err := c.anonRequest(ctx).
		SetAuthToken(accessToken).
		Get("/auth/v1/user")
	if err != nil {
		return nil, err
	}
	if response.IsError() {
		return nil, c.asError(response, "invalid access token")
	}

	var user RemoteUser
	if err := json.Unmarshal(response.Body(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the provider session behind the token. Best-effort from
// the caller's perspective.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	response, err := c.anonRequest(ctx).
		SetAuthToken(accessToken).
		Post("/auth/v1/logout")
	if err != nil {
		return err
	}
	if response.IsError() {
		return c.asError(response, "logout rejected")
	}
	return nil
}

// AdminUpdateUserByID overwrites remote user attributes with the
// service-role key. Used to set a new password during delegated reset.
func (c *Client) AdminUpdateUserByID(ctx context.Context, userID uuid.UUID, attributes map[string]any) (*RemoteUser, error) {
	response, err := c.adminRequest(ctx).
		SetBody(attributes).
		Put("/auth/v1/admin/users/" + userID.String())
	if err != nil {
		return nil, err
	}
	if response.IsError() {
		return nil, c.asError(response, "admin update rejected")
	}

	var user RemoteUser
	if err := json.Unmarshal(response.Body(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminCreateUser(ctx context.Context, attributes map[string]any) (*RemoteUser, error) {
	response, err := c.adminRequest(ctx).
		SetBody(attributes).
		Post("/auth/v1/admin/users")
	if err != nil {
		return nil, err
	}
	if response.IsError() {
		return nil, c.asError(response, "admin create rejected")
	}

	var user RemoteUser
	if err := json.Unmarshal(response.Body(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) anonRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey)
}

func (c *Client) adminRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetAuthToken(c.serviceKey)
}

func (c *Client) asError(response *resty.Response, fallback string) error {
	var body errorBody
	message := fallback
	if err := json.Unmarshal(response.Body(), &body); err == nil {
		message = body.text()
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"status": response.StatusCode(),
			"path":   response.Request.URL,
		}).Warn("supabase call failed")
	}
	return &Error{Status: response.StatusCode(), Message: message}
}
