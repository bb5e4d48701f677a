package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "anon-key", "service-key", nil), server
}

func TestSignUpPendingConfirmation(t *testing.T) {
	userID := uuid.New()
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@fazenda.com", body["email"])
		assert.Equal(t, "Ana", body["data"].(map[string]any)["nome"])

		json.NewEncoder(w).Encode(map[string]any{
			"id":    userID.String(),
			"email": "ana@fazenda.com",
		})
	})

	user, session, err := client.SignUp(context.Background(), SignUpInput{
		Email:    "ana@fazenda.com",
		Password: "senha-forte",
		Metadata: map[string]any{"nome": "Ana"},
	})
	require.NoError(t, err)

	assert.Nil(t, session, "no session while confirmation is pending")
	assert.Equal(t, userID, user.ID)
	assert.False(t, user.Confirmed())
}

func TestSignUpWithImmediateSession(t *testing.T) {
	userID := uuid.New()
	confirmedAt := time.Now().UTC().Truncate(time.Second)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "jwt-access",
			"refresh_token": "jwt-refresh",
			"token_type":    "bearer",
			"expires_in":    3600,
			"user": map[string]any{
				"id":                 userID.String(),
				"email":              "ana@fazenda.com",
				"email_confirmed_at": confirmedAt.Format(time.RFC3339),
			},
		})
	})

	user, session, err := client.SignUp(context.Background(), SignUpInput{
		Email:    "ana@fazenda.com",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	require.NotNil(t, session)
	assert.Equal(t, "jwt-access", session.AccessToken)
	assert.Equal(t, "jwt-refresh", session.RefreshToken)
	assert.True(t, user.Confirmed())
}

func TestSignUpError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"msg": "User already registered"})
	})

	_, _, err := client.SignUp(context.Background(), SignUpInput{
		Email:    "dup@fazenda.com",
		Password: "senha-forte",
	})

	var providerErr *Error
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnprocessableEntity, providerErr.Status)
	assert.Equal(t, "User already registered", providerErr.Message)
}

func TestSignInWithPassword(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "jwt-access",
			"refresh_token": "jwt-refresh",
			"token_type":    "bearer",
			"user":          map[string]any{"id": uuid.NewString(), "email": "ana@fazenda.com"},
		})
	})

	session, err := client.SignInWithPassword(context.Background(), "ana@fazenda.com", "senha-forte")
	require.NoError(t, err)
	assert.Equal(t, "jwt-access", session.AccessToken)
	assert.Equal(t, "ana@fazenda.com", session.User.Email)
}

func TestSignInErrorUsesDescriptionFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error_description": "Invalid login credentials"})
	})

	_, err := client.SignInWithPassword(context.Background(), "ana@fazenda.com", "errada")

	var providerErr *Error
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "Invalid login credentials", providerErr.Message)
}

func TestRefreshSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-refresh", body["refresh_token"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "new-access",
			"refresh_token": "new-refresh",
			"user":          map[string]any{"id": uuid.NewString()},
		})
	})

	session, err := client.RefreshSession(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", session.AccessToken)
	assert.Equal(t, "new-refresh", session.RefreshToken)
}

func TestResetPasswordForEmailSendsRedirect(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		assert.Equal(t, "https://app.example.com/reset", r.URL.Query().Get("redirect_to"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.ResetPasswordForEmail(context.Background(), "ana@fazenda.com", "https://app.example.com/reset")
	assert.NoError(t, err)
}

func TestAdminUpdateUserByID(t *testing.T) {
	userID := uuid.New()
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/admin/users/"+userID.String(), r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "senha-nova", body["password"])

		json.NewEncoder(w).Encode(map[string]any{"id": userID.String(), "email": "ana@fazenda.com"})
	})

	user, err := client.AdminUpdateUserByID(context.Background(), userID, map[string]any{"password": "senha-nova"})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestGetUserRejectsBadToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "invalid JWT"})
	})

	_, err := client.GetUser(context.Background(), "token-ruim")

	var providerErr *Error
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.Status)
}
