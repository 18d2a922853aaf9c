package modio_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestEmailLogin(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour).Unix()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// auth endpoints are always called with the api key
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())

		switch r.URL.Path {
		case "/oauth/emailrequest":
			assert.Equal(t, "john@example.com", r.PostForm.Get("email"))
			writeJSON(w, http.StatusOK, `{"code": 200, "message": "Enter the 5-digit security code sent to your email address (john@example.com)"}`)
		case "/oauth/emailexchange":
			assert.Equal(t, "P6ZKD", r.PostForm.Get("security_code"))
			writeJSON(w, http.StatusOK, `{"code": 200, "access_token": "eyJ0eXAiOiJKV", "date_expires": `+itoa(expires)+`}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	msg, err := client.EmailRequest(context.Background(), " john@example.com ")
	require.NoError(t, err)
	assert.Equal(t, 200, msg.Code)
	assert.False(t, client.HasToken())

	token, err := client.EmailExchange(context.Background(), "P6ZKD")
	require.NoError(t, err)
	assert.Equal(t, "eyJ0eXAiOiJKV", token.AccessToken)
	assert.True(t, client.HasToken())
	assert.Equal(t, expires, client.Token().Expiry.Unix())
}

func TestEmailRequestIgnoresExistingToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"code": 200, "message": "ok"}`)
	})
	client.SetToken(&oauth2.Token{AccessToken: "secret"})

	_, err := client.EmailRequest(context.Background(), "john@example.com")
	require.NoError(t, err)
}

func TestEmailLoginValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	})

	_, err := client.EmailRequest(context.Background(), "john")
	assert.ErrorIs(t, err, modio.ErrInvalidEmail)

	_, err = client.EmailExchange(context.Background(), "1234")
	assert.ErrorIs(t, err, modio.ErrInvalidSecurityCode)
}

func TestEmailExchangeWrongCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error": {"code": 401, "error_ref": 11012, "message": "The security code is invalid."}}`)
	})

	_, err := client.EmailExchange(context.Background(), "AAAAA")
	assert.ErrorIs(t, err, modio.ErrUnauthorized)
	assert.False(t, client.HasToken())
}
