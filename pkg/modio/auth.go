package modio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/minepkg/modio/internals/ownhttp"
)

// EmailRequest requests a security code that mod.io sends to the given email.
// The code then has to be passed to `EmailExchange`
func (c *Client) EmailRequest(ctx context.Context, email string) (*Message, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	form := url.Values{}
	form.Set("email", email)

	req, err := c.newAuthRequest(ctx, "/oauth/emailrequest", form)
	if err != nil {
		return nil, err
	}

	msg := &Message{}
	if err := c.send(req, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// EmailExchange exchanges the 5 character security code for an access token.
// The token is also set for this client, all following requests are authenticated
func (c *Client) EmailExchange(ctx context.Context, securityCode string) (*AccessToken, error) {
	securityCode = strings.TrimSpace(securityCode)
	if len(securityCode) != 5 {
		return nil, ErrInvalidSecurityCode
	}

	form := url.Values{}
	form.Set("security_code", securityCode)

	req, err := c.newAuthRequest(ctx, "/oauth/emailexchange", form)
	if err != nil {
		return nil, err
	}

	accessToken := &AccessToken{}
	if err := c.send(req, accessToken); err != nil {
		return nil, err
	}
	c.SetToken(accessToken.Token())

	return accessToken, nil
}

// newAuthRequest creates a form post request that is always authorized with the api key
func (c *Client) newAuthRequest(ctx context.Context, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIUrl+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ownhttp.UserAgent)
	req.Header.Set("Accept", "application/json")
	c.decorateAPIKey(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// GetAuthenticatedUser gets the user that belongs to the current token
func (c *Client) GetAuthenticatedUser(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.getJSON(ctx, "/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}
