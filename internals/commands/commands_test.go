package commands

import (
	"fmt"
	"testing"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
)

func TestFromAPIError(t *testing.T) {
	unauthorized := fmt.Errorf("whoami: %w", &modio.Error{Code: 401, Message: "no token"})
	err := FromAPIError(unauthorized)

	cliErr, ok := err.(*CliError)
	if assert.True(t, ok) {
		assert.Contains(t, cliErr.Suggestions[0], "modio login")
		assert.ErrorIs(t, cliErr, modio.ErrUnauthorized)
	}

	validation := &modio.Error{Code: 422, Message: "Validation failed", Errors: map[string]string{"youtube": "must be a youtube url"}}
	err = FromAPIError(validation)
	cliErr, ok = err.(*CliError)
	if assert.True(t, ok) {
		assert.Equal(t, "Validation failed", cliErr.Text)
		assert.Equal(t, []string{"youtube: must be a youtube url"}, cliErr.Suggestions)
	}

	plain := fmt.Errorf("disk full")
	assert.Equal(t, plain, FromAPIError(plain))
	assert.NoError(t, FromAPIError(nil))
}

func TestRender(t *testing.T) {
	EmojiEnabled = false
	defer func() { EmojiEnabled = true }()

	out := Render(&CliError{Text: "boom", Suggestions: []string{"try again"}})
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "try again")

	assert.Contains(t, Render(fmt.Errorf("plain")), "Error: plain")
}

func TestTable(t *testing.T) {
	out := Table([][]string{{"ID", "Name"}, {"1", "Castle"}, {"22", "Forest"}})
	assert.Contains(t, out, "Castle")
	assert.Contains(t, out, "Forest")
	assert.Empty(t, Table(nil))
}
